package analytics

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"comply/models"
	courseModels "comply/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&courseModels.Course{},
		&courseModels.QuizQuestion{},
		&courseModels.QuizAttempt{},
		&courseModels.QuizAnswer{},
		&courseModels.CourseAssignment{},
	))
	return db
}

func seedOrg(t *testing.T, db *gorm.DB, name string) models.Organization {
	t.Helper()
	org := models.Organization{Name: name}
	require.NoError(t, db.Create(&org).Error)
	return org
}

func seedWorker(t *testing.T, db *gorm.DB, orgID uint, name, jobTitle, category string) models.User {
	t.Helper()
	worker := models.User{
		Name:           name,
		Email:          fmt.Sprintf("%s-%d@test.local", name, time.Now().UnixNano()),
		OrganizationID: orgID,
		JobTitle:       jobTitle,
		Category:       category,
	}
	require.NoError(t, db.Create(&worker).Error)
	return worker
}

func objectivesJSON(t *testing.T, objectives ...courseModels.Objective) []byte {
	t.Helper()
	raw, err := json.Marshal(objectives)
	require.NoError(t, err)
	return raw
}

func seedCourse(t *testing.T, db *gorm.DB, title string, passMark, maxAttempts int, objectives ...courseModels.Objective) courseModels.Course {
	t.Helper()
	crs := courseModels.Course{
		Title:       title,
		Status:      "ACTIVE",
		Objectives:  objectivesJSON(t, objectives...),
		PassMark:    passMark,
		MaxAttempts: maxAttempts,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

func seedQuestion(t *testing.T, db *gorm.DB, courseID uint, objectiveID string) courseModels.QuizQuestion {
	t.Helper()
	options, _ := json.Marshal([]string{"a", "b", "c"})
	q := courseModels.QuizQuestion{
		CourseID:    courseID,
		ObjectiveID: objectiveID,
		Text:        "question",
		Options:     options,
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}

func seedAttempt(t *testing.T, db *gorm.DB, workerID, courseID uint, score int, passed bool, attemptNumber int) courseModels.QuizAttempt {
	t.Helper()
	a := courseModels.QuizAttempt{
		UserID:        workerID,
		CourseID:      courseID,
		Score:         score,
		Passed:        passed,
		AttemptNumber: attemptNumber,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedAttemptAt(t *testing.T, db *gorm.DB, workerID, courseID uint, score int, passed bool, attemptNumber int, createdAt time.Time) courseModels.QuizAttempt {
	t.Helper()
	a := courseModels.QuizAttempt{
		UserID:        workerID,
		CourseID:      courseID,
		Score:         score,
		Passed:        passed,
		AttemptNumber: attemptNumber,
	}
	a.CreatedAt = createdAt
	require.NoError(t, db.Create(&a).Error)
	return a
}

// seedAnswers records correct+incorrect answers to one question under
// one attempt
func seedAnswers(t *testing.T, db *gorm.DB, attemptID, questionID uint, correct, incorrect int) {
	t.Helper()
	for i := 0; i < correct; i++ {
		require.NoError(t, db.Create(&courseModels.QuizAnswer{
			AttemptID:  attemptID,
			QuestionID: questionID,
			IsCorrect:  true,
		}).Error)
	}
	for i := 0; i < incorrect; i++ {
		require.NoError(t, db.Create(&courseModels.QuizAnswer{
			AttemptID:  attemptID,
			QuestionID: questionID,
			IsCorrect:  false,
		}).Error)
	}
}

func seedAssignment(t *testing.T, db *gorm.DB, workerID, courseID uint, status string) courseModels.CourseAssignment {
	t.Helper()
	asg := courseModels.CourseAssignment{
		UserID:   workerID,
		CourseID: courseID,
		Status:   status,
	}
	require.NoError(t, db.Create(&asg).Error)
	return asg
}
