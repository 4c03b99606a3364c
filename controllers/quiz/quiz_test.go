package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"comply/database"
	"comply/models"
	courseModels "comply/models/course"
	"comply/routers/quizRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupQuizApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	quizRoutes.SetupQuizRoutes(app)
	return app, db
}

func seedQuizFixture(t *testing.T, db *gorm.DB, passMark, maxAttempts, questionCount int) (models.User, courseModels.Course, []courseModels.QuizQuestion) {
	t.Helper()

	org := models.Organization{Name: "Acme"}
	require.NoError(t, db.Create(&org).Error)
	worker := models.User{Name: "Alice", Email: "alice@acme.test", OrganizationID: org.ID, JobTitle: "Nurse", Category: "Clinical", Role: "WORKER"}
	require.NoError(t, db.Create(&worker).Error)

	course := courseModels.Course{Title: "Fire Safety", Status: "ACTIVE", PassMark: passMark, MaxAttempts: maxAttempts, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	options, err := json.Marshal([]string{"A", "B", "C"})
	require.NoError(t, err)
	questions := make([]courseModels.QuizQuestion, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q := courseModels.QuizQuestion{
			CourseID:     course.ID,
			Text:         fmt.Sprintf("Question %d", i+1),
			Options:      options,
			CorrectIndex: 1,
			OrderIndex:   i,
		}
		require.NoError(t, db.Create(&q).Error)
		questions = append(questions, q)
	}

	assignment := courseModels.CourseAssignment{UserID: worker.ID, CourseID: course.ID, Status: courseModels.AssignmentNotStarted}
	require.NoError(t, db.Create(&assignment).Error)

	return worker, course, questions
}

func submitQuiz(t *testing.T, app *fiber.App, courseID, workerID uint, answers []map[string]any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"worker_id": workerID,
		"answers":   answers,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("/course/%d/quiz/submit", courseID), bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func TestSubmitQuiz_GradesAgainstFullQuestionSet(t *testing.T) {
	app, db := setupQuizApp(t)
	worker, course, questions := seedQuizFixture(t, db, 80, 0, 4)

	// Three correct answers out of four questions; the fourth is left
	// unanswered and counts as incorrect.
	answers := []map[string]any{
		{"question_id": questions[0].ID, "selected_index": 1},
		{"question_id": questions[1].ID, "selected_index": 1},
		{"question_id": questions[2].ID, "selected_index": 1},
	}
	resp, body := submitQuiz(t, app, course.ID, worker.ID, answers)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body["success"].(bool))
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(75), data["score"])
	assert.Equal(t, false, data["passed"])

	var assignment courseModels.CourseAssignment
	require.NoError(t, db.Where("user_id = ?", worker.ID).First(&assignment).Error)
	assert.Equal(t, courseModels.AssignmentInProgress, assignment.Status)
}

func TestSubmitQuiz_PassCompletesAssignment(t *testing.T) {
	app, db := setupQuizApp(t)
	worker, course, questions := seedQuizFixture(t, db, 80, 0, 2)

	answers := []map[string]any{
		{"question_id": questions[0].ID, "selected_index": 1},
		{"question_id": questions[1].ID, "selected_index": 1},
	}
	resp, body := submitQuiz(t, app, course.ID, worker.ID, answers)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(100), data["score"])
	assert.Equal(t, true, data["passed"])

	var assignment courseModels.CourseAssignment
	require.NoError(t, db.Where("user_id = ?", worker.ID).First(&assignment).Error)
	assert.Equal(t, courseModels.AssignmentCompleted, assignment.Status)
	assert.NotNil(t, assignment.CompletedAt)

	var answersStored int64
	require.NoError(t, db.Model(&courseModels.QuizAnswer{}).Count(&answersStored).Error)
	assert.Equal(t, int64(2), answersStored)
}

func TestSubmitQuiz_MaxAttemptsEnforced(t *testing.T) {
	app, db := setupQuizApp(t)
	worker, course, questions := seedQuizFixture(t, db, 80, 2, 1)

	wrong := []map[string]any{{"question_id": questions[0].ID, "selected_index": 0}}

	resp, _ := submitQuiz(t, app, course.ID, worker.ID, wrong)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = submitQuiz(t, app, course.ID, worker.ID, wrong)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The second failure exhausted the allowance
	var assignment courseModels.CourseAssignment
	require.NoError(t, db.Where("user_id = ?", worker.ID).First(&assignment).Error)
	assert.Equal(t, courseModels.AssignmentFailed, assignment.Status)

	resp, body := submitQuiz(t, app, course.ID, worker.ID, wrong)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, body["success"].(bool))
}

func TestSubmitQuiz_AttemptNumbersIncrement(t *testing.T) {
	app, db := setupQuizApp(t)
	worker, course, questions := seedQuizFixture(t, db, 80, 0, 1)

	wrong := []map[string]any{{"question_id": questions[0].ID, "selected_index": 0}}
	_, first := submitQuiz(t, app, course.ID, worker.ID, wrong)
	_, second := submitQuiz(t, app, course.ID, worker.ID, wrong)

	assert.Equal(t, float64(1), first["data"].(map[string]any)["attempt_number"])
	assert.Equal(t, float64(2), second["data"].(map[string]any)["attempt_number"])
}

func TestSubmitQuiz_RejectsForeignQuestion(t *testing.T) {
	app, db := setupQuizApp(t)
	worker, course, _ := seedQuizFixture(t, db, 80, 0, 1)

	resp, body := submitQuiz(t, app, course.ID, worker.ID, []map[string]any{
		{"question_id": 9999, "selected_index": 0},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body["success"].(bool))

	var attempts int64
	require.NoError(t, db.Model(&courseModels.QuizAttempt{}).Count(&attempts).Error)
	assert.Equal(t, int64(0), attempts)
}

func TestSubmitQuiz_RejectsOutOfRangeOption(t *testing.T) {
	app, db := setupQuizApp(t)
	worker, course, questions := seedQuizFixture(t, db, 80, 0, 1)

	// The seeded questions carry three options
	resp, body := submitQuiz(t, app, course.ID, worker.ID, []map[string]any{
		{"question_id": questions[0].ID, "selected_index": 3},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body["success"].(bool))
}

func TestSubmitQuiz_UnassignedWorkerForbidden(t *testing.T) {
	app, db := setupQuizApp(t)
	_, course, questions := seedQuizFixture(t, db, 80, 0, 1)

	outsider := models.User{Name: "Eve", Email: "eve@acme.test", OrganizationID: 1, JobTitle: "Auditor", Category: "Admin", Role: "WORKER"}
	require.NoError(t, db.Create(&outsider).Error)

	resp, body := submitQuiz(t, app, course.ID, outsider.ID, []map[string]any{
		{"question_id": questions[0].ID, "selected_index": 1},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, body["success"].(bool))
}

func TestGetQuizQuestions_HidesCorrectIndex(t *testing.T) {
	app, db := setupQuizApp(t)
	_, course, _ := seedQuizFixture(t, db, 80, 0, 2)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("/course/%d/quiz/questions", course.ID), nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_index")
	assert.Contains(t, string(raw), "pass_mark")
}
