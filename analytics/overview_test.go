package analytics

import (
	"fmt"
	"testing"

	courseModels "comply/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrgPerformanceOverview_EmptyStages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	// No workers
	org := seedOrg(t, db, "Empty Org")
	top, err := svc.OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.NotNil(t, top)

	// Workers but no attempts
	worker := seedWorker(t, db, org.ID, "alice", "Nurse", "Clinical")
	top, err = svc.OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	assert.Empty(t, top)

	// Attempts but no answers
	crs := seedCourse(t, db, "Fire Safety", 80, 0)
	seedAttempt(t, db, worker.ID, crs.ID, 50, false, 1)
	top, err = svc.OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestOrgPerformanceOverview_RanksByIncorrectRate(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrg(t, db, "Acme")
	worker := seedWorker(t, db, org.ID, "alice", "Nurse", "Clinical")

	hard := seedCourse(t, db, "Radiation Safety", 80, 0,
		courseModels.Objective{ID: "obj-hard", Text: "Hard objective"})
	easy := seedCourse(t, db, "Hand Hygiene", 80, 0,
		courseModels.Objective{ID: "obj-easy", Text: "Easy objective"})
	qHard := seedQuestion(t, db, hard.ID, "obj-hard")
	qEasy := seedQuestion(t, db, easy.ID, "obj-easy")

	aHard := seedAttempt(t, db, worker.ID, hard.ID, 10, false, 1)
	aEasy := seedAttempt(t, db, worker.ID, easy.ID, 60, false, 1)
	seedAnswers(t, db, aHard.ID, qHard.ID, 1, 9) // 90% incorrect
	seedAnswers(t, db, aEasy.ID, qEasy.ID, 6, 4) // 40% incorrect

	top, err := NewService(db).OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, "obj-hard", top[0].ObjectiveID)
	assert.Equal(t, 90, top[0].IncorrectPercentage)
	assert.Equal(t, "Radiation Safety", top[0].CourseTitle)
	assert.Equal(t, 10, top[0].TotalAnswers)

	assert.Equal(t, "obj-easy", top[1].ObjectiveID)
	assert.Equal(t, 40, top[1].IncorrectPercentage)
}

func TestOrgPerformanceOverview_TruncatesToTopFive(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrg(t, db, "Acme")
	worker := seedWorker(t, db, org.ID, "alice", "Nurse", "Clinical")

	objectives := make([]courseModels.Objective, 7)
	for i := range objectives {
		objectives[i] = courseModels.Objective{
			ID:   fmt.Sprintf("obj-%d", i),
			Text: fmt.Sprintf("Objective %d", i),
		}
	}
	crs := seedCourse(t, db, "Everything Course", 80, 0, objectives...)
	attempt := seedAttempt(t, db, worker.ID, crs.ID, 50, false, 1)

	// Incorrect rates 30%, 40%, ... 90%
	for i, obj := range objectives {
		q := seedQuestion(t, db, crs.ID, obj.ID)
		incorrect := 3 + i
		seedAnswers(t, db, attempt.ID, q.ID, 10-incorrect, incorrect)
	}

	top, err := NewService(db).OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	require.Len(t, top, 5)

	for i, row := range top {
		assert.Equal(t, 90-10*i, row.IncorrectPercentage)
		assert.GreaterOrEqual(t, row.IncorrectPercentage, 0)
		assert.LessOrEqual(t, row.IncorrectPercentage, 100)
	}
}

func TestOrgPerformanceOverview_StaleObjectiveDropped(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrg(t, db, "Acme")
	worker := seedWorker(t, db, org.ID, "alice", "Nurse", "Clinical")

	crs := seedCourse(t, db, "Fire Safety", 80, 0,
		courseModels.Objective{ID: "obj-live", Text: "Still listed"})
	qLive := seedQuestion(t, db, crs.ID, "obj-live")
	qStale := seedQuestion(t, db, crs.ID, "obj-removed")

	attempt := seedAttempt(t, db, worker.ID, crs.ID, 50, false, 1)
	seedAnswers(t, db, attempt.ID, qLive.ID, 2, 8)
	seedAnswers(t, db, attempt.ID, qStale.ID, 0, 10)

	top, err := NewService(db).OrgPerformanceOverview(org.ID)
	require.NoError(t, err)

	// The stale reference yields no row at all, not a placeholder
	require.Len(t, top, 1)
	assert.Equal(t, "obj-live", top[0].ObjectiveID)
}

func TestOrgPerformanceOverview_GroupsByCourseObjectivePair(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrg(t, db, "Acme")
	worker := seedWorker(t, db, org.ID, "alice", "Nurse", "Clinical")

	// The same objective identifier reused by two unrelated courses
	first := seedCourse(t, db, "Course A", 80, 0,
		courseModels.Objective{ID: "shared", Text: "From course A"})
	second := seedCourse(t, db, "Course B", 80, 0,
		courseModels.Objective{ID: "shared", Text: "From course B"})
	qA := seedQuestion(t, db, first.ID, "shared")
	qB := seedQuestion(t, db, second.ID, "shared")

	aA := seedAttempt(t, db, worker.ID, first.ID, 50, false, 1)
	aB := seedAttempt(t, db, worker.ID, second.ID, 50, false, 1)
	seedAnswers(t, db, aA.ID, qA.ID, 1, 9)
	seedAnswers(t, db, aB.ID, qB.ID, 8, 2)

	top, err := NewService(db).OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, "From course A", top[0].ObjectiveText)
	assert.Equal(t, 90, top[0].IncorrectPercentage)
	assert.Equal(t, "From course B", top[1].ObjectiveText)
	assert.Equal(t, 20, top[1].IncorrectPercentage)
}

func TestOrgPerformanceOverview_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrg(t, db, "Acme")
	worker := seedWorker(t, db, org.ID, "alice", "Nurse", "Clinical")
	crs := seedCourse(t, db, "Fire Safety", 80, 0,
		courseModels.Objective{ID: "obj-1", Text: "Objective"})
	q := seedQuestion(t, db, crs.ID, "obj-1")
	a := seedAttempt(t, db, worker.ID, crs.ID, 30, false, 1)
	seedAnswers(t, db, a.ID, q.ID, 3, 7)

	svc := NewService(db)
	first, err := svc.OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	second, err := svc.OrgPerformanceOverview(org.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
