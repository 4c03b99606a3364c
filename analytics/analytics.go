// Package analytics implements the performance reporting engine: a set
// of read-only aggregations turning quiz attempts and answers into
// per-objective, per-course, per-role and per-organization proficiency
// summaries. The engine never writes; every call re-fetches and
// re-aggregates from the current state of the store.
package analytics

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Policy constants. Thresholds and limits are fixed product policy but
// kept overridable per Service instance.
const (
	// DefaultSupportThreshold is the correct-percentage below which an
	// objective is flagged as needing support.
	DefaultSupportThreshold = 70

	// DefaultTopLimit caps ranked lists (struggling objectives, most
	// retrained courses).
	DefaultTopLimit = 5
)

// Learning-need statuses
const (
	StatusAtRisk       = "at_risk"
	StatusNeedsSupport = "needs_support"
)

// CourseRiskObjectiveID is the synthetic objective identifier carried
// by course-level at-risk records.
const CourseRiskObjectiveID = "course-risk"

const atRiskAction = "Review with a supervisor: the course was passed on the final allowed attempt with no margin above the pass mark."

// Service runs the reporting pipelines against a read-only snapshot of
// the record store.
type Service struct {
	db *gorm.DB

	// SupportThreshold and TopLimit default to the policy constants
	// above; tests and future configuration may override them.
	SupportThreshold int
	TopLimit         int
}

// NewService returns a reporting engine bound to db
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:               db,
		SupportThreshold: DefaultSupportThreshold,
		TopLimit:         DefaultTopLimit,
	}
}

// LearningNeed is one record of the worker needs analysis. At-risk
// records describe a whole course (ObjectiveID is
// CourseRiskObjectiveID and TotalQuestions is 0); needs-support records
// describe a single objective.
type LearningNeed struct {
	ObjectiveID     string `json:"objectiveId"`
	ObjectiveText   string `json:"objectiveText"`
	CourseID        uint   `json:"courseId"`
	CourseTitle     string `json:"courseTitle"`
	Status          string `json:"status"`
	Percentage      int    `json:"percentage"`
	TotalQuestions  int    `json:"totalQuestions"`
	SuggestedAction string `json:"suggestedAction"`
}

// StrugglingObjective is one row of the incorrect-rate ranking
type StrugglingObjective struct {
	ObjectiveID         string `json:"objectiveId"`
	ObjectiveText       string `json:"objectiveText"`
	CourseID            uint   `json:"courseId"`
	CourseTitle         string `json:"courseTitle"`
	IncorrectPercentage int    `json:"incorrectPercentage"`
	TotalAnswers        int    `json:"totalAnswers"`
}

// CoursePerformance summarises the filtered attempts at one course
type CoursePerformance struct {
	CourseID      uint    `json:"courseId"`
	CourseTitle   string  `json:"courseTitle"`
	AvgScore      int     `json:"avgScore"`
	PassRate      int     `json:"passRate"`
	AvgAttempts   float64 `json:"avgAttempts"` // attempts per unique worker, 1 decimal
	TotalAttempts int     `json:"totalAttempts"`
}

// RolePerformance summarises one (job title, worker category) group
type RolePerformance struct {
	JobTitle       string `json:"jobTitle"`
	Category       string `json:"category"`
	AvgScore       int    `json:"avgScore"`
	CompletionRate int    `json:"completionRate"`
	OverdueRate    int    `json:"overdueRate"`
	Workers        int    `json:"workers"`
}

// RetrainedCourse counts retraining attempts (attempt number > 1) at
// one course
type RetrainedCourse struct {
	CourseTitle string `json:"courseTitle"`
	Attempts    int    `json:"attempts"`
}

// RetrainingStats summarises retraining activity across the filtered
// attempt population
type RetrainingStats struct {
	WorkersInRetraining      int               `json:"workersInRetraining"`
	TopRetrainedCourses      []RetrainedCourse `json:"topRetrainedCourses"`
	RetrainingCompletionRate int               `json:"retrainingCompletionRate"`
}

// DetailedReport is the composite output of the detailed performance
// reporter; the four sections are computed independently.
type DetailedReport struct {
	CoursePerformance    []CoursePerformance   `json:"coursePerformance"`
	StrugglingObjectives []StrugglingObjective `json:"strugglingObjectives"`
	RolePerformance      []RolePerformance     `json:"rolePerformance"`
	RetrainingStats      RetrainingStats       `json:"retrainingStats"`
}

// ReportFilters narrows the population of the detailed report. Every
// field is optional: zero values mean "no filter". Date bounds apply to
// attempt creation time; Role and Category narrow the worker
// population; CourseID narrows attempts and assignments.
type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Role      string
	Category  string
	CourseID  uint
}

// roundPct returns round(100*part/total) clamped by construction to
// [0,100], or 0 when total is zero.
func roundPct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// roundMean returns the rounded mean of sum over count, or 0 when
// count is zero.
func roundMean(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
