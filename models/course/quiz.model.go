package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion is a multiple-choice question on a course quiz. An empty
// ObjectiveID means the question is not linked to a learning objective
// and its answers are excluded from per-objective aggregation.
type QuizQuestion struct {
	gorm.Model
	CourseID     uint           `json:"course_id" gorm:"index;not null"`
	ObjectiveID  string         `json:"objective_id" gorm:"index;default:''"`
	Text         string         `json:"text"`
	Options      datatypes.JSON `json:"options"` // []string
	CorrectIndex int            `json:"-"`
	OrderIndex   int            `json:"order_index" gorm:"default:0"`
	IsDeleted    bool           `gorm:"default:false"`
}

// OptionList decodes the Options column
func (q *QuizQuestion) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(q.Options, &list); err != nil {
		return nil
	}
	return list
}

// QuizAttempt is one graded run through a course quiz. AttemptNumber is
// 1-based per (worker, course) and increases on every retake.
type QuizAttempt struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"index;not null"`
	CourseID      uint `json:"course_id" gorm:"index;not null"`
	Score         int  `json:"score"` // 0-100
	Passed        bool `json:"passed" gorm:"default:false"`
	AttemptNumber int  `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool `gorm:"default:false"`
}

// QuizAnswer is a worker's answer to one question within an attempt
type QuizAnswer struct {
	gorm.Model
	AttemptID     uint `json:"attempt_id" gorm:"index;not null"`
	QuestionID    uint `json:"question_id" gorm:"index;not null"`
	SelectedIndex int  `json:"selected_index"`
	IsCorrect     bool `json:"is_correct" gorm:"default:false"`
	IsDeleted     bool `gorm:"default:false"`
}
