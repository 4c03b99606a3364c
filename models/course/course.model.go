package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Objective is one learning objective of a course. The course's
// Objectives column holds the authoritative ordered list.
type Objective struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Course represents a compliance-training course
type Course struct {
	gorm.Model
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category" gorm:"default:''"`
	Status      string         `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, ARCHIVED
	Objectives  datatypes.JSON `json:"objectives"`                    // ordered []Objective
	PassMark    int            `json:"pass_mark" gorm:"default:80"`   // percentage required to pass
	MaxAttempts int            `json:"max_attempts" gorm:"default:0"` // 0 = unlimited
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}

// ObjectiveList decodes the Objectives column. A malformed column is
// treated as an empty list rather than an error; the engine skips
// objectives it cannot resolve.
func (c *Course) ObjectiveList() []Objective {
	if len(c.Objectives) == 0 {
		return nil
	}
	var list []Objective
	if err := json.Unmarshal(c.Objectives, &list); err != nil {
		return nil
	}
	return list
}

// FindObjective resolves an objective ID against the course's current
// objective list.
func (c *Course) FindObjective(id string) (Objective, bool) {
	for _, obj := range c.ObjectiveList() {
		if obj.ID == id {
			return obj, true
		}
	}
	return Objective{}, false
}
