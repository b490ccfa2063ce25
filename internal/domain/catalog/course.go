package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course levels form a small ordinal set (100..500).
var ValidLevels = []int{100, 200, 300, 400, 500}

// Course is created lazily the first time a resource references a new
// code+department pair. The composite unique index makes that creation a
// create-or-fetch, never a duplicate.
type Course struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InstitutionID uuid.UUID `gorm:"type:uuid;not null;index:idx_courses_scope_code,unique" json:"institution_id"`
	DepartmentID  uuid.UUID `gorm:"type:uuid;not null;index:idx_courses_scope_code,unique" json:"department_id"`
	Code          string    `gorm:"not null;index:idx_courses_scope_code,unique" json:"code"`
	Title         string    `json:"title"`
	Level         int       `gorm:"not null" json:"level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func IsValidLevel(level int) bool {
	for _, l := range ValidLevels {
		if l == level {
			return true
		}
	}
	return false
}
