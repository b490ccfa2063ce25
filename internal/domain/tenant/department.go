package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department origin tags used by the resolver's candidate list.
const (
	OriginLocal  = "local"
	OriginGlobal = "global"
)

// Department is either institution-local (InstitutionID set) or a global
// cross-institution name suggestion (InstitutionID nil). Names are unique per
// institution; the composite unique index backs the create-or-fetch path that
// closes the check-then-insert race.
type Department struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	InstitutionID *uuid.UUID `gorm:"type:uuid;index:idx_departments_institution_name,unique" json:"institution_id,omitempty"`
	Name          string     `gorm:"not null;index:idx_departments_institution_name,unique" json:"name"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Department) TableName() string { return "departments" }

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsGlobal reports whether the row belongs to the shared suggestion pool.
func (d *Department) IsGlobal() bool { return d.InstitutionID == nil }
