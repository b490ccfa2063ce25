package moderation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report statuses. pending -> resolved and pending -> rejected are the only
// transitions; both are terminal.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// ResourceSnapshot is the minimal view of the reported resource captured at
// report time, so moderators can still act after the resource is deleted.
type ResourceSnapshot struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	IsVerified bool   `json:"is_verified"`
	FileURL    string `json:"file_url"`
}

// Report rows are never deleted, even after the underlying resource is.
type Report struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ResourceID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"resource_id"`
	InstitutionID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"institution_id"`
	ReporterID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason           string         `gorm:"not null;type:text" json:"reason"`
	Status           string         `gorm:"not null;default:'pending';index" json:"status"`
	ResourceSnapshot datatypes.JSON `json:"resource_snapshot"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Report) TableName() string { return "reports" }

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (r *Report) IsTerminal() bool {
	return r.Status == StatusResolved || r.Status == StatusRejected
}
