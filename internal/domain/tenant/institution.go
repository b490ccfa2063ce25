package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Institution is the root tenant boundary. Every department, course and
// resource is scoped to exactly one institution.
type Institution struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Institution) TableName() string { return "institutions" }

func (i *Institution) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
