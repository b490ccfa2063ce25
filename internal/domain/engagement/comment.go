package engagement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is discussion attached to a resource. UpvotesCount mirrors the
// comment_votes rows the same way resources mirror resource_votes.
type Comment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResourceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"resource_id"`
	AuthorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Body         string    `gorm:"not null;type:text" json:"body"`
	UpvotesCount int       `gorm:"not null;default:0" json:"upvotes_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
