package engagement

import (
	"time"

	"github.com/google/uuid"
)

// ResourceVote existence means "user upvoted resource". The composite primary
// key enforces at most one row per pair; rows are only ever created or
// deleted, never updated.
type ResourceVote struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ResourceID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ResourceVote) TableName() string { return "resource_votes" }

// CommentVote is the same ledger shape scoped to a comment.
type CommentVote struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CommentID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentVote) TableName() string { return "comment_votes" }
