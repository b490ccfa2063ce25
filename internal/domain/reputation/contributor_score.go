package reputation

import (
	"time"

	"github.com/google/uuid"
)

// ContributorScore is derived state, recomputed from resources, votes and
// comments. It is never hand-edited; the aggregator upserts whole rows.
type ContributorScore struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	InstitutionID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"institution_id"`
	UploadCount     int       `gorm:"not null;default:0" json:"upload_count"`
	ResourceUpvotes int       `gorm:"not null;default:0" json:"resource_upvotes"`
	CommentUpvotes  int       `gorm:"not null;default:0" json:"comment_upvotes"`
	Score           float64   `gorm:"not null;default:0;index" json:"score"`
	ComputedAt      time.Time `json:"computed_at"`
}

func (ContributorScore) TableName() string { return "contributor_scores" }

// Weights is the documented score formula configuration. The upvote-derived
// signals weigh equally and each outweigh a raw upload, rewarding quality
// over quantity.
type Weights struct {
	Upload         float64 `yaml:"upload"`
	ResourceUpvote float64 `yaml:"resource_upvote"`
	CommentUpvote  float64 `yaml:"comment_upvote"`
}

// DefaultWeights are used when no scoring config file overrides them.
var DefaultWeights = Weights{
	Upload:         1.0,
	ResourceUpvote: 2.0,
	CommentUpvote:  2.0,
}

// ScoreOf applies the weighted combination to the three raw inputs.
func (w Weights) ScoreOf(uploads, resourceUpvotes, commentUpvotes int) float64 {
	return w.Upload*float64(uploads) +
		w.ResourceUpvote*float64(resourceUpvotes) +
		w.CommentUpvote*float64(commentUpvotes)
}
