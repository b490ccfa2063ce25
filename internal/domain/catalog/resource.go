package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource types.
const (
	TypeLectureNote  = "lecture_note"
	TypePastQuestion = "past_question"
	TypeTextbook     = "textbook"
	TypeAssignment   = "assignment"
)

var validTypes = map[string]struct{}{
	TypeLectureNote:  {},
	TypePastQuestion: {},
	TypeTextbook:     {},
	TypeAssignment:   {},
}

func IsValidType(t string) bool {
	_, ok := validTypes[t]
	return ok
}

// Resource is one uploaded course material. UpvotesCount is denormalized and
// must equal the number of resource_votes rows; the vote ledger keeps both in
// one transaction. FileURL is an opaque reference into external object
// storage and is never interpreted here.
type Resource struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InstitutionID uuid.UUID `gorm:"type:uuid;not null;index" json:"institution_id"`
	DepartmentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"department_id"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	UploaderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"uploader_id"`
	Title         string    `gorm:"not null" json:"title"`
	Type          string    `gorm:"not null" json:"type"`
	Level         int       `gorm:"not null" json:"level"`
	Session       string    `json:"session"`
	FileURL       string    `json:"file_url"`
	UpvotesCount  int       `gorm:"not null;default:0" json:"upvotes_count"`
	IsVerified    bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Resource) TableName() string { return "resources" }

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
