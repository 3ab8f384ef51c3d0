package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItem represents a task extracted from a meeting, tracked to
// completion independently of the meeting record. DueDate is a free-text
// hint from the transcript ("by Friday"), not a validated date.
type ActionItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Owner       *string   `json:"owner,omitempty" gorm:"type:varchar(255)"`
	DueDate     *string   `json:"due_date,omitempty" gorm:"type:varchar(100)"`
	Status      bool      `json:"status" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a new ActionItem entity with completion status false
func NewActionItem(meetingID uuid.UUID, description string) *ActionItem {
	return &ActionItem{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Description: description,
		Status:      false,
	}
}
