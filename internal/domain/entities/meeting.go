package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting represents a processed meeting record. The transcript is immutable
// once created; summary, decisions and agenda coverage are written by the
// extraction pipeline and may be overwritten by a later update.
type Meeting struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title          string         `json:"title" gorm:"type:varchar(255);not null;index"`
	Transcript     string         `json:"transcript" gorm:"type:text;not null"`
	Agenda         *string        `json:"agenda,omitempty" gorm:"type:text"`
	Summary        *string        `json:"summary,omitempty" gorm:"type:text"`
	Decisions      datatypes.JSON `json:"decisions,omitempty" gorm:"type:jsonb"`
	AgendaCoverage datatypes.JSON `json:"agenda_coverage,omitempty" gorm:"type:jsonb"`
	ActionItems    []ActionItem   `json:"action_items,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new Meeting entity
func NewMeeting(title, transcript string, agenda *string) *Meeting {
	return &Meeting{
		ID:         uuid.New(),
		Title:      title,
		Transcript: transcript,
		Agenda:     agenda,
	}
}

// SetDecisions encodes the decision list into the jsonb column
func (m *Meeting) SetDecisions(decisions []string) error {
	if decisions == nil {
		m.Decisions = nil
		return nil
	}
	b, err := json.Marshal(decisions)
	if err != nil {
		return err
	}
	m.Decisions = datatypes.JSON(b)
	return nil
}

// SetAgendaCoverage encodes the coverage structure into the jsonb column
func (m *Meeting) SetAgendaCoverage(coverage *AgendaCoverage) error {
	if coverage == nil {
		m.AgendaCoverage = nil
		return nil
	}
	b, err := json.Marshal(coverage)
	if err != nil {
		return err
	}
	m.AgendaCoverage = datatypes.JSON(b)
	return nil
}

// DecodeDecisions decodes the stored decision list. A decode failure means
// the row is corrupt and is surfaced as an error, never swallowed.
func (m *Meeting) DecodeDecisions() ([]string, error) {
	if len(m.Decisions) == 0 {
		return []string{}, nil
	}
	var decisions []string
	if err := json.Unmarshal(m.Decisions, &decisions); err != nil {
		return nil, fmt.Errorf("%w: decisions for meeting %s: %v", ErrCorruptRecord, m.ID, err)
	}
	return decisions, nil
}

// DecodeAgendaCoverage decodes the stored coverage structure
func (m *Meeting) DecodeAgendaCoverage() (*AgendaCoverage, error) {
	if len(m.AgendaCoverage) == 0 {
		return nil, nil
	}
	var coverage AgendaCoverage
	if err := json.Unmarshal(m.AgendaCoverage, &coverage); err != nil {
		return nil, fmt.Errorf("%w: agenda_coverage for meeting %s: %v", ErrCorruptRecord, m.ID, err)
	}
	return &coverage, nil
}
