package meeting

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MeetingResponse is the API shape of a meeting. Decisions and agenda
// coverage come back decoded, not as raw jsonb.
type MeetingResponse struct {
	ID             uuid.UUID                `json:"id"`
	Title          string                   `json:"title"`
	Agenda         *string                  `json:"agenda,omitempty"`
	Summary        *string                  `json:"summary,omitempty"`
	Decisions      []string                 `json:"decisions"`
	AgendaCoverage *entities.AgendaCoverage `json:"agenda_coverage,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// MeetingDetailResponse is a meeting with its action items
type MeetingDetailResponse struct {
	MeetingResponse
	ActionItems []ActionItemResponse `json:"action_items"`
}

// ActionItemResponse is the API shape of an action item
type ActionItemResponse struct {
	ID          uuid.UUID `json:"id"`
	MeetingID   uuid.UUID `json:"meeting_id"`
	Description string    `json:"description"`
	Owner       *string   `json:"owner,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMeetingResponse maps a meeting entity to its API shape
func NewMeetingResponse(m *entities.Meeting) (*MeetingResponse, error) {
	decisions, err := m.DecodeDecisions()
	if err != nil {
		return nil, err
	}
	coverage, err := m.DecodeAgendaCoverage()
	if err != nil {
		return nil, err
	}

	return &MeetingResponse{
		ID:             m.ID,
		Title:          m.Title,
		Agenda:         m.Agenda,
		Summary:        m.Summary,
		Decisions:      decisions,
		AgendaCoverage: coverage,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

// NewActionItemResponse maps an action item entity to its API shape
func NewActionItemResponse(item *entities.ActionItem) ActionItemResponse {
	return ActionItemResponse{
		ID:          item.ID,
		MeetingID:   item.MeetingID,
		Description: item.Description,
		Owner:       item.Owner,
		DueDate:     item.DueDate,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewActionItemResponses maps a slice of action item entities
func NewActionItemResponses(items []*entities.ActionItem) []ActionItemResponse {
	out := make([]ActionItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewActionItemResponse(item))
	}
	return out
}
