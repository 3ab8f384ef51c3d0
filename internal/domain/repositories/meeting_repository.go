package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MeetingUpdate carries the mutable fields of a meeting; nil fields are
// left untouched. The transcript is immutable and has no update field.
type MeetingUpdate struct {
	Title          *string
	Summary        *string
	Decisions      []string
	AgendaCoverage *entities.AgendaCoverage
}

// MeetingRepository persists Meeting records
type MeetingRepository interface {
	// CreateWithActionItems stores a meeting and its action items in one
	// transaction; no partial writes survive an error.
	CreateWithActionItems(ctx context.Context, meeting *entities.Meeting, items []*entities.ActionItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	// List returns meetings newest-first, up to limit.
	List(ctx context.Context, limit int) ([]*entities.Meeting, error)
	Update(ctx context.Context, id uuid.UUID, update MeetingUpdate) (*entities.Meeting, error)
	// Delete removes the meeting and, by cascade, its action items.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// ActionItemUpdate carries the mutable fields of an action item
type ActionItemUpdate struct {
	Description *string
	Owner       *string
	DueDate     *string
	Status      *bool
}

// ActionItemRepository persists ActionItem records
type ActionItemRepository interface {
	Create(ctx context.Context, item *entities.ActionItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)
	// ListByMeeting returns a meeting's items oldest-first.
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)
	ListAll(ctx context.Context) ([]*entities.ActionItem, error)
	Update(ctx context.Context, id uuid.UUID, update ActionItemUpdate) (*entities.ActionItem, error)
	SetStatus(ctx context.Context, id uuid.UUID, status bool) (*entities.ActionItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Counts returns total and completed item counts.
	Counts(ctx context.Context) (total int64, completed int64, err error)
}
