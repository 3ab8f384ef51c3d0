package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// CreateWithActionItems stores the meeting and its action items in a single
// transaction. Any error rolls back the whole write.
func (r *meetingRepository) CreateWithActionItems(ctx context.Context, meeting *entities.Meeting, items []*entities.ActionItem) error {
	return txErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.MeetingID = meeting.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, queryErr(err)
	}
	return &meeting, nil
}

// List retrieves meetings ordered by creation date, newest first
func (r *meetingRepository) List(ctx context.Context, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&meetings).Error
	if err != nil {
		return nil, queryErr(err)
	}
	return meetings, nil
}

// Update applies the non-nil fields of the update to the meeting
func (r *meetingRepository) Update(ctx context.Context, id uuid.UUID, update repositories.MeetingUpdate) (*entities.Meeting, error) {
	var meeting *entities.Meeting

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m entities.Meeting
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entities.ErrMeetingNotFound
			}
			return err
		}

		if update.Title != nil {
			m.Title = *update.Title
		}
		if update.Summary != nil {
			m.Summary = update.Summary
		}
		if update.Decisions != nil {
			if err := m.SetDecisions(update.Decisions); err != nil {
				return err
			}
		}
		if update.AgendaCoverage != nil {
			if err := m.SetAgendaCoverage(update.AgendaCoverage); err != nil {
				return err
			}
		}

		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		meeting = &m
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}
	return meeting, nil
}

// Delete removes the meeting; its action items go with it via the
// ON DELETE CASCADE constraint.
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id)
	if result.Error != nil {
		return queryErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// Count returns the total number of meetings
func (r *meetingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Meeting{}).Count(&count).Error
	return count, queryErr(err)
}
