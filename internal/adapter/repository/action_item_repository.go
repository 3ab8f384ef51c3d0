package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// actionItemRepository implements the ActionItemRepository interface
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository backed by GORM
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// Create stores a new action item
func (r *actionItemRepository) Create(ctx context.Context, item *entities.ActionItem) error {
	return queryErr(r.db.WithContext(ctx).Create(item).Error)
}

// FindByID retrieves an action item by its ID
func (r *actionItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	var item entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrActionItemNotFound
		}
		return nil, queryErr(err)
	}
	return &item, nil
}

// ListByMeeting retrieves a meeting's action items, oldest first
func (r *actionItemRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, queryErr(err)
	}
	return items, nil
}

// ListAll retrieves action items across all meetings
func (r *actionItemRepository) ListAll(ctx context.Context) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, queryErr(err)
	}
	return items, nil
}

// Update applies the non-nil fields of the update to the action item
func (r *actionItemRepository) Update(ctx context.Context, id uuid.UUID, update repositories.ActionItemUpdate) (*entities.ActionItem, error) {
	var item *entities.ActionItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it entities.ActionItem
		if err := tx.Where("id = ?", id).First(&it).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entities.ErrActionItemNotFound
			}
			return err
		}

		if update.Description != nil {
			it.Description = *update.Description
		}
		if update.Owner != nil {
			it.Owner = update.Owner
		}
		if update.DueDate != nil {
			it.DueDate = update.DueDate
		}
		if update.Status != nil {
			it.Status = *update.Status
		}

		if err := tx.Save(&it).Error; err != nil {
			return err
		}
		item = &it
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}
	return item, nil
}

// SetStatus toggles an action item's completion status
func (r *actionItemRepository) SetStatus(ctx context.Context, id uuid.UUID, status bool) (*entities.ActionItem, error) {
	return r.Update(ctx, id, repositories.ActionItemUpdate{Status: &status})
}

// Delete removes an action item
func (r *actionItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.ActionItem{}, "id = ?", id)
	if result.Error != nil {
		return queryErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrActionItemNotFound
	}
	return nil
}

// Counts returns total and completed action item counts
func (r *actionItemRepository) Counts(ctx context.Context) (int64, int64, error) {
	var total, completed int64
	if err := r.db.WithContext(ctx).Model(&entities.ActionItem{}).Count(&total).Error; err != nil {
		return 0, 0, queryErr(err)
	}
	if err := r.db.WithContext(ctx).Model(&entities.ActionItem{}).Where("status = ?", true).Count(&completed).Error; err != nil {
		return 0, 0, queryErr(err)
	}
	return total, completed, nil
}
