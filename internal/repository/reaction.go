package repository

import (
	"context"
	"errors"

	"nestlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines persistence operations for user reactions.
type ReactionRepository interface {
	GetByPair(ctx context.Context, fromUserID, toUserID uint) (*models.UserReaction, error)
	Upsert(ctx context.Context, reaction *models.UserReaction) error
	Delete(ctx context.Context, fromUserID, toUserID uint) error
	ListByFromUser(ctx context.Context, fromUserID uint) ([]models.UserReaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository returns a new ReactionRepository implementation.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// GetByPair returns (nil, nil) when no reaction exists for the ordered pair.
func (r *reactionRepository) GetByPair(ctx context.Context, fromUserID, toUserID uint) (*models.UserReaction, error) {
	var reaction models.UserReaction
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &reaction, nil
}

// Upsert creates the ordered-pair edge or overwrites its type.
// ON CONFLICT on the pair index makes re-reacting an overwrite, not a
// duplicate, even under concurrent requests.
func (r *reactionRepository) Upsert(ctx context.Context, reaction *models.UserReaction) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "updated_at"}),
	}).Create(reaction).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reactionRepository) Delete(ctx context.Context, fromUserID, toUserID uint) error {
	res := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Delete(&models.UserReaction{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundMessageError("Reaction not found")
	}
	return nil
}

func (r *reactionRepository) ListByFromUser(ctx context.Context, fromUserID uint) ([]models.UserReaction, error) {
	var reactions []models.UserReaction
	err := r.db.WithContext(ctx).
		Preload("ToUser").
		Where("from_user_id = ?", fromUserID).
		Order("created_at DESC").
		Find(&reactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reactions, nil
}
