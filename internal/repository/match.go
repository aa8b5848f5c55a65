package repository

import (
	"context"
	"errors"

	"nestlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines persistence operations for matches.
type MatchRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Match, error)
	GetByPair(ctx context.Context, userA, userB uint) (*models.Match, error)
	// GetOrCreate returns the match for the unordered pair, creating it if
	// absent. The bool result reports whether a new match was created.
	GetOrCreate(ctx context.Context, userA, userB uint) (*models.Match, bool, error)
	ListActiveForUser(ctx context.Context, userID uint) ([]models.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository returns a new MatchRepository implementation.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) GetByID(ctx context.Context, id uint) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).
		Preload("User1").
		Preload("User2").
		First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Match", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &match, nil
}

// GetByPair returns (nil, nil) when no match exists for the unordered pair.
func (r *matchRepository) GetByPair(ctx context.Context, userA, userB uint) (*models.Match, error) {
	if userA > userB {
		userA, userB = userB, userA
	}
	var match models.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", userA, userB).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &match, nil
}

// GetOrCreate inserts with ON CONFLICT DO NOTHING on the normalized pair
// index, then re-reads. Two concurrent creations for the same pair therefore
// converge on a single row instead of racing a check-then-insert.
func (r *matchRepository) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Match, bool, error) {
	match := &models.Match{User1ID: userA, User2ID: userB, Active: true}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoNothing: true,
	}).Create(match)
	if res.Error != nil {
		return nil, false, models.NewInternalError(res.Error)
	}

	created := res.RowsAffected > 0
	if created && match.ID != 0 {
		return match, true, nil
	}

	existing, err := r.GetByPair(ctx, userA, userB)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, models.NewInternalError(errors.New("match upsert yielded no row"))
	}
	return existing, created, nil
}

// ListActiveForUser returns all active matches for the user, each annotated
// with the most recent message and the count of unread messages addressed to
// the user.
func (r *matchRepository) ListActiveForUser(ctx context.Context, userID uint) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Preload("User1").
		Preload("User2").
		Where("active = ? AND (user1_id = ? OR user2_id = ?)", true, userID, userID).
		Order("updated_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for i := range matches {
		var last models.Message
		err := r.db.WithContext(ctx).
			Where("match_id = ?", matches[i].ID).
			Order("created_at DESC").
			First(&last).Error
		switch {
		case err == nil:
			matches[i].LastMessage = &last
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No messages yet.
		default:
			return nil, models.NewInternalError(err)
		}

		var unread int64
		if err := r.db.WithContext(ctx).Model(&models.Message{}).
			Where("match_id = ? AND receiver_id = ? AND read = ?", matches[i].ID, userID, false).
			Count(&unread).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		matches[i].UnreadCount = unread
	}

	return matches, nil
}
