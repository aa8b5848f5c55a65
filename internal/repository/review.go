package repository

import (
	"context"

	"nestlink/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByNanny(ctx context.Context, nannyID uint) ([]models.Review, error)
	AverageForNanny(ctx context.Context, nannyID uint) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) ListByNanny(ctx context.Context, nannyID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("nanny_id = ?", nannyID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) AverageForNanny(ctx context.Context, nannyID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("nanny_id = ?", nannyID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
