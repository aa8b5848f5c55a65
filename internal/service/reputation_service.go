package service

import (
	"context"

	"nestlink/internal/models"
	"nestlink/internal/repository"
	"nestlink/internal/validation"
)

// ReputationService provides nanny reviews and the derived rating.
// Parent-side karma lives on UserService; the two tracks are independent.
type ReputationService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

// NewReputationService returns a new ReputationService.
func NewReputationService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) *ReputationService {
	return &ReputationService{reviewRepo: reviewRepo, userRepo: userRepo}
}

// AddReview appends a review for a nanny and recomputes the nanny's rating
// as the running average. The author's name is snapshotted at write time.
func (s *ReputationService) AddReview(ctx context.Context, nannyID, fromUserID uint, rating int, comment string) (*models.Review, error) {
	if err := validation.ValidateRating(rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	nanny, err := s.userRepo.GetByID(ctx, nannyID)
	if err != nil {
		return nil, err
	}
	if nanny.Role != models.RoleNanny {
		return nil, models.NewValidationError("reviews can only target nanny accounts")
	}
	if nannyID == fromUserID {
		return nil, models.NewValidationError("cannot review yourself")
	}

	author, err := s.userRepo.GetByID(ctx, fromUserID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		NannyID:      nannyID,
		FromUserID:   fromUserID,
		FromUserName: author.Name,
		Rating:       rating,
		Comment:      comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	avg, err := s.reviewRepo.AverageForNanny(ctx, nannyID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetRating(ctx, nannyID, avg); err != nil {
		return nil, err
	}

	return review, nil
}

// ListReviews returns all reviews for a nanny, newest first.
func (s *ReputationService) ListReviews(ctx context.Context, nannyID uint) ([]models.Review, error) {
	if _, err := s.userRepo.GetByID(ctx, nannyID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByNanny(ctx, nannyID)
}
