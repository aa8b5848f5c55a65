package repository

import (
	"context"
	"errors"

	"nestlink/internal/models"

	"gorm.io/gorm"
)

// BookingRepository defines read-only persistence operations for bookings.
// The API never creates bookings; rows come from seeding or imports.
type BookingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository returns a new BookingRepository implementation.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Nanny").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Booking", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Nanny").
		Where("client_id = ? OR nanny_id = ?", userID, userID).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookings, nil
}
