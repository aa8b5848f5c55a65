package server

import (
	"nestlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetBookings handles GET /api/bookings
// Bookings the caller is party to, either side, newest first.
func (s *Server) GetBookings(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	bookings, err := s.bookingRepo.ListForUser(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/:id
// Only the booking's client or nanny may read it.
func (s *Server) GetBooking(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	booking, err := s.bookingRepo.GetByID(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	if booking.ClientID != userID && booking.NannyID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("not a participant of this booking"))
	}
	return c.JSON(booking)
}
