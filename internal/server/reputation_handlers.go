package server

import (
	"nestlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddReview handles POST /api/users/:id/reviews
// The target must be a nanny account; the nanny's rating is recomputed as the
// running average after the write.
func (s *Server) AddReview(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	nannyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reputationService.AddReview(c.Context(), nannyID, userID, req.Rating, req.Comment)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReviews handles GET /api/users/:id/reviews
func (s *Server) GetReviews(c *fiber.Ctx) error {
	if _, err := s.currentUserID(c); err != nil {
		return nil
	}
	nannyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reviews, err := s.reputationService.ListReviews(c.Context(), nannyID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}
