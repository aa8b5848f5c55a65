package server

import (
	"net/url"

	"nestlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// React handles POST /api/reactions
// Records the caller's like/block decision on a peer, overwriting any earlier
// decision. A mutual like reports matched=true with the match in the payload.
func (s *Server) React(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Email string              `json:"email"`
		Type  models.ReactionType `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("email is required"))
	}

	result, err := s.reactionService.React(c.Context(), userID, req.Email, req.Type)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetReactions handles GET /api/reactions
// Returns the caller's outgoing decisions grouped into liked and blocked.
func (s *Server) GetReactions(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	lists, err := s.reactionService.ListReactions(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(lists)
}

// Unreact handles DELETE /api/reactions/:email
func (s *Server) Unreact(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	email, decodeErr := url.PathUnescape(c.Params("email"))
	if decodeErr != nil || email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid email"))
	}

	if err := s.reactionService.Unreact(c.Context(), userID, email); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reaction removed"})
}
