package server

import (
	"nestlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateOrGetMatch handles POST /api/matches
// Idempotent chat initiation: returns the existing match for the pair when one
// exists, otherwise creates it. The target may be addressed by email (lazily
// creating a placeholder account for unknown addresses) or by user_id.
func (s *Server) CreateOrGetMatch(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Email  string `json:"email"`
		UserID uint   `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	match, err := s.reactionService.CreateOrGetMatch(c.Context(), userID, req.Email, req.UserID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

// GetMatches handles GET /api/matches
// Active matches for the caller, each annotated with the last message and the
// caller's unread count.
func (s *Server) GetMatches(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	matches, err := s.reactionService.ListMatches(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}

// GetMessages handles GET /api/matches/:id/messages
// Returns the thread oldest-first and marks every message addressed to the
// caller as read.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thread, err := s.chatService.ListMessages(c.Context(), matchID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(thread)
}

// SendMessage handles POST /api/matches/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.chatService.SendMessage(c.Context(), matchID, userID, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// ToggleMessageReaction handles POST /api/messages/:id/reactions
// Adds the caller's emoji reaction if absent, removes it if present.
func (s *Server) ToggleMessageReaction(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.chatService.ToggleReaction(c.Context(), messageID, userID, req.Emoji)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(result)
}
