package server

import (
	"time"

	"nestlink/internal/models"
	"nestlink/internal/repository"
	"nestlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBoardPost handles POST /api/board/posts
func (s *Server) CreateBoardPost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Type        models.BoardPostType `json:"type"`
		Description string               `json:"description"`
		City        string               `json:"city"`
		District    string               `json:"district"`
		DateFrom    *time.Time           `json:"date_from"`
		DateUntil   *time.Time           `json:"date_until"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.boardService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:    userID,
		Type:        req.Type,
		Description: req.Description,
		City:        req.City,
		District:    req.District,
		DateFrom:    req.DateFrom,
		DateUntil:   req.DateUntil,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetBoardPosts handles GET /api/board/posts
// Filters: type, city, status (defaults to active), author_id.
func (s *Server) GetBoardPosts(c *fiber.Ctx) error {
	if _, err := s.currentUserID(c); err != nil {
		return nil
	}

	filters := repository.BoardFilters{
		Type:   models.BoardPostType(c.Query("type")),
		City:   c.Query("city"),
		Status: models.BoardPostStatus(c.Query("status")),
	}
	if authorID := c.QueryInt("author_id", 0); authorID > 0 {
		filters.AuthorID = uint(authorID)
	}

	posts, err := s.boardService.ListPosts(c.Context(), filters)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetBoardPost handles GET /api/board/posts/:id
// Every read counts a view, whoever the reader is.
func (s *Server) GetBoardPost(c *fiber.Ctx) error {
	if _, err := s.currentUserID(c); err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.boardService.GetPost(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// UpdateBoardPost handles PATCH /api/board/posts/:id
// Author-only. Selecting a responder closes the post; closed posts cannot be
// reopened.
func (s *Server) UpdateBoardPost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status              *models.BoardPostStatus `json:"status"`
		SelectedResponderID *uint                   `json:"selected_responder_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.boardService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:              id,
		ActingUserID:        userID,
		Status:              req.Status,
		SelectedResponderID: req.SelectedResponderID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// DeleteBoardPost handles DELETE /api/board/posts/:id
func (s *Server) DeleteBoardPost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.boardService.DeletePost(c.Context(), id, userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// RespondToBoardPost handles POST /api/board/posts/:id/responses
func (s *Server) RespondToBoardPost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	response, err := s.boardService.Respond(c.Context(), id, userID, req.Message)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// SaveBoardPost handles POST /api/board/posts/:id/save
func (s *Server) SaveBoardPost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	saved, err := s.boardService.SavePost(c.Context(), userID, id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// UnsaveBoardPost handles DELETE /api/board/posts/:id/save
func (s *Server) UnsaveBoardPost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.boardService.UnsavePost(c.Context(), userID, id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post unsaved"})
}

// GetSavedPosts handles GET /api/board/saved
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	posts, err := s.boardService.ListSaved(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}
