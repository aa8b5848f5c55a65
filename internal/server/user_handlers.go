package server

import (
	"net/url"
	"time"

	"nestlink/internal/models"
	"nestlink/internal/repository"
	"nestlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// Absent fields are left unchanged; list fields replace the stored lists.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Name         *string                    `json:"name"`
		Phone        *string                    `json:"phone"`
		Avatar       *string                    `json:"avatar"`
		PhotoURL     *string                    `json:"photo_url"`
		Bio          *string                    `json:"bio"`
		Location     *string                    `json:"location"`
		BirthDate    *time.Time                 `json:"birth_date"`
		Latitude     *float64                   `json:"latitude"`
		Longitude    *float64                   `json:"longitude"`
		Interests    []string                   `json:"interests"`
		Kids         []models.Kid               `json:"kids"`
		Friends      []string                   `json:"friends"`
		NannyProfile *service.NannyProfileInput `json:"nanny_profile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:       userID,
		Name:         req.Name,
		Phone:        req.Phone,
		Avatar:       req.Avatar,
		PhotoURL:     req.PhotoURL,
		Bio:          req.Bio,
		Location:     req.Location,
		BirthDate:    req.BirthDate,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Interests:    req.Interests,
		Kids:         req.Kids,
		Friends:      req.Friends,
		NannyProfile: req.NannyProfile,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
// Supports exclude_email and role query filters for directory browsing.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	if _, err := s.currentUserID(c); err != nil {
		return nil
	}

	filters := repository.UserFilters{
		ExcludeEmail: c.Query("exclude_email"),
		Role:         models.UserRole(c.Query("role")),
	}
	if filters.Role != "" && !filters.Role.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("role must be parent or nanny"))
	}

	users, err := s.userService.ListUsers(c.Context(), filters)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserByEmail handles GET /api/users/by-email/:email
func (s *Server) GetUserByEmail(c *fiber.Ctx) error {
	email, err := decodeEmailParam(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByEmail(c.Context(), email)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// GetKarma handles GET /api/users/:id/karma
func (s *Server) GetKarma(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	karma, err := s.userService.GetKarma(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": id, "karma": karma})
}

// GetKarmaByEmail handles GET /api/users/by-email/:email/karma
func (s *Server) GetKarmaByEmail(c *fiber.Ctx) error {
	email, err := decodeEmailParam(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByEmail(c.Context(), email)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": user.ID, "karma": user.Karma})
}

// AddKarma handles POST /api/users/:id/karma
// An omitted amount defaults to 1; an explicit non-positive amount is
// rejected. Any authenticated user may thank any other account.
func (s *Server) AddKarma(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Amount *int `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	amount := 1
	if req.Amount != nil {
		amount = *req.Amount
	}

	karma, err := s.userService.AddKarma(c.Context(), id, amount)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": id, "karma": karma})
}

// decodeEmailParam extracts the :email route parameter, which arrives
// URL-encoded. On failure it writes a 400 response and returns
// errResponseWritten.
func decodeEmailParam(c *fiber.Ctx) (string, error) {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid email"))
		return "", errResponseWritten
	}
	return email, nil
}
