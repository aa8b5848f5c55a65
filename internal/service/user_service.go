// Package service provides application business logic.
package service

import (
	"context"
	"strings"
	"time"

	"nestlink/internal/models"
	"nestlink/internal/repository"
	"nestlink/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput is the input for account registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	PhotoURL string
	Role     models.UserRole
}

// NannyProfileInput carries professional attributes for nanny accounts.
type NannyProfileInput struct {
	HourlyRate      *float64 `json:"hourly_rate"`
	ExperienceYears *int     `json:"experience_years"`
	Education       *string  `json:"education"`
	Specializations []string `json:"specializations"`
	Certifications  []string `json:"certifications"`
	Languages       []string `json:"languages"`
	AvailableHours  *string  `json:"available_hours"`
}

// UpdateProfileInput is the input for a partial profile update.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID       uint
	Name         *string
	Phone        *string
	Avatar       *string
	PhotoURL     *string
	Bio          *string
	Location     *string
	BirthDate    *time.Time
	Latitude     *float64
	Longitude    *float64
	Interests    []string
	Kids         []models.Kid
	Friends      []string
	NannyProfile *NannyProfileInput
}

// Register creates an account, or returns the existing one unchanged when the
// email is already registered and the supplied password verifies against it.
// A same-payload retry therefore gets the same user id and creates no second
// row; a different password on a taken email is rejected.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	role := in.Role
	if role == "" {
		role = models.RoleParent
	}
	if !role.Valid() {
		return nil, models.NewValidationError("role must be parent or nanny")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if cmpErr := bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(in.Password)); cmpErr != nil {
			return nil, models.NewUnauthorizedError("invalid email or password")
		}
		return existing, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	now := time.Now()
	user := &models.User{
		Email:        in.Email,
		Password:     string(hashed),
		Name:         strings.TrimSpace(in.Name),
		Phone:        in.Phone,
		PhotoURL:     in.PhotoURL,
		Role:         role,
		Online:       true,
		LastActiveAt: &now,
		Interests:    models.JSONStringList{},
		Kids:         models.JSONKidList{},
		Friends:      models.JSONStringList{},
	}
	user.Avatar = user.DisplayAvatar()

	if createErr := s.userRepo.Create(ctx, user); createErr != nil {
		// Concurrent registration for the same email: fall back to the
		// winner's row, which the unique index guarantees is unique.
		if appErr, ok := createErr.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			winner, getErr := s.userRepo.GetByEmail(ctx, in.Email)
			if getErr == nil && winner != nil {
				if cmpErr := bcrypt.CompareHashAndPassword([]byte(winner.Password), []byte(in.Password)); cmpErr != nil {
					return nil, models.NewUnauthorizedError("invalid email or password")
				}
				return winner, nil
			}
		}
		return nil, createErr
	}
	return user, nil
}

// Login verifies credentials and marks the account online. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("invalid email or password")
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("invalid email or password")
	}

	now := time.Now()
	user.Online = true
	user.LastActiveAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID returns one user with profile lists deserialized.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByEmail returns one user addressed by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessageError("User with email " + email + " not found")
	}
	return user, nil
}

// ListUsers returns all users matching the filters.
func (s *UserService) ListUsers(ctx context.Context, filters repository.UserFilters) ([]models.User, error) {
	return s.userRepo.List(ctx, filters)
}

// UpdateProfile applies a partial update; list fields are re-serialized by
// their column types, and nanny professional data goes to its own record.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = *in.Bio
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.PhotoURL != nil {
		user.PhotoURL = *in.PhotoURL
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.BirthDate != nil {
		user.BirthDate = in.BirthDate
	}
	if in.Latitude != nil {
		user.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		user.Longitude = in.Longitude
	}
	if in.Interests != nil {
		user.Interests = in.Interests
	}
	if in.Kids != nil {
		user.Kids = in.Kids
	}
	if in.Friends != nil {
		user.Friends = in.Friends
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if in.NannyProfile != nil {
		if user.Role != models.RoleNanny {
			return nil, models.NewValidationError("only nanny accounts have a professional profile")
		}
		profile := user.NannyProfile
		if profile == nil {
			profile = &models.NannyProfile{UserID: user.ID}
		}
		applyNannyProfile(profile, in.NannyProfile)
		if err := s.userRepo.UpsertNannyProfile(ctx, profile); err != nil {
			return nil, err
		}
		user.NannyProfile = profile
	}

	return user, nil
}

func applyNannyProfile(profile *models.NannyProfile, in *NannyProfileInput) {
	if in.HourlyRate != nil {
		profile.HourlyRate = *in.HourlyRate
	}
	if in.ExperienceYears != nil {
		profile.ExperienceYears = *in.ExperienceYears
	}
	if in.Education != nil {
		profile.Education = *in.Education
	}
	if in.Specializations != nil {
		profile.Specializations = in.Specializations
	}
	if in.Certifications != nil {
		profile.Certifications = in.Certifications
	}
	if in.Languages != nil {
		profile.Languages = in.Languages
	}
	if in.AvailableHours != nil {
		profile.AvailableHours = *in.AvailableHours
	}
}

// AddKarma increments a user's karma counter and returns the new value.
// Only positive amounts are accepted.
func (s *UserService) AddKarma(ctx context.Context, userID uint, amount int) (int, error) {
	if amount <= 0 {
		return 0, models.NewValidationError("karma amount must be a positive number")
	}
	return s.userRepo.IncrementKarma(ctx, userID, amount)
}

// GetKarma returns the current karma value for a user.
func (s *UserService) GetKarma(ctx context.Context, userID uint) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Karma, nil
}
