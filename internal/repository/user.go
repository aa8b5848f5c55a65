package repository

import (
	"context"
	"errors"

	"nestlink/internal/cache"
	"nestlink/internal/models"

	"gorm.io/gorm"
)

// UserFilters narrows List results.
type UserFilters struct {
	ExcludeEmail string
	Role         models.UserRole
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filters UserFilters) ([]models.User, error)
	IncrementKarma(ctx context.Context, id uint, amount int) (int, error)
	SetRating(ctx context.Context, id uint, rating float64) error
	UpsertNannyProfile(ctx context.Context, profile *models.NannyProfile) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// cachedUser is the cache payload for a user row. The wire shape hides the
// password hash (json:"-"), so a plain User round trip through the cache
// would come back without it and a later Save would persist the loss; the
// hash travels in its own field instead.
type cachedUser struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"password_hash"`
}

// errEmailUnknown aborts the email-index fill so absence is never cached; a
// registration right after a failed lookup must be visible immediately.
var errEmailUnknown = errors.New("email not registered")

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var entry cachedUser
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &entry, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).Preload("NannyProfile").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		entry.User = user
		entry.PasswordHash = user.Password
		return nil
	})
	if err != nil {
		return nil, err
	}

	user := entry.User
	user.Password = entry.PasswordHash
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user exists for the address, so
// callers can distinguish absence from failure. Lookups resolve through a
// cached email -> id index; emails never change, so index entries cannot go
// stale, and the row itself is served by GetByID under its own key.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var idx struct {
		ID uint `json:"id"`
	}
	err := cache.Aside(ctx, cache.UserEmailKey(email), &idx, cache.UserTTL, func() error {
		var user models.User
		lookupErr := r.db.WithContext(ctx).Select("id").Where("email = ?", email).First(&user).Error
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return errEmailUnknown
		}
		if lookupErr != nil {
			return models.NewInternalError(lookupErr)
		}
		idx.ID = user.ID
		return nil
	})
	if errors.Is(err, errEmailUnknown) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, idx.ID)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context, filters UserFilters) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Preload("NannyProfile")
	if filters.ExcludeEmail != "" {
		q = q.Where("email <> ?", filters.ExcludeEmail)
	}
	if filters.Role != "" {
		q = q.Where("role = ?", filters.Role)
	}
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// IncrementKarma applies an atomic in-database increment and returns the new
// value; concurrent increments never lose updates.
func (r *userRepository) IncrementKarma(ctx context.Context, id uint, amount int) (int, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("karma", gorm.Expr("karma + ?", amount))
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)

	var user models.User
	if err := r.db.WithContext(ctx).Select("karma").First(&user, id).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return user.Karma, nil
}

func (r *userRepository) SetRating(ctx context.Context, id uint, rating float64) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("rating", rating)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) UpsertNannyProfile(ctx context.Context, profile *models.NannyProfile) error {
	var existing models.NannyProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if saveErr := r.db.WithContext(ctx).Save(profile).Error; saveErr != nil {
			return models.NewInternalError(saveErr)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if createErr := r.db.WithContext(ctx).Create(profile).Error; createErr != nil {
			return models.NewInternalError(createErr)
		}
	default:
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, profile.UserID)
	return nil
}
