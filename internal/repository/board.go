package repository

import (
	"context"
	"errors"

	"nestlink/internal/cache"
	"nestlink/internal/models"

	"gorm.io/gorm"
)

// BoardFilters narrows ListPosts results.
type BoardFilters struct {
	Type     models.BoardPostType
	City     string
	Status   models.BoardPostStatus
	AuthorID uint
}

// BoardRepository defines persistence operations for the classified board.
type BoardRepository interface {
	CreatePost(ctx context.Context, post *models.BoardPost) error
	GetPost(ctx context.Context, id uint) (*models.BoardPost, error)
	ListPosts(ctx context.Context, filters BoardFilters) ([]models.BoardPost, error)
	UpdatePost(ctx context.Context, post *models.BoardPost) error
	// DeletePost removes the post, its responses and its bookmarks in one
	// transaction.
	DeletePost(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	HasResponse(ctx context.Context, postID, responderID uint) (bool, error)
	CreateResponse(ctx context.Context, response *models.BoardResponse) error
	GetSaved(ctx context.Context, userID, postID uint) (*models.SavedPost, error)
	CreateSaved(ctx context.Context, saved *models.SavedPost) error
	DeleteSaved(ctx context.Context, userID, postID uint) error
	ListSavedByUser(ctx context.Context, userID uint) ([]models.SavedPost, error)
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository returns a new BoardRepository implementation.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) CreatePost(ctx context.Context, post *models.BoardPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardRepository) GetPost(ctx context.Context, id uint) (*models.BoardPost, error) {
	var post models.BoardPost
	err := cache.Aside(ctx, cache.BoardPostKey(id), &post, cache.BoardPostTTL, func() error {
		loadErr := r.db.WithContext(ctx).
			Preload("Author").
			Preload("Responses", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Preload("Responses.Responder").
			Preload("SelectedResponder").
			First(&post, id).Error
		if loadErr != nil {
			if errors.Is(loadErr, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(loadErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *boardRepository) ListPosts(ctx context.Context, filters BoardFilters) ([]models.BoardPost, error) {
	var posts []models.BoardPost
	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Responses.Responder").
		Preload("SelectedResponder")
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.City != "" {
		q = q.Where("city = ?", filters.City)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.AuthorID != 0 {
		q = q.Where("author_id = ?", filters.AuthorID)
	}
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *boardRepository) UpdatePost(ctx context.Context, post *models.BoardPost) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBoardPost(ctx, post.ID)
	return nil
}

func (r *boardRepository) DeletePost(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.BoardResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BoardPost{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBoardPost(ctx, id)
	return nil
}

// IncrementViewCount applies an atomic in-database increment; concurrent
// reads never lose counts.
func (r *boardRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.BoardPost{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBoardPost(ctx, id)
	return nil
}

func (r *boardRepository) HasResponse(ctx context.Context, postID, responderID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BoardResponse{}).
		Where("post_id = ? AND responder_id = ?", postID, responderID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *boardRepository) CreateResponse(ctx context.Context, response *models.BoardResponse) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("already responded to this post")
		}
		return models.NewInternalError(err)
	}
	// The cached post embeds its responses.
	cache.InvalidateBoardPost(ctx, response.PostID)
	return nil
}

// GetSaved returns (nil, nil) when no bookmark exists for the pair.
func (r *boardRepository) GetSaved(ctx context.Context, userID, postID uint) (*models.SavedPost, error) {
	var saved models.SavedPost
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &saved, nil
}

func (r *boardRepository) CreateSaved(ctx context.Context, saved *models.SavedPost) error {
	if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("already saved")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardRepository) DeleteSaved(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundMessageError("Saved post not found")
	}
	return nil
}

func (r *boardRepository) ListSavedByUser(ctx context.Context, userID uint) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.Author").
		Preload("Post.Responses").
		Preload("Post.Responses.Responder").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return saved, nil
}
