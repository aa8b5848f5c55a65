package service

import (
	"context"
	"strings"
	"time"

	"nestlink/internal/models"
	"nestlink/internal/repository"
)

// BoardService provides classified-board business logic.
type BoardService struct {
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
}

// NewBoardService returns a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, userRepo repository.UserRepository) *BoardService {
	return &BoardService{boardRepo: boardRepo, userRepo: userRepo}
}

// CreatePostInput is the input for creating a board post.
type CreatePostInput struct {
	AuthorID    uint
	Type        models.BoardPostType
	Description string
	City        string
	District    string
	DateFrom    *time.Time
	DateUntil   *time.Time
}

// UpdatePostInput is the input for an author's partial post update.
// Selecting a responder forces the post closed.
type UpdatePostInput struct {
	PostID              uint
	ActingUserID        uint
	Status              *models.BoardPostStatus
	SelectedResponderID *uint
}

// CreatePost creates a post; it always starts active.
func (s *BoardService) CreatePost(ctx context.Context, in CreatePostInput) (*models.BoardPost, error) {
	if in.AuthorID == 0 {
		return nil, models.NewValidationError("author is required")
	}
	if !in.Type.Valid() {
		return nil, models.NewValidationError("invalid post type")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("description is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return nil, models.NewValidationError("city is required")
	}

	// The author must resolve to a real account.
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	post := &models.BoardPost{
		AuthorID:    in.AuthorID,
		Type:        in.Type,
		Description: in.Description,
		City:        in.City,
		District:    in.District,
		DateFrom:    in.DateFrom,
		DateUntil:   in.DateUntil,
		Status:      models.BoardPostActive,
	}
	if err := s.boardRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.boardRepo.GetPost(ctx, post.ID)
}

// ListPosts returns posts matching the filters, newest first. Status
// defaults to active unless the caller asks otherwise.
func (s *BoardService) ListPosts(ctx context.Context, filters repository.BoardFilters) ([]models.BoardPost, error) {
	if filters.Status == "" {
		filters.Status = models.BoardPostActive
	}
	if filters.Type != "" && !filters.Type.Valid() {
		return nil, models.NewValidationError("invalid post type filter")
	}
	return s.boardRepo.ListPosts(ctx, filters)
}

// GetPost returns one post and unconditionally counts the view, whoever the
// reader is.
func (s *BoardService) GetPost(ctx context.Context, id uint) (*models.BoardPost, error) {
	post, err := s.boardRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.boardRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}
	post.ViewCount++
	return post, nil
}

// Respond adds a reply to an active post. Authors cannot reply to their own
// posts, and each responder may reply at most once; the (post, responder)
// unique index backs the duplicate check under concurrency.
func (s *BoardService) Respond(ctx context.Context, postID, responderID uint, message string) (*models.BoardResponse, error) {
	if responderID == 0 {
		return nil, models.NewValidationError("responder is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, models.NewValidationError("message is required")
	}

	post, err := s.boardRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, responderID); err != nil {
		return nil, err
	}
	if post.Status != models.BoardPostActive {
		return nil, models.NewValidationError("post is closed")
	}
	if post.AuthorID == responderID {
		return nil, models.NewValidationError("cannot respond to own post")
	}

	exists, err := s.boardRepo.HasResponse(ctx, postID, responderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("already responded to this post")
	}

	response := &models.BoardResponse{
		PostID:      postID,
		ResponderID: responderID,
		Message:     message,
	}
	if err := s.boardRepo.CreateResponse(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

// UpdatePost applies an author-only status/selection update. Setting a
// responder forces the post closed regardless of the supplied status, and a
// closed post can never be reopened.
func (s *BoardService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.BoardPost, error) {
	post, err := s.boardRepo.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if in.ActingUserID != 0 && post.AuthorID != in.ActingUserID {
		return nil, models.NewForbiddenError("only the author can update this post")
	}

	if in.Status != nil {
		if *in.Status != models.BoardPostActive && *in.Status != models.BoardPostClosed {
			return nil, models.NewValidationError("invalid status")
		}
		if post.Status == models.BoardPostClosed && *in.Status == models.BoardPostActive {
			return nil, models.NewValidationError("closed posts cannot be reopened")
		}
		post.Status = *in.Status
	}
	if in.SelectedResponderID != nil {
		post.SelectedResponderID = in.SelectedResponderID
		post.Status = models.BoardPostClosed
	}

	if err := s.boardRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.boardRepo.GetPost(ctx, post.ID)
}

// DeletePost removes an author's post together with its responses and
// bookmarks.
func (s *BoardService) DeletePost(ctx context.Context, postID, actingUserID uint) error {
	post, err := s.boardRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if actingUserID != 0 && post.AuthorID != actingUserID {
		return models.NewForbiddenError("only the author can delete this post")
	}
	return s.boardRepo.DeletePost(ctx, postID)
}

// SavePost bookmarks a post for the user; saving twice is an error.
func (s *BoardService) SavePost(ctx context.Context, userID, postID uint) (*models.SavedPost, error) {
	if _, err := s.boardRepo.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	existing, err := s.boardRepo.GetSaved(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("already saved")
	}

	saved := &models.SavedPost{UserID: userID, PostID: postID}
	if err := s.boardRepo.CreateSaved(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// UnsavePost removes a bookmark; removing a missing bookmark is NotFound.
func (s *BoardService) UnsavePost(ctx context.Context, userID, postID uint) error {
	return s.boardRepo.DeleteSaved(ctx, userID, postID)
}

// ListSaved returns the user's bookmarked posts, each annotated saved.
func (s *BoardService) ListSaved(ctx context.Context, userID uint) ([]models.BoardPost, error) {
	saved, err := s.boardRepo.ListSavedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts := make([]models.BoardPost, 0, len(saved))
	for _, sp := range saved {
		post := sp.Post
		post.Saved = true
		posts = append(posts, post)
	}
	return posts, nil
}
