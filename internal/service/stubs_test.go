package service

import (
	"context"
	"testing"
	"time"

	"nestlink/internal/models"
	"nestlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getByEmailFn         func(context.Context, string) (*models.User, error)
	createFn             func(context.Context, *models.User) error
	updateFn             func(context.Context, *models.User) error
	listFn               func(context.Context, repository.UserFilters) ([]models.User, error)
	incrementKarmaFn     func(context.Context, uint, int) (int, error)
	setRatingFn          func(context.Context, uint, float64) error
	upsertNannyProfileFn func(context.Context, *models.NannyProfile) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, filters repository.UserFilters) ([]models.User, error) {
	return s.listFn(ctx, filters)
}
func (s *userRepoStub) IncrementKarma(ctx context.Context, id uint, amount int) (int, error) {
	return s.incrementKarmaFn(ctx, id, amount)
}
func (s *userRepoStub) SetRating(ctx context.Context, id uint, rating float64) error {
	return s.setRatingFn(ctx, id, rating)
}
func (s *userRepoStub) UpsertNannyProfile(ctx context.Context, profile *models.NannyProfile) error {
	return s.upsertNannyProfileFn(ctx, profile)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:            func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:         func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:             func(context.Context, *models.User) error { return nil },
		updateFn:             func(context.Context, *models.User) error { return nil },
		listFn:               func(context.Context, repository.UserFilters) ([]models.User, error) { return nil, nil },
		incrementKarmaFn:     func(context.Context, uint, int) (int, error) { return 0, nil },
		setRatingFn:          func(context.Context, uint, float64) error { return nil },
		upsertNannyProfileFn: func(context.Context, *models.NannyProfile) error { return nil },
	}
}

type reactionRepoStub struct {
	getByPairFn      func(context.Context, uint, uint) (*models.UserReaction, error)
	upsertFn         func(context.Context, *models.UserReaction) error
	deleteFn         func(context.Context, uint, uint) error
	listByFromUserFn func(context.Context, uint) ([]models.UserReaction, error)
}

func (s *reactionRepoStub) GetByPair(ctx context.Context, fromUserID, toUserID uint) (*models.UserReaction, error) {
	return s.getByPairFn(ctx, fromUserID, toUserID)
}
func (s *reactionRepoStub) Upsert(ctx context.Context, reaction *models.UserReaction) error {
	return s.upsertFn(ctx, reaction)
}
func (s *reactionRepoStub) Delete(ctx context.Context, fromUserID, toUserID uint) error {
	return s.deleteFn(ctx, fromUserID, toUserID)
}
func (s *reactionRepoStub) ListByFromUser(ctx context.Context, fromUserID uint) ([]models.UserReaction, error) {
	return s.listByFromUserFn(ctx, fromUserID)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		getByPairFn:      func(context.Context, uint, uint) (*models.UserReaction, error) { return nil, nil },
		upsertFn:         func(context.Context, *models.UserReaction) error { return nil },
		deleteFn:         func(context.Context, uint, uint) error { return nil },
		listByFromUserFn: func(context.Context, uint) ([]models.UserReaction, error) { return nil, nil },
	}
}

type matchRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.Match, error)
	getByPairFn         func(context.Context, uint, uint) (*models.Match, error)
	getOrCreateFn       func(context.Context, uint, uint) (*models.Match, bool, error)
	listActiveForUserFn func(context.Context, uint) ([]models.Match, error)
}

func (s *matchRepoStub) GetByID(ctx context.Context, id uint) (*models.Match, error) {
	return s.getByIDFn(ctx, id)
}
func (s *matchRepoStub) GetByPair(ctx context.Context, userA, userB uint) (*models.Match, error) {
	return s.getByPairFn(ctx, userA, userB)
}
func (s *matchRepoStub) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Match, bool, error) {
	return s.getOrCreateFn(ctx, userA, userB)
}
func (s *matchRepoStub) ListActiveForUser(ctx context.Context, userID uint) ([]models.Match, error) {
	return s.listActiveForUserFn(ctx, userID)
}

func noopMatchRepo() *matchRepoStub {
	return &matchRepoStub{
		getByIDFn:   func(context.Context, uint) (*models.Match, error) { return &models.Match{}, nil },
		getByPairFn: func(context.Context, uint, uint) (*models.Match, error) { return nil, nil },
		getOrCreateFn: func(_ context.Context, a, b uint) (*models.Match, bool, error) {
			return &models.Match{User1ID: a, User2ID: b, Active: true}, true, nil
		},
		listActiveForUserFn: func(context.Context, uint) ([]models.Match, error) { return nil, nil },
	}
}

type messageRepoStub struct {
	createFn              func(context.Context, *models.Message) error
	getByIDFn             func(context.Context, uint) (*models.Message, error)
	listByMatchFn         func(context.Context, uint) ([]models.Message, error)
	markReadForReceiverFn func(context.Context, uint, uint, time.Time) error
	getReactionFn         func(context.Context, uint, uint, string) (*models.MessageReaction, error)
	createReactionFn      func(context.Context, *models.MessageReaction) error
	deleteReactionFn      func(context.Context, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) ListByMatch(ctx context.Context, matchID uint) ([]models.Message, error) {
	return s.listByMatchFn(ctx, matchID)
}
func (s *messageRepoStub) MarkReadForReceiver(ctx context.Context, matchID, receiverID uint, readAt time.Time) error {
	return s.markReadForReceiverFn(ctx, matchID, receiverID, readAt)
}
func (s *messageRepoStub) GetReaction(ctx context.Context, messageID, userID uint, emoji string) (*models.MessageReaction, error) {
	return s.getReactionFn(ctx, messageID, userID, emoji)
}
func (s *messageRepoStub) CreateReaction(ctx context.Context, reaction *models.MessageReaction) error {
	return s.createReactionFn(ctx, reaction)
}
func (s *messageRepoStub) DeleteReaction(ctx context.Context, id uint) error {
	return s.deleteReactionFn(ctx, id)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:              func(context.Context, *models.Message) error { return nil },
		getByIDFn:             func(context.Context, uint) (*models.Message, error) { return &models.Message{}, nil },
		listByMatchFn:         func(context.Context, uint) ([]models.Message, error) { return nil, nil },
		markReadForReceiverFn: func(context.Context, uint, uint, time.Time) error { return nil },
		getReactionFn:         func(context.Context, uint, uint, string) (*models.MessageReaction, error) { return nil, nil },
		createReactionFn:      func(context.Context, *models.MessageReaction) error { return nil },
		deleteReactionFn:      func(context.Context, uint) error { return nil },
	}
}

type boardRepoStub struct {
	createPostFn         func(context.Context, *models.BoardPost) error
	getPostFn            func(context.Context, uint) (*models.BoardPost, error)
	listPostsFn          func(context.Context, repository.BoardFilters) ([]models.BoardPost, error)
	updatePostFn         func(context.Context, *models.BoardPost) error
	deletePostFn         func(context.Context, uint) error
	incrementViewCountFn func(context.Context, uint) error
	hasResponseFn        func(context.Context, uint, uint) (bool, error)
	createResponseFn     func(context.Context, *models.BoardResponse) error
	getSavedFn           func(context.Context, uint, uint) (*models.SavedPost, error)
	createSavedFn        func(context.Context, *models.SavedPost) error
	deleteSavedFn        func(context.Context, uint, uint) error
	listSavedByUserFn    func(context.Context, uint) ([]models.SavedPost, error)
}

func (s *boardRepoStub) CreatePost(ctx context.Context, post *models.BoardPost) error {
	return s.createPostFn(ctx, post)
}
func (s *boardRepoStub) GetPost(ctx context.Context, id uint) (*models.BoardPost, error) {
	return s.getPostFn(ctx, id)
}
func (s *boardRepoStub) ListPosts(ctx context.Context, filters repository.BoardFilters) ([]models.BoardPost, error) {
	return s.listPostsFn(ctx, filters)
}
func (s *boardRepoStub) UpdatePost(ctx context.Context, post *models.BoardPost) error {
	return s.updatePostFn(ctx, post)
}
func (s *boardRepoStub) DeletePost(ctx context.Context, id uint) error {
	return s.deletePostFn(ctx, id)
}
func (s *boardRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewCountFn(ctx, id)
}
func (s *boardRepoStub) HasResponse(ctx context.Context, postID, responderID uint) (bool, error) {
	return s.hasResponseFn(ctx, postID, responderID)
}
func (s *boardRepoStub) CreateResponse(ctx context.Context, response *models.BoardResponse) error {
	return s.createResponseFn(ctx, response)
}
func (s *boardRepoStub) GetSaved(ctx context.Context, userID, postID uint) (*models.SavedPost, error) {
	return s.getSavedFn(ctx, userID, postID)
}
func (s *boardRepoStub) CreateSaved(ctx context.Context, saved *models.SavedPost) error {
	return s.createSavedFn(ctx, saved)
}
func (s *boardRepoStub) DeleteSaved(ctx context.Context, userID, postID uint) error {
	return s.deleteSavedFn(ctx, userID, postID)
}
func (s *boardRepoStub) ListSavedByUser(ctx context.Context, userID uint) ([]models.SavedPost, error) {
	return s.listSavedByUserFn(ctx, userID)
}

func noopBoardRepo() *boardRepoStub {
	return &boardRepoStub{
		createPostFn: func(context.Context, *models.BoardPost) error { return nil },
		getPostFn: func(_ context.Context, id uint) (*models.BoardPost, error) {
			return &models.BoardPost{ID: id, Status: models.BoardPostActive}, nil
		},
		listPostsFn:          func(context.Context, repository.BoardFilters) ([]models.BoardPost, error) { return nil, nil },
		updatePostFn:         func(context.Context, *models.BoardPost) error { return nil },
		deletePostFn:         func(context.Context, uint) error { return nil },
		incrementViewCountFn: func(context.Context, uint) error { return nil },
		hasResponseFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
		createResponseFn:     func(context.Context, *models.BoardResponse) error { return nil },
		getSavedFn:           func(context.Context, uint, uint) (*models.SavedPost, error) { return nil, nil },
		createSavedFn:        func(context.Context, *models.SavedPost) error { return nil },
		deleteSavedFn:        func(context.Context, uint, uint) error { return nil },
		listSavedByUserFn:    func(context.Context, uint) ([]models.SavedPost, error) { return nil, nil },
	}
}

type reviewRepoStub struct {
	createFn          func(context.Context, *models.Review) error
	listByNannyFn     func(context.Context, uint) ([]models.Review, error)
	averageForNannyFn func(context.Context, uint) (float64, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) ListByNanny(ctx context.Context, nannyID uint) ([]models.Review, error) {
	return s.listByNannyFn(ctx, nannyID)
}
func (s *reviewRepoStub) AverageForNanny(ctx context.Context, nannyID uint) (float64, error) {
	return s.averageForNannyFn(ctx, nannyID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:          func(context.Context, *models.Review) error { return nil },
		listByNannyFn:     func(context.Context, uint) ([]models.Review, error) { return nil, nil },
		averageForNannyFn: func(context.Context, uint) (float64, error) { return 0, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}
