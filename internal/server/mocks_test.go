package server

import (
	"context"
	"time"

	"nestlink/internal/models"
	"nestlink/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filters repository.UserFilters) ([]models.User, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) IncrementKarma(ctx context.Context, id uint, amount int) (int, error) {
	args := m.Called(ctx, id, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SetRating(ctx context.Context, id uint, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *MockUserRepository) UpsertNannyProfile(ctx context.Context, profile *models.NannyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockReactionRepository is a mock of the ReactionRepository interface
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) GetByPair(ctx context.Context, fromUserID, toUserID uint) (*models.UserReaction, error) {
	args := m.Called(ctx, fromUserID, toUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserReaction), args.Error(1)
}

func (m *MockReactionRepository) Upsert(ctx context.Context, reaction *models.UserReaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(ctx context.Context, fromUserID, toUserID uint) error {
	args := m.Called(ctx, fromUserID, toUserID)
	return args.Error(0)
}

func (m *MockReactionRepository) ListByFromUser(ctx context.Context, fromUserID uint) ([]models.UserReaction, error) {
	args := m.Called(ctx, fromUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserReaction), args.Error(1)
}

// MockMatchRepository is a mock of the MatchRepository interface
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id uint) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByPair(ctx context.Context, userA, userB uint) (*models.Match, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Match, bool, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Match), args.Bool(1), args.Error(2)
}

func (m *MockMatchRepository) ListActiveForUser(ctx context.Context, userID uint) ([]models.Match, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

// MockMessageRepository is a mock of the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByMatch(ctx context.Context, matchID uint) ([]models.Message, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkReadForReceiver(ctx context.Context, matchID, receiverID uint, readAt time.Time) error {
	args := m.Called(ctx, matchID, receiverID, readAt)
	return args.Error(0)
}

func (m *MockMessageRepository) GetReaction(ctx context.Context, messageID, userID uint, emoji string) (*models.MessageReaction, error) {
	args := m.Called(ctx, messageID, userID, emoji)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageReaction), args.Error(1)
}

func (m *MockMessageRepository) CreateReaction(ctx context.Context, reaction *models.MessageReaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *MockMessageRepository) DeleteReaction(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBoardRepository is a mock of the BoardRepository interface
type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) CreatePost(ctx context.Context, post *models.BoardPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBoardRepository) GetPost(ctx context.Context, id uint) (*models.BoardPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BoardPost), args.Error(1)
}

func (m *MockBoardRepository) ListPosts(ctx context.Context, filters repository.BoardFilters) ([]models.BoardPost, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BoardPost), args.Error(1)
}

func (m *MockBoardRepository) UpdatePost(ctx context.Context, post *models.BoardPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBoardRepository) DeletePost(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoardRepository) IncrementViewCount(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoardRepository) HasResponse(ctx context.Context, postID, responderID uint) (bool, error) {
	args := m.Called(ctx, postID, responderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoardRepository) CreateResponse(ctx context.Context, response *models.BoardResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockBoardRepository) GetSaved(ctx context.Context, userID, postID uint) (*models.SavedPost, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedPost), args.Error(1)
}

func (m *MockBoardRepository) CreateSaved(ctx context.Context, saved *models.SavedPost) error {
	args := m.Called(ctx, saved)
	return args.Error(0)
}

func (m *MockBoardRepository) DeleteSaved(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockBoardRepository) ListSavedByUser(ctx context.Context, userID uint) ([]models.SavedPost, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedPost), args.Error(1)
}

// MockReviewRepository is a mock of the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByNanny(ctx context.Context, nannyID uint) ([]models.Review, error) {
	args := m.Called(ctx, nannyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) AverageForNanny(ctx context.Context, nannyID uint) (float64, error) {
	args := m.Called(ctx, nannyID)
	return args.Get(0).(float64), args.Error(1)
}

// MockBookingRepository is a mock of the BookingRepository interface
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
