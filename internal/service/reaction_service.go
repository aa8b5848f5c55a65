package service

import (
	"context"
	"strings"

	"nestlink/internal/middleware"
	"nestlink/internal/models"
	"nestlink/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ReactionService provides like/block and match business logic.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	matchRepo    repository.MatchRepository
	userRepo     repository.UserRepository
}

// NewReactionService returns a new ReactionService.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		matchRepo:    matchRepo,
		userRepo:     userRepo,
	}
}

// ReactResult reports the outcome of a swipe decision.
type ReactResult struct {
	Reaction *models.UserReaction `json:"reaction"`
	Matched  bool                 `json:"matched"`
	Match    *models.Match        `json:"match,omitempty"`
}

// ReactionLists groups a user's outgoing reactions by type.
type ReactionLists struct {
	Liked   []string `json:"liked"`
	Blocked []string `json:"blocked"`
}

// React records or overwrites the like/block edge from the current user to
// the target. A like that completes a mutual pair creates the match; the
// normalized-pair unique index makes creation idempotent under concurrency.
//
// Blocking does not deactivate an existing match.
func (s *ReactionService) React(ctx context.Context, fromUserID uint, toEmail string, reactionType models.ReactionType) (*ReactResult, error) {
	if !reactionType.Valid() {
		return nil, models.NewValidationError("reaction type must be like or block")
	}

	target, err := s.userRepo.GetByEmail(ctx, normalizeEmail(toEmail))
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewNotFoundMessageError("User with email " + toEmail + " not found")
	}
	if target.ID == fromUserID {
		return nil, models.NewValidationError("cannot react to yourself")
	}

	reaction := &models.UserReaction{
		FromUserID: fromUserID,
		ToUserID:   target.ID,
		Type:       reactionType,
	}
	if err := s.reactionRepo.Upsert(ctx, reaction); err != nil {
		return nil, err
	}

	result := &ReactResult{Reaction: reaction}
	if reactionType != models.ReactionLike {
		return result, nil
	}

	reciprocal, err := s.reactionRepo.GetByPair(ctx, target.ID, fromUserID)
	if err != nil {
		return nil, err
	}
	if reciprocal == nil || reciprocal.Type != models.ReactionLike {
		return result, nil
	}

	match, created, err := s.matchRepo.GetOrCreate(ctx, fromUserID, target.ID)
	if err != nil {
		return nil, err
	}
	if created {
		middleware.MatchesCreated.WithLabelValues("mutual_like").Inc()
	}
	result.Matched = true
	result.Match = match
	return result, nil
}

// ListReactions returns the peer emails the user has liked and blocked.
func (s *ReactionService) ListReactions(ctx context.Context, userID uint) (*ReactionLists, error) {
	reactions, err := s.reactionRepo.ListByFromUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lists := &ReactionLists{Liked: []string{}, Blocked: []string{}}
	for _, r := range reactions {
		switch r.Type {
		case models.ReactionLike:
			lists.Liked = append(lists.Liked, r.ToUser.Email)
		case models.ReactionBlock:
			lists.Blocked = append(lists.Blocked, r.ToUser.Email)
		}
	}
	return lists, nil
}

// Unreact removes the edge from the current user to the target.
func (s *ReactionService) Unreact(ctx context.Context, fromUserID uint, toEmail string) error {
	target, err := s.userRepo.GetByEmail(ctx, normalizeEmail(toEmail))
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundMessageError("User with email " + toEmail + " not found")
	}
	return s.reactionRepo.Delete(ctx, fromUserID, target.ID)
}

// CreateOrGetMatch is the idempotent chat-initiation entry point: it resolves
// the target (lazily creating a placeholder account when addressed by an
// unknown email) and returns the existing or newly created match.
func (s *ReactionService) CreateOrGetMatch(ctx context.Context, currentUserID uint, targetEmail string, targetID uint) (*models.Match, error) {
	var target *models.User
	var err error

	switch {
	case targetID != 0:
		target, err = s.userRepo.GetByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
	case targetEmail != "":
		target, err = s.getOrCreateByEmail(ctx, normalizeEmail(targetEmail))
		if err != nil {
			return nil, err
		}
	default:
		return nil, models.NewValidationError("target email or user_id is required")
	}

	if target.ID == currentUserID {
		return nil, models.NewValidationError("cannot match with yourself")
	}

	match, created, err := s.matchRepo.GetOrCreate(ctx, currentUserID, target.ID)
	if err != nil {
		return nil, err
	}
	if created {
		middleware.MatchesCreated.WithLabelValues("chat_init").Inc()
	}
	return match, nil
}

// ListMatches returns the user's active matches with last message and unread
// count annotations.
func (s *ReactionService) ListMatches(ctx context.Context, userID uint) ([]models.Match, error) {
	return s.matchRepo.ListActiveForUser(ctx, userID)
}

// getOrCreateByEmail lazily creates a placeholder account for a chat target
// addressed by an email not yet registered. The placeholder gets an unusable
// random credential; the owner claims it by registering.
func (s *ReactionService) getOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	user = &models.User{
		Email:     email,
		Password:  string(hashed),
		Name:      name,
		Role:      models.RoleParent,
		Interests: models.JSONStringList{},
		Kids:      models.JSONKidList{},
		Friends:   models.JSONStringList{},
	}
	user.Avatar = user.DisplayAvatar()

	if createErr := s.userRepo.Create(ctx, user); createErr != nil {
		// Concurrent lazy creation: read the winner.
		if appErr, ok := createErr.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			if winner, getErr := s.userRepo.GetByEmail(ctx, email); getErr == nil && winner != nil {
				return winner, nil
			}
		}
		return nil, createErr
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
