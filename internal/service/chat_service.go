package service

import (
	"context"
	"strings"
	"time"

	"nestlink/internal/middleware"
	"nestlink/internal/models"
	"nestlink/internal/repository"
)

// ChatService provides per-match messaging business logic.
type ChatService struct {
	messageRepo repository.MessageRepository
	matchRepo   repository.MatchRepository
	userRepo    repository.UserRepository
}

// NewChatService returns a new ChatService.
func NewChatService(
	messageRepo repository.MessageRepository,
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		matchRepo:   matchRepo,
		userRepo:    userRepo,
	}
}

// Thread is a match's message history plus the other participant, resolved
// for display.
type Thread struct {
	Match     *models.Match    `json:"match"`
	OtherUser *ThreadPeer      `json:"other_user"`
	Messages  []models.Message `json:"messages"`
}

// ThreadPeer is the display projection of the other participant.
type ThreadPeer struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Online bool   `json:"online"`
}

// ToggleResult reports whether a message reaction was added or removed.
type ToggleResult struct {
	Action   string                  `json:"action"`
	Reaction *models.MessageReaction `json:"reaction,omitempty"`
}

// ListMessages returns the thread for a match, oldest first, with reactions
// and reactor names, and flushes read receipts: every message addressed to
// the caller is marked read as a side effect of viewing the thread.
func (s *ChatService) ListMessages(ctx context.Context, matchID, currentUserID uint) (*Thread, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(currentUserID) {
		return nil, models.NewForbiddenError("not a participant of this match")
	}

	messages, err := s.messageRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	// A message arriving between the read above and this flush may be
	// marked read without having been returned; tolerable for a chat UI.
	now := time.Now()
	if err := s.messageRepo.MarkReadForReceiver(ctx, matchID, currentUserID, now); err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].ReceiverID == currentUserID && !messages[i].Read {
			messages[i].Read = true
			messages[i].ReadAt = &now
		}
	}

	other, err := s.userRepo.GetByID(ctx, match.OtherUserID(currentUserID))
	if err != nil {
		return nil, err
	}

	return &Thread{
		Match: match,
		OtherUser: &ThreadPeer{
			ID:     other.ID,
			Name:   other.Name,
			Email:  other.Email,
			Avatar: other.DisplayAvatar(),
			Online: other.Online,
		},
		Messages: messages,
	}, nil
}

// SendMessage appends a message to the match; the receiver is derived as the
// other participant and the message starts unread.
func (s *ChatService) SendMessage(ctx context.Context, matchID, senderID uint, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("message content cannot be empty")
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(senderID) {
		return nil, models.NewForbiddenError("not a participant of this match")
	}

	message := &models.Message{
		MatchID:    matchID,
		SenderID:   senderID,
		ReceiverID: match.OtherUserID(senderID),
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	middleware.MessagesSent.Inc()
	return message, nil
}

// ToggleReaction adds the (message, user, emoji) reaction if absent and
// removes it if present, alternating the reported action.
func (s *ChatService) ToggleReaction(ctx context.Context, messageID, userID uint, emoji string) (*ToggleResult, error) {
	if strings.TrimSpace(emoji) == "" {
		return nil, models.NewValidationError("emoji is required")
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, message.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(userID) {
		return nil, models.NewForbiddenError("not a participant of this match")
	}

	existing, err := s.messageRepo.GetReaction(ctx, messageID, userID, emoji)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.messageRepo.DeleteReaction(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &ToggleResult{Action: "removed"}, nil
	}

	reaction := &models.MessageReaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
	}
	if err := s.messageRepo.CreateReaction(ctx, reaction); err != nil {
		// Lost a toggle race against an identical add; report it as present.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			return &ToggleResult{Action: "added"}, nil
		}
		return nil, err
	}
	return &ToggleResult{Action: "added", Reaction: reaction}, nil
}
