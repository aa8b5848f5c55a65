package repository

import (
	"context"
	"errors"
	"time"

	"nestlink/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages and their reactions.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListByMatch(ctx context.Context, matchID uint) ([]models.Message, error)
	// MarkReadForReceiver flips every unread message addressed to the user
	// in the match to read with the given timestamp.
	MarkReadForReceiver(ctx context.Context, matchID, receiverID uint, readAt time.Time) error
	GetReaction(ctx context.Context, messageID, userID uint, emoji string) (*models.MessageReaction, error)
	CreateReaction(ctx context.Context, reaction *models.MessageReaction) error
	DeleteReaction(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts the message and bumps the parent match so conversation
// lists sort by recent activity; both writes commit or fail together.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Match{}).
			Where("id = ?", message.MatchID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("Reactions").
		Preload("Reactions.User").
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for i := range messages {
		for j := range messages[i].Reactions {
			if messages[i].Reactions[j].User != nil {
				messages[i].Reactions[j].UserName = messages[i].Reactions[j].User.Name
			}
		}
	}
	return messages, nil
}

func (r *messageRepository) MarkReadForReceiver(ctx context.Context, matchID, receiverID uint, readAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("match_id = ? AND receiver_id = ? AND read = ?", matchID, receiverID, false).
		Updates(map[string]interface{}{"read": true, "read_at": readAt}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetReaction returns (nil, nil) when no reaction exists for the triple.
func (r *messageRepository) GetReaction(ctx context.Context, messageID, userID uint, emoji string) (*models.MessageReaction, error) {
	var reaction models.MessageReaction
	err := r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &reaction, nil
}

func (r *messageRepository) CreateReaction(ctx context.Context, reaction *models.MessageReaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Lost a toggle race; the reaction is already present.
			return models.NewConflictError("Reaction already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) DeleteReaction(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.MessageReaction{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
