package models

import "time"

// Message is a chat message inside a match. Sender and receiver are always
// the match's two participants.
type Message struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	MatchID    uint       `gorm:"not null;index" json:"match_id"`
	SenderID   uint       `gorm:"not null" json:"sender_id"`
	ReceiverID uint       `gorm:"not null;index" json:"receiver_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Read       bool       `gorm:"default:false" json:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	Sender   *User             `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User             `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Reactions []MessageReaction `gorm:"foreignKey:MessageID" json:"reactions"`
}

// MessageReaction ties a user to a message with an emoji.
// The (message, user, emoji) triple is unique; re-sending the same emoji
// from the same user toggles the reaction off instead of duplicating it.
type MessageReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_msg_user_emoji" json:"message_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_msg_user_emoji" json:"user_id"`
	Emoji     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_msg_user_emoji" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// UserName is not persisted; resolved for display when listing messages.
	UserName string `gorm:"-" json:"user_name,omitempty"`
}

// TableName specifies the table name for GORM
func (MessageReaction) TableName() string {
	return "message_reactions"
}
