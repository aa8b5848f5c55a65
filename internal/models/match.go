package models

import (
	"time"

	"gorm.io/gorm"
)

// Match is an undirected relationship between exactly two users, created
// either by a mutual pair of likes or by chat initiation.
//
// The pair is stored normalized (User1ID < User2ID) and covered by a
// composite unique index, so at most one match can exist per unordered pair
// even under concurrent creation.
type Match struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;uniqueIndex:idx_match_pair" json:"user1_id"`
	User2ID   uint      `gorm:"not null;uniqueIndex:idx_match_pair" json:"user2_id"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User1 User `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2 User `gorm:"foreignKey:User2ID" json:"user2,omitempty"`

	// LastMessage is not persisted; filled in by the match listing query.
	LastMessage *Message `gorm:"-" json:"last_message,omitempty"`
	// UnreadCount is not persisted; messages addressed to the current user
	// with read = false.
	UnreadCount int64 `gorm:"-" json:"unread_count"`
}

// TableName specifies the table name for GORM
func (Match) TableName() string {
	return "matches"
}

// BeforeCreate normalizes the pair ordering so the unique index holds for
// the unordered pair.
func (m *Match) BeforeCreate(_ *gorm.DB) error {
	if m.User1ID > m.User2ID {
		m.User1ID, m.User2ID = m.User2ID, m.User1ID
	}
	return nil
}

// Involves reports whether the given user is one of the two participants.
func (m *Match) Involves(userID uint) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherUserID returns the participant that is not the given user.
func (m *Match) OtherUserID(userID uint) uint {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}
