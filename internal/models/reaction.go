package models

import "time"

// ReactionType is the kind of swipe decision one user records about another.
type ReactionType string

const (
	// ReactionLike marks interest in the other user.
	ReactionLike ReactionType = "like"
	// ReactionBlock hides the other user from the swipe feed.
	ReactionBlock ReactionType = "block"
)

// Valid reports whether the reaction type is one of the known values.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionBlock
}

// UserReaction is a directed like/block edge between two users.
// The ordered (from, to) pair is unique; re-reacting overwrites the type.
type UserReaction struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	FromUserID uint         `gorm:"not null;uniqueIndex:idx_reaction_pair" json:"from_user_id"`
	ToUserID   uint         `gorm:"not null;uniqueIndex:idx_reaction_pair;index" json:"to_user_id"`
	Type       ReactionType `gorm:"type:varchar(10);not null" json:"type"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (UserReaction) TableName() string {
	return "user_reactions"
}
