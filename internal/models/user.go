// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserRole distinguishes parent accounts from nanny accounts.
type UserRole string

const (
	// RoleParent is a parent looking for childcare or playdates.
	RoleParent UserRole = "parent"
	// RoleNanny is a childcare provider.
	RoleNanny UserRole = "nanny"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleParent || r == RoleNanny
}

// User represents an account in the Nestlink application.
//
// Interests, Kids and Friends travel as native JSON arrays over the wire but
// are persisted as serialized JSON text columns; reads default them to empty
// lists when the stored value is null or malformed.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"unique;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `json:"phone,omitempty"`
	Avatar       string         `json:"avatar"`
	PhotoURL     string         `json:"photo_url,omitempty"`
	Bio          string         `gorm:"type:text" json:"bio"`
	Location     string         `json:"location,omitempty"`
	BirthDate    *time.Time     `json:"birth_date,omitempty"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	Role         UserRole       `gorm:"type:varchar(10);default:'parent';index" json:"role"`
	Interests    JSONStringList `gorm:"type:text" json:"interests"`
	Kids         JSONKidList    `gorm:"type:text" json:"kids"`
	Friends      JSONStringList `gorm:"type:text" json:"friends"`
	Karma        int            `gorm:"default:0" json:"karma"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	Online       bool           `gorm:"default:false" json:"online"`
	LastActiveAt *time.Time     `json:"last_active_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relationships
	NannyProfile *NannyProfile `gorm:"foreignKey:UserID" json:"nanny_profile,omitempty"`
}

// DisplayAvatar resolves the avatar shown next to a user's name.
// Preference order: uploaded photo URL, a stored emoji-glyph avatar,
// then a role-based default glyph.
func (u *User) DisplayAvatar() string {
	if u.PhotoURL != "" {
		return u.PhotoURL
	}
	if u.Avatar != "" && isEmojiGlyph(u.Avatar) {
		return u.Avatar
	}
	if u.Role == RoleNanny {
		return "🧑‍🏫"
	}
	return "👨‍👩‍👧"
}

// isEmojiGlyph reports whether s looks like a short emoji avatar rather
// than a URL or arbitrary text.
func isEmojiGlyph(s string) bool {
	if len(s) == 0 || len(s) > 32 {
		return false
	}
	for _, r := range s {
		// Emoji glyphs (incl. ZWJ sequences and variation selectors) sit
		// outside the ASCII range; a URL or plain word does not.
		if r < 0x80 {
			return false
		}
	}
	return true
}
