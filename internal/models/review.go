package models

import "time"

// Review is an append-only feedback record targeting a nanny.
// FromUserName is a snapshot of the author's name at write time so renames
// do not rewrite history.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	NannyID      uint      `gorm:"not null;index" json:"nanny_id"`
	FromUserID   uint      `gorm:"not null" json:"from_user_id"`
	FromUserName string    `gorm:"not null" json:"from_user_name"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Review) TableName() string {
	return "reviews"
}
