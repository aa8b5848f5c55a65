package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	// BookingActive is an upcoming or in-progress booking.
	BookingActive BookingStatus = "active"
	// BookingCompleted is a finished booking.
	BookingCompleted BookingStatus = "completed"
	// BookingCancelled is a cancelled booking.
	BookingCancelled BookingStatus = "cancelled"
)

// Booking links a client and a nanny for a date. The API exposes bookings
// read-only; rows are created out of band (seeding, imports).
type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ClientID  uint          `gorm:"not null;index" json:"client_id"`
	NannyID   uint          `gorm:"not null;index" json:"nanny_id"`
	Date      time.Time     `gorm:"not null" json:"date"`
	Status    BookingStatus `gorm:"type:varchar(10);default:'active'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relationships
	Client User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Nanny  User `gorm:"foreignKey:NannyID" json:"nanny,omitempty"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}
