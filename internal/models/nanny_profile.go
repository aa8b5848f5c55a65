package models

import "time"

// NannyProfile holds professional attributes for nanny accounts as a
// dedicated record, one per user, instead of overloading a profile column.
type NannyProfile struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	UserID          uint           `gorm:"not null;uniqueIndex" json:"-"`
	HourlyRate      float64        `json:"hourly_rate"`
	ExperienceYears int            `json:"experience_years"`
	Education       string         `json:"education"`
	Specializations JSONStringList `gorm:"type:text" json:"specializations"`
	Certifications  JSONStringList `gorm:"type:text" json:"certifications"`
	Languages       JSONStringList `gorm:"type:text" json:"languages"`
	AvailableHours  string         `json:"available_hours"`
	CreatedAt       time.Time      `json:"-"`
	UpdatedAt       time.Time      `json:"-"`
}

// TableName specifies the table name for GORM
func (NannyProfile) TableName() string {
	return "nanny_profiles"
}
