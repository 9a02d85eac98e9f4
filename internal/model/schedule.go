package model

import "time"

// Schedule is one reservation record as stored. Date is an ISO day;
// StartTime/EndTime are free-form 12-hour strings exactly as entered,
// normalized only at read time by the agenda package. RecurringDays is a
// JSON-encoded list of extra ISO dates (JSONB-storage artifact, decoded
// tolerantly by the store).
type Schedule struct {
	ID            int64  `gorm:"primaryKey"`
	Date          string `gorm:"size:32;not null"`
	StartTime     string `gorm:"size:64;not null"`
	EndTime       string `gorm:"size:64;not null"`
	UserID        int64  `gorm:"index;not null"`
	ParkingLot    string `gorm:"size:128;not null"`
	Row           int    `gorm:"not null"`
	Col           int    `gorm:"not null"`
	IsRecurring   bool   `gorm:"not null;default:false"`
	RecurringDays string `gorm:"not null;default:'[]'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE"`
}
