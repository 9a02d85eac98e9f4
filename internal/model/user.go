package model

import "time"

// User is an account known to the lot administrators.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Email     string `gorm:"uniqueIndex;size:256;not null"`
	Role      string `gorm:"size:32;not null;default:'member'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Vehicles []Vehicle `gorm:"foreignKey:UserID"`
}

// Vehicle belongs to a user and is matched against spot assignments by
// license plate.
type Vehicle struct {
	ID           int64  `gorm:"primaryKey"`
	UserID       int64  `gorm:"index;not null"`
	LicensePlate string `gorm:"uniqueIndex;size:32;not null"`
	Make         string `gorm:"size:64"`
	Model        string `gorm:"size:64"`
	Color        string `gorm:"size:32"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE"`
}
