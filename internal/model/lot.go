package model

import "time"

// ParkingLot represents a configured parking lot layout.
// MergedAisles is stored as a JSON-encoded list of 0-based row indices
// (a JSONB-storage artifact); the store layer owns encoding and the
// tolerant decoding of values that arrive double-encoded.
type ParkingLot struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;size:128;not null"`
	Rows         int    `gorm:"not null"`
	Cols         int    `gorm:"not null"`
	MergedAisles string `gorm:"not null;default:'[]'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	Spaces []Space `gorm:"foreignKey:LotID"`
}

// Space holds per-position metadata for one parking space. The display
// ID is positional (row-major, 1-based) and is regenerated with the
// grid; assignment metadata survives grid edits by (row, col) matching.
type Space struct {
	ID        int64  `gorm:"primaryKey"`
	LotID     int64  `gorm:"index:idx_spaces_lot_pos,unique;not null"`
	Row       int    `gorm:"index:idx_spaces_lot_pos,unique;not null"`
	Col       int    `gorm:"index:idx_spaces_lot_pos,unique;not null"`
	DisplayID int    `gorm:"not null"`
	Type      string `gorm:"size:32;not null;default:'standard'"`
	Status    string `gorm:"size:32;not null;default:'free'"`
	UserID    *int64 `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Lot ParkingLot `gorm:"constraint:OnDelete:CASCADE"`
}
