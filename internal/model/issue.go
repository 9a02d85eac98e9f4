package model

import "time"

// Issue report lifecycle states.
const (
	IssueStatusOpen     = "open"
	IssueStatusResolved = "resolved"
)

// IssueReport is a problem reported by a user about a lot or spot.
// Reference is a UUID handed back to the reporter; reports are queued
// through the intake worker pool rather than written on the request
// path.
type IssueReport struct {
	ID         int64  `gorm:"primaryKey"`
	Reference  string `gorm:"uniqueIndex;size:36;not null"`
	UserID     int64  `gorm:"index;not null"`
	LotID      *int64 `gorm:"index"`
	Subject    string `gorm:"size:256;not null"`
	Body       string `gorm:"not null"`
	Status     string `gorm:"size:32;not null;default:'open'"`
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
