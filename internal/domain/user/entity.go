package user

import (
	"time"

	"github.com/google/uuid"
)

// Status values a user can be in.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusAway    = "away"
)

const DefaultProfilePic = "https://via.placeholder.com/150x150?text=User"

// User represents the users table
type User struct {
	ID           uuid.UUID
	Name         string
	Mobile       string `gorm:"uniqueIndex"` // 10 digits
	PasswordHash string
	ProfilePic   string
	Status       string // online, offline, away
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsOnline() bool {
	return u.Status == StatusOnline
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOnline, StatusOffline, StatusAway:
		return true
	}
	return false
}

func (User) TableName() string {
	return "users"
}
