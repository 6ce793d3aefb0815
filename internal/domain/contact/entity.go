package contact

import (
	"time"

	"github.com/google/uuid"
)

// List represents the contact_lists table. One list per user, created
// lazily on first access and never deleted.
type List struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Entries []Entry `gorm:"foreignKey:ListID"`
}

// Entry represents the contact_entries table. A list holds at most one
// entry per referenced user.
type Entry struct {
	ListID        uuid.UUID `gorm:"primaryKey"`
	ContactUserID uuid.UUID `gorm:"primaryKey"`
	Name          string
	AddedAt       time.Time
}

func (l List) HasContact(userID uuid.UUID) bool {
	for _, e := range l.Entries {
		if e.ContactUserID == userID {
			return true
		}
	}
	return false
}

func (List) TableName() string {
	return "contact_lists"
}

func (Entry) TableName() string {
	return "contact_entries"
}
