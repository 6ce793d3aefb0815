package chat

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Chat represents the chats table. An individual chat has exactly two
// members and no admin; a group chat has one admin who is always a member.
type Chat struct {
	ID            uuid.UUID
	IsGroup       bool
	GroupName     sql.NullString
	GroupAdminID  uuid.NullUUID
	ProfilePic    sql.NullString
	PairKey       sql.NullString `gorm:"uniqueIndex"` // unordered member pair, individual chats only
	LastMessageID uuid.NullUUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Members []Member `gorm:"foreignKey:ChatID"`
}

// Member represents the chat_members table
type Member struct {
	ChatID   uuid.UUID `gorm:"primaryKey"`
	UserID   uuid.UUID `gorm:"primaryKey"`
	JoinedAt time.Time
}

// PairKey derives the order-independent lookup key for an individual
// chat between two users.
func PairKey(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return strings.Join(ids, ":")
}

func (c Chat) IsMember(userID uuid.UUID) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (c Chat) IsAdmin(userID uuid.UUID) bool {
	return c.GroupAdminID.Valid && c.GroupAdminID.UUID == userID
}

func (c Chat) MemberCount() int {
	return len(c.Members)
}

// OtherMember returns the member that is not userID. Only meaningful
// for individual chats.
func (c Chat) OtherMember(userID uuid.UUID) (uuid.UUID, bool) {
	for _, m := range c.Members {
		if m.UserID != userID {
			return m.UserID, true
		}
	}
	return uuid.Nil, false
}

// MemberIDs returns the member identifiers in join order.
func (c Chat) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Members))
	for _, m := range c.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

func (Chat) TableName() string {
	return "chats"
}

func (Member) TableName() string {
	return "chat_members"
}
