package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Message types
const (
	TypeText  = "text"
	TypeImage = "image"
	TypeFile  = "file"
)

const MaxBodyLength = 1000

// Message represents the messages table
type Message struct {
	ID         uuid.UUID
	ChatID     uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.NullUUID // resolved other member, individual chats only
	Body       string
	Type       string // text, image, file
	FileURL    sql.NullString
	ReplyToID  uuid.NullUUID
	EditedAt   sql.NullTime
	Deleted    bool
	DeletedAt  sql.NullTime
	DeletedBy  uuid.NullUUID
	CreatedAt  time.Time
	UpdatedAt  time.Time

	SeenBy []Seen `gorm:"foreignKey:MessageID"`
}

// Seen represents the message_seen table. Composite key keeps the set
// idempotent; the sender never appears in it.
type Seen struct {
	MessageID uuid.UUID `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"primaryKey"`
	SeenAt    time.Time
}

func ValidType(t string) bool {
	switch t {
	case TypeText, TypeImage, TypeFile:
		return true
	}
	return false
}

// IsMedia reports whether the message type requires a file reference.
func IsMedia(t string) bool {
	return t == TypeImage || t == TypeFile
}

func (m Message) IsEdited() bool {
	return m.EditedAt.Valid
}

func (m Message) SeenByUser(userID uuid.UUID) bool {
	for _, s := range m.SeenBy {
		if s.UserID == userID {
			return true
		}
	}
	return false
}

func (Message) TableName() string {
	return "messages"
}

func (Seen) TableName() string {
	return "message_seen"
}
