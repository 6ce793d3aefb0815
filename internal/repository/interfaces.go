package repository

import (
	"context"

	"github.com/google/uuid"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/contact"
	"realtime-chat/internal/domain/message"
	"realtime-chat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByMobile(ctx context.Context, mobile string) (user.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error)
	Update(ctx context.Context, u user.User) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error
	Search(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]user.User, error)
}

type ContactRepository interface {
	Create(ctx context.Context, l *contact.List) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (contact.List, error)
	AddEntry(ctx context.Context, e *contact.Entry) error
	RemoveEntry(ctx context.Context, listID, contactUserID uuid.UUID) error
	RenameEntry(ctx context.Context, listID, contactUserID uuid.UUID, name string) error
}

type ChatRepository interface {
	Create(ctx context.Context, c *chat.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	GetIndividualByPair(ctx context.Context, pairKey string) (chat.Chat, error)
	GetUserChats(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error)

	AddMember(ctx context.Context, m *chat.Member) error
	RemoveMember(ctx context.Context, chatID, userID uuid.UUID) error

	UpdateInfo(ctx context.Context, chatID uuid.UUID, updates map[string]interface{}) error
	UpdateLastMessage(ctx context.Context, chatID, messageID uuid.UUID) error
}

type MessageRepository interface {
	// Create persists the message and advances the owning chat's
	// last-message pointer in a single transaction.
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)
	GetChatMessages(ctx context.Context, chatID uuid.UUID, limit, skip int) ([]message.Message, error)

	UpdateBody(ctx context.Context, messageID uuid.UUID, body string) error
	SoftDelete(ctx context.Context, messageID, deletedBy uuid.UUID) error

	MarkSeen(ctx context.Context, messageID, userID uuid.UUID) error
	MarkChatSeen(ctx context.Context, chatID, userID uuid.UUID) error
	UnreadCount(ctx context.Context, chatID, userID uuid.UUID) (int64, error)
	Search(ctx context.Context, chatID uuid.UUID, query string, limit int) ([]message.Message, error)
}
