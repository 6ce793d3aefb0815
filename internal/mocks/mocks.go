package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/contact"
	"realtime-chat/internal/domain/message"
	"realtime-chat/internal/domain/user"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	args := m.Called(ctx, id)
	var u user.User
	if val := args.Get(0); val != nil {
		u = val.(user.User)
	}
	return u, args.Error(1)
}

func (m *UserRepositoryMock) GetByMobile(ctx context.Context, mobile string) (user.User, error) {
	args := m.Called(ctx, mobile)
	var u user.User
	if val := args.Get(0); val != nil {
		u = val.(user.User)
	}
	return u, args.Error(1)
}

func (m *UserRepositoryMock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	args := m.Called(ctx, ids)
	var users []user.User
	if val := args.Get(0); val != nil {
		users = val.([]user.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) Update(ctx context.Context, u user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepositoryMock) UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

func (m *UserRepositoryMock) Search(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]user.User, error) {
	args := m.Called(ctx, query, excludeID, limit)
	var users []user.User
	if val := args.Get(0); val != nil {
		users = val.([]user.User)
	}
	return users, args.Error(1)
}

type ContactRepositoryMock struct {
	mock.Mock
}

func (m *ContactRepositoryMock) Create(ctx context.Context, l *contact.List) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *ContactRepositoryMock) GetByOwner(ctx context.Context, ownerID uuid.UUID) (contact.List, error) {
	args := m.Called(ctx, ownerID)
	var list contact.List
	if val := args.Get(0); val != nil {
		list = val.(contact.List)
	}
	return list, args.Error(1)
}

func (m *ContactRepositoryMock) AddEntry(ctx context.Context, e *contact.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *ContactRepositoryMock) RemoveEntry(ctx context.Context, listID, contactUserID uuid.UUID) error {
	args := m.Called(ctx, listID, contactUserID)
	return args.Error(0)
}

func (m *ContactRepositoryMock) RenameEntry(ctx context.Context, listID, contactUserID uuid.UUID, name string) error {
	args := m.Called(ctx, listID, contactUserID, name)
	return args.Error(0)
}

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) Create(ctx context.Context, c *chat.Chat) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ChatRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	args := m.Called(ctx, id)
	var c chat.Chat
	if val := args.Get(0); val != nil {
		c = val.(chat.Chat)
	}
	return c, args.Error(1)
}

func (m *ChatRepositoryMock) GetIndividualByPair(ctx context.Context, pairKey string) (chat.Chat, error) {
	args := m.Called(ctx, pairKey)
	var c chat.Chat
	if val := args.Get(0); val != nil {
		c = val.(chat.Chat)
	}
	return c, args.Error(1)
}

func (m *ChatRepositoryMock) GetUserChats(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	args := m.Called(ctx, userID)
	var chats []chat.Chat
	if val := args.Get(0); val != nil {
		chats = val.([]chat.Chat)
	}
	return chats, args.Error(1)
}

func (m *ChatRepositoryMock) AddMember(ctx context.Context, member *chat.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *ChatRepositoryMock) RemoveMember(ctx context.Context, chatID, userID uuid.UUID) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

func (m *ChatRepositoryMock) UpdateInfo(ctx context.Context, chatID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, chatID, updates)
	return args.Error(0)
}

func (m *ChatRepositoryMock) UpdateLastMessage(ctx context.Context, chatID, messageID uuid.UUID) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	args := m.Called(ctx, id)
	var msg message.Message
	if val := args.Get(0); val != nil {
		msg = val.(message.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) GetChatMessages(ctx context.Context, chatID uuid.UUID, limit, skip int) ([]message.Message, error) {
	args := m.Called(ctx, chatID, limit, skip)
	var msgs []message.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]message.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) UpdateBody(ctx context.Context, messageID uuid.UUID, body string) error {
	args := m.Called(ctx, messageID, body)
	return args.Error(0)
}

func (m *MessageRepositoryMock) SoftDelete(ctx context.Context, messageID, deletedBy uuid.UUID) error {
	args := m.Called(ctx, messageID, deletedBy)
	return args.Error(0)
}

func (m *MessageRepositoryMock) MarkSeen(ctx context.Context, messageID, userID uuid.UUID) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) MarkChatSeen(ctx context.Context, chatID, userID uuid.UUID) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) UnreadCount(ctx context.Context, chatID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepositoryMock) Search(ctx context.Context, chatID uuid.UUID, query string, limit int) ([]message.Message, error) {
	args := m.Called(ctx, chatID, query, limit)
	var msgs []message.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]message.Message)
	}
	return msgs, args.Error(1)
}
