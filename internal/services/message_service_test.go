package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/message"
	"realtime-chat/internal/mocks"
	chat_errors "realtime-chat/pkg/errors"
	"realtime-chat/pkg/events"
)

func pairChat(a, b uuid.UUID) chat.Chat {
	return chat.Chat{
		ID:      uuid.New(),
		IsGroup: false,
		Members: []chat.Member{{UserID: a}, {UserID: b}},
	}
}

func TestSendPersistsAndPublishes(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	chatRepo := new(mocks.ChatRepositoryMock)
	publisher := new(mocks.PublisherMock)
	svc := NewMessageService(messageRepo, chatRepo, publisher, nil)

	sender := uuid.New()
	receiver := uuid.New()
	c := pairChat(sender, receiver)

	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()
	messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *message.Message) bool {
		return m.ChatID == c.ID && m.SenderID == sender &&
			m.ReceiverID.Valid && m.ReceiverID.UUID == receiver
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, EventChannel, mock.MatchedBy(func(e events.Event) bool {
		payload, ok := e.Payload.(MessageEvent)
		return e.Type == "message.sent" && ok && payload.ChatID == c.ID.String()
	})).Return(nil).Once()

	got, err := svc.Send(context.Background(), SendInput{
		ChatID:   c.ID,
		SenderID: sender,
		Body:     "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, message.TypeText, got.Type)
	assert.Equal(t, "hello", got.Body)
	messageRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSendPublishFailureDoesNotFailSend(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	chatRepo := new(mocks.ChatRepositoryMock)
	publisher := new(mocks.PublisherMock)
	svc := NewMessageService(messageRepo, chatRepo, publisher, nil)

	sender := uuid.New()
	c := pairChat(sender, uuid.New())

	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()
	messageRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("Publish", mock.Anything, EventChannel, mock.Anything).Return(assert.AnError).Once()

	_, err := svc.Send(context.Background(), SendInput{ChatID: c.ID, SenderID: sender, Body: "hi"})
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestSendRejectsNonMember(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	svc := NewMessageService(new(mocks.MessageRepositoryMock), chatRepo, nil, nil)

	c := pairChat(uuid.New(), uuid.New())
	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()

	_, err := svc.Send(context.Background(), SendInput{ChatID: c.ID, SenderID: uuid.New(), Body: "hi"})
	assert.ErrorIs(t, err, chat_errors.ErrNotChatMember)
}

func TestSendMediaRequiresFileURL(t *testing.T) {
	svc := NewMessageService(new(mocks.MessageRepositoryMock), new(mocks.ChatRepositoryMock), nil, nil)

	_, err := svc.Send(context.Background(), SendInput{
		ChatID:   uuid.New(),
		SenderID: uuid.New(),
		Body:     "pic",
		Type:     message.TypeImage,
	})
	assert.ErrorIs(t, err, chat_errors.ErrMissingFileURL)
}

func TestSendRejectsOversizedBody(t *testing.T) {
	svc := NewMessageService(new(mocks.MessageRepositoryMock), new(mocks.ChatRepositoryMock), nil, nil)

	_, err := svc.Send(context.Background(), SendInput{
		ChatID:   uuid.New(),
		SenderID: uuid.New(),
		Body:     strings.Repeat("a", message.MaxBodyLength+1),
	})
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestSendRejectsCrossChatReply(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	chatRepo := new(mocks.ChatRepositoryMock)
	svc := NewMessageService(messageRepo, chatRepo, nil, nil)

	sender := uuid.New()
	c := pairChat(sender, uuid.New())
	parentID := uuid.New()

	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()
	messageRepo.On("GetByID", mock.Anything, parentID).Return(message.Message{
		ID:     parentID,
		ChatID: uuid.New(),
	}, nil).Once()

	_, err := svc.Send(context.Background(), SendInput{
		ChatID:   c.ID,
		SenderID: sender,
		Body:     "re",
		ReplyTo:  &parentID,
	})
	assert.ErrorIs(t, err, chat_errors.ErrInvalidReply)
}

func TestEditRejectsOtherSender(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(messageRepo, new(mocks.ChatRepositoryMock), nil, nil)

	msgID := uuid.New()
	messageRepo.On("GetByID", mock.Anything, msgID).Return(message.Message{
		ID:       msgID,
		SenderID: uuid.New(),
	}, nil).Once()

	_, err := svc.Edit(context.Background(), msgID, uuid.New(), "new body")
	assert.ErrorIs(t, err, chat_errors.ErrNotSender)
}

func TestEditRejectsDeletedMessage(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(messageRepo, new(mocks.ChatRepositoryMock), nil, nil)

	sender := uuid.New()
	msgID := uuid.New()
	messageRepo.On("GetByID", mock.Anything, msgID).Return(message.Message{
		ID:       msgID,
		SenderID: sender,
		Deleted:  true,
	}, nil).Once()

	_, err := svc.Edit(context.Background(), msgID, sender, "new body")
	assert.ErrorIs(t, err, chat_errors.ErrAlreadyDeleted)
}

func TestEditLosesToConcurrentDelete(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(messageRepo, new(mocks.ChatRepositoryMock), nil, nil)

	sender := uuid.New()
	msgID := uuid.New()
	messageRepo.On("GetByID", mock.Anything, msgID).Return(message.Message{
		ID:       msgID,
		SenderID: sender,
	}, nil).Once()
	// The guarded update finds zero live rows.
	messageRepo.On("UpdateBody", mock.Anything, msgID, "new body").Return(chat_errors.ErrNotFound).Once()

	_, err := svc.Edit(context.Background(), msgID, sender, "new body")
	assert.ErrorIs(t, err, chat_errors.ErrAlreadyDeleted)
	messageRepo.AssertExpectations(t)
}

func TestDeleteRejectsRepeat(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(messageRepo, new(mocks.ChatRepositoryMock), nil, nil)

	sender := uuid.New()
	msgID := uuid.New()
	messageRepo.On("GetByID", mock.Anything, msgID).Return(message.Message{
		ID:       msgID,
		SenderID: sender,
		Deleted:  true,
	}, nil).Once()

	err := svc.Delete(context.Background(), msgID, sender)
	assert.ErrorIs(t, err, chat_errors.ErrAlreadyDeleted)
}

func TestMarkSeenSkipsSender(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(messageRepo, new(mocks.ChatRepositoryMock), nil, nil)

	sender := uuid.New()
	msgID := uuid.New()
	messageRepo.On("GetByID", mock.Anything, msgID).Return(message.Message{
		ID:       msgID,
		SenderID: sender,
	}, nil).Once()

	err := svc.MarkSeen(context.Background(), msgID, sender)
	require.NoError(t, err)
	messageRepo.AssertNotCalled(t, "MarkSeen", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchRejectsShortQuery(t *testing.T) {
	svc := NewMessageService(new(mocks.MessageRepositoryMock), new(mocks.ChatRepositoryMock), nil, nil)

	_, err := svc.Search(context.Background(), uuid.New(), " a ", 10)
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}
