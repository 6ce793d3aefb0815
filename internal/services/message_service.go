package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"realtime-chat/internal/domain/message"
	"realtime-chat/internal/repository"
	chat_errors "realtime-chat/pkg/errors"
	"realtime-chat/pkg/events"
	"realtime-chat/pkg/logger"

	"github.com/google/uuid"
)

// EventChannel is the broker channel message events are published on.
const EventChannel = "chat-events"

type MessageService struct {
	messageRepo repository.MessageRepository
	chatRepo    repository.ChatRepository
	publisher   events.Publisher
	log         *logger.Logger
}

func NewMessageService(messageRepo repository.MessageRepository, chatRepo repository.ChatRepository, publisher events.Publisher, log *logger.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		chatRepo:    chatRepo,
		publisher:   publisher,
		log:         log,
	}
}

type SendInput struct {
	ChatID   uuid.UUID
	SenderID uuid.UUID
	Body     string
	Type     string
	FileURL  string
	ReplyTo  *uuid.UUID
}

// MessageEvent is the relay payload for a persisted message.
type MessageEvent struct {
	ChatID    string    `json:"chat_id"`
	MessageID string    `json:"message_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	Type      string    `json:"msg_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Send validates membership, reply threading and the type/fileUrl
// pairing, persists the message together with the chat's last-message
// pointer, then notifies the relay. Relay failure never affects the
// persisted message.
func (s *MessageService) Send(ctx context.Context, in SendInput) (message.Message, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" || len(body) > message.MaxBodyLength {
		return message.Message{}, chat_errors.ErrInvalidInput
	}
	msgType := in.Type
	if msgType == "" {
		msgType = message.TypeText
	}
	if !message.ValidType(msgType) {
		return message.Message{}, chat_errors.ErrInvalidInput
	}
	if message.IsMedia(msgType) && in.FileURL == "" {
		return message.Message{}, chat_errors.ErrMissingFileURL
	}

	c, err := s.chatRepo.GetByID(ctx, in.ChatID)
	if err != nil {
		return message.Message{}, err
	}
	if !c.IsMember(in.SenderID) {
		return message.Message{}, chat_errors.ErrNotChatMember
	}

	m := message.Message{
		ID:        uuid.New(),
		ChatID:    in.ChatID,
		SenderID:  in.SenderID,
		Body:      body,
		Type:      msgType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if in.FileURL != "" {
		m.FileURL = sql.NullString{String: in.FileURL, Valid: true}
	}

	if in.ReplyTo != nil {
		parent, err := s.messageRepo.GetByID(ctx, *in.ReplyTo)
		if err != nil || parent.ChatID != in.ChatID {
			return message.Message{}, chat_errors.ErrInvalidReply
		}
		m.ReplyToID = uuid.NullUUID{UUID: parent.ID, Valid: true}
	}

	// Individual chats carry the resolved receiver; groups leave it unset.
	if !c.IsGroup {
		if other, ok := c.OtherMember(in.SenderID); ok {
			m.ReceiverID = uuid.NullUUID{UUID: other, Valid: true}
		}
	}

	if err := s.messageRepo.Create(ctx, &m); err != nil {
		return message.Message{}, err
	}

	s.notify(ctx, m)
	return m, nil
}

func (s *MessageService) notify(ctx context.Context, m message.Message) {
	if s.publisher == nil {
		return
	}
	event := events.Event{
		Type: "message.sent",
		Payload: MessageEvent{
			ChatID:    m.ChatID.String(),
			MessageID: m.ID.String(),
			SenderID:  m.SenderID.String(),
			Body:      m.Body,
			Type:      m.Type,
			CreatedAt: m.CreatedAt,
		},
		Timestamp: time.Now().Unix(),
	}
	if err := s.publisher.Publish(ctx, EventChannel, event); err != nil {
		if s.log != nil {
			s.log.Errorf("failed to publish message event: %v", err)
		}
	}
}

func (s *MessageService) GetByID(ctx context.Context, messageID uuid.UUID) (message.Message, error) {
	return s.messageRepo.GetByID(ctx, messageID)
}

// List returns non-deleted messages newest first. It never mutates seen
// state; callers mark the chat seen explicitly.
func (s *MessageService) List(ctx context.Context, chatID uuid.UUID, limit, skip int) ([]message.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	return s.messageRepo.GetChatMessages(ctx, chatID, limit, skip)
}

func (s *MessageService) Edit(ctx context.Context, messageID, editorID uuid.UUID, newBody string) (message.Message, error) {
	newBody = strings.TrimSpace(newBody)
	if newBody == "" || len(newBody) > message.MaxBodyLength {
		return message.Message{}, chat_errors.ErrInvalidInput
	}

	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return message.Message{}, err
	}
	if m.SenderID != editorID {
		return message.Message{}, chat_errors.ErrNotSender
	}
	if m.Deleted {
		return message.Message{}, chat_errors.ErrAlreadyDeleted
	}

	if err := s.messageRepo.UpdateBody(ctx, messageID, newBody); err != nil {
		// The guarded update loses to a concurrent delete.
		if errors.Is(err, chat_errors.ErrNotFound) {
			return message.Message{}, chat_errors.ErrAlreadyDeleted
		}
		return message.Message{}, err
	}
	return s.messageRepo.GetByID(ctx, messageID)
}

func (s *MessageService) Delete(ctx context.Context, messageID, requesterID uuid.UUID) error {
	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if m.SenderID != requesterID {
		return chat_errors.ErrNotSender
	}
	if m.Deleted {
		return chat_errors.ErrAlreadyDeleted
	}
	return s.messageRepo.SoftDelete(ctx, messageID, requesterID)
}

// MarkSeen adds the viewer to a single message's seen set. The sender
// never enters its own set; repeats are no-ops.
func (s *MessageService) MarkSeen(ctx context.Context, messageID, viewerID uuid.UUID) error {
	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if m.SenderID == viewerID {
		return nil
	}
	return s.messageRepo.MarkSeen(ctx, messageID, viewerID)
}

// MarkChatSeen is bulk and idempotent: every non-deleted message from
// another sender gains the viewer at most once.
func (s *MessageService) MarkChatSeen(ctx context.Context, chatID, viewerID uuid.UUID) error {
	return s.messageRepo.MarkChatSeen(ctx, chatID, viewerID)
}

func (s *MessageService) UnreadCount(ctx context.Context, chatID, userID uuid.UUID) (int64, error) {
	return s.messageRepo.UnreadCount(ctx, chatID, userID)
}

func (s *MessageService) Search(ctx context.Context, chatID uuid.UUID, query string, limit int) ([]message.Message, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, chat_errors.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	return s.messageRepo.Search(ctx, chatID, query, limit)
}
