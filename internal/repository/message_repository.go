package repository

import (
	"context"
	"errors"
	"time"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/message"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

// Create inserts the message and bumps the chat's last-message pointer
// inside one transaction, so a concurrent reader never observes a
// pointer to an unpersisted message.
func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&chat.Chat{}).
			Where("id = ?", m.ChatID).
			Updates(map[string]interface{}{
				"last_message_id": m.ID,
				"updated_at":      time.Now(),
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return chat_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).
		Preload("SeenBy").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, chat_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) GetChatMessages(ctx context.Context, chatID uuid.UUID, limit, skip int) ([]message.Message, error) {
	var messages []message.Message
	err := r.db.WithContext(ctx).
		Preload("SeenBy").
		Where("chat_id = ? AND deleted = false", chatID).
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) UpdateBody(ctx context.Context, messageID uuid.UUID, body string) error {
	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("id = ? AND deleted = false", messageID).
		Updates(map[string]interface{}{
			"body":      body,
			"edited_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrNotFound
	}
	return nil
}

// SoftDelete keeps the body; only the flag and metadata change. The
// deleted = false guard makes concurrent deletes lose cleanly.
func (r *PostgresMessageRepository) SoftDelete(ctx context.Context, messageID, deletedBy uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("id = ? AND deleted = false", messageID).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrAlreadyDeleted
	}
	return nil
}

func (r *PostgresMessageRepository) MarkSeen(ctx context.Context, messageID, userID uuid.UUID) error {
	seen := message.Seen{MessageID: messageID, UserID: userID, SeenAt: time.Now()}
	err := r.db.WithContext(ctx).Create(&seen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// already seen, idempotent
			return nil
		}
		return err
	}
	return nil
}

func (r *PostgresMessageRepository) MarkChatSeen(ctx context.Context, chatID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO message_seen (message_id, user_id, seen_at)
		SELECT m.id, ?, NOW()
		FROM messages m
		WHERE m.chat_id = ? AND m.sender_id != ? AND m.deleted = false
		ON CONFLICT (message_id, user_id) DO NOTHING`,
		userID, chatID, userID).Error
}

func (r *PostgresMessageRepository) UnreadCount(ctx context.Context, chatID, userID uuid.UUID) (int64, error) {
	var count int64

	subQuery := r.db.Model(&message.Seen{}).
		Select("message_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("chat_id = ? AND sender_id != ? AND deleted = false AND id NOT IN (?)",
			chatID, userID, subQuery).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresMessageRepository) Search(ctx context.Context, chatID uuid.UUID, query string, limit int) ([]message.Message, error) {
	var messages []message.Message
	err := r.db.WithContext(ctx).
		Preload("SeenBy").
		Where("chat_id = ? AND body ILIKE ? AND deleted = false", chatID, "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
