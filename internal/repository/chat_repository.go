package repository

import (
	"context"
	"errors"
	"time"

	"realtime-chat/internal/domain/chat"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	// Chat row and member rows land together or not at all.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := c.Members
		c.Members = nil
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		for i := range members {
			if err := tx.Create(&members[i]).Error; err != nil {
				return err
			}
		}
		c.Members = members
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return chat_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	var c chat.Chat
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Chat{}, chat_errors.ErrNotFound
		}
		return chat.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) GetIndividualByPair(ctx context.Context, pairKey string) (chat.Chat, error) {
	var c chat.Chat
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("pair_key = ? AND is_group = false", pairKey).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Chat{}, chat_errors.ErrNotFound
		}
		return chat.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) GetUserChats(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	var chats []chat.Chat

	subQuery := r.db.Model(&chat.Member{}).
		Select("chat_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id IN (?)", subQuery).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// AddMember relies on the composite primary key: a concurrent duplicate
// insert fails instead of silently winning.
func (r *PostgresChatRepository) AddMember(ctx context.Context, m *chat.Member) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&chat.Chat{}).
			Where("id = ?", m.ChatID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return chat_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresChatRepository) RemoveMember(ctx context.Context, chatID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&chat.Member{}, "chat_id = ? AND user_id = ?", chatID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrNotFound
	}
	return r.db.WithContext(ctx).
		Model(&chat.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", time.Now()).Error
}

func (r *PostgresChatRepository) UpdateInfo(ctx context.Context, chatID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).
		Model(&chat.Chat{}).
		Where("id = ?", chatID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrNotFound
	}
	return nil
}

// UpdateLastMessage is a single conditional update so two concurrent
// sends cannot leave the pointer referencing a foreign message.
func (r *PostgresChatRepository) UpdateLastMessage(ctx context.Context, chatID, messageID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&chat.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message_id": messageID,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrNotFound
	}
	return nil
}
