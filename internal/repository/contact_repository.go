package repository

import (
	"context"
	"errors"

	"realtime-chat/internal/domain/contact"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(ctx context.Context, l *contact.List) error {
	res := r.db.WithContext(ctx).Create(l)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return chat_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresContactRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (contact.List, error) {
	var l contact.List
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		Where("owner_id = ?", ownerID).
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contact.List{}, chat_errors.ErrNotFound
		}
		return contact.List{}, err
	}
	return l, nil
}

func (r *PostgresContactRepository) AddEntry(ctx context.Context, e *contact.Entry) error {
	res := r.db.WithContext(ctx).Create(e)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return chat_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresContactRepository) RemoveEntry(ctx context.Context, listID, contactUserID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&contact.Entry{}, "list_id = ? AND contact_user_id = ?", listID, contactUserID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresContactRepository) RenameEntry(ctx context.Context, listID, contactUserID uuid.UUID, name string) error {
	res := r.db.WithContext(ctx).
		Model(&contact.Entry{}).
		Where("list_id = ? AND contact_user_id = ?", listID, contactUserID).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrNotFound
	}
	return nil
}
