package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"realtime-chat/internal/domain/contact"
	"realtime-chat/internal/domain/user"
	"realtime-chat/internal/repository"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/google/uuid"
)

type ContactService struct {
	contactRepo repository.ContactRepository
	userRepo    repository.UserRepository
}

func NewContactService(contactRepo repository.ContactRepository, userRepo repository.UserRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo, userRepo: userRepo}
}

// ContactProfile joins an entry with the live directory identity of the
// referenced user. Status is resolved at call time, never cached.
type ContactProfile struct {
	User    user.User
	Name    string
	AddedAt time.Time
}

// GetOrCreate returns the owner's list, creating an empty one on first
// access. Losing a concurrent create race falls back to the winner's list.
func (s *ContactService) GetOrCreate(ctx context.Context, ownerID uuid.UUID) (contact.List, error) {
	l, err := s.contactRepo.GetByOwner(ctx, ownerID)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, chat_errors.ErrNotFound) {
		return contact.List{}, err
	}

	newList := contact.List{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.contactRepo.Create(ctx, &newList); err != nil {
		if errors.Is(err, chat_errors.ErrAlreadyExists) {
			return s.contactRepo.GetByOwner(ctx, ownerID)
		}
		return contact.List{}, err
	}
	return newList, nil
}

func (s *ContactService) Add(ctx context.Context, ownerID, targetUserID uuid.UUID, name string) (contact.List, error) {
	if targetUserID == ownerID {
		return contact.List{}, chat_errors.ErrSelfContact
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return contact.List{}, chat_errors.ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return contact.List{}, err
	}

	l, err := s.GetOrCreate(ctx, ownerID)
	if err != nil {
		return contact.List{}, err
	}

	entry := contact.Entry{
		ListID:        l.ID,
		ContactUserID: targetUserID,
		Name:          name,
		AddedAt:       time.Now(),
	}
	if err := s.contactRepo.AddEntry(ctx, &entry); err != nil {
		if errors.Is(err, chat_errors.ErrAlreadyExists) {
			return contact.List{}, chat_errors.ErrDuplicateContact
		}
		return contact.List{}, err
	}

	return s.contactRepo.GetByOwner(ctx, ownerID)
}

func (s *ContactService) Remove(ctx context.Context, ownerID, targetUserID uuid.UUID) error {
	l, err := s.contactRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	return s.contactRepo.RemoveEntry(ctx, l.ID, targetUserID)
}

func (s *ContactService) Rename(ctx context.Context, ownerID, targetUserID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return chat_errors.ErrInvalidInput
	}
	l, err := s.contactRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	return s.contactRepo.RenameEntry(ctx, l.ID, targetUserID, name)
}

// ListWithProfiles resolves every entry against the directory so the
// caller sees current display data and presence.
func (s *ContactService) ListWithProfiles(ctx context.Context, ownerID uuid.UUID) ([]ContactProfile, error) {
	l, err := s.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(l.Entries))
	for _, e := range l.Entries {
		ids = append(ids, e.ContactUserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	profiles := make([]ContactProfile, 0, len(l.Entries))
	for _, e := range l.Entries {
		u, ok := byID[e.ContactUserID]
		if !ok {
			continue
		}
		profiles = append(profiles, ContactProfile{
			User:    u,
			Name:    e.Name,
			AddedAt: e.AddedAt,
		})
	}
	return profiles, nil
}
