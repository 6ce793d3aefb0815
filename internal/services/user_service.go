package services

import (
	"context"
	"strings"

	"realtime-chat/internal/domain/user"
	"realtime-chat/internal/repository"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/google/uuid"
)

// UserService is the identity directory: it resolves users by id or
// mobile and owns status/profile updates.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ResolveByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ResolveByMobile(ctx context.Context, mobile string) (user.User, error) {
	return s.userRepo.GetByMobile(ctx, mobile)
}

func (s *UserService) ResolveByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	return s.userRepo.GetByIDs(ctx, ids)
}

func (s *UserService) Search(ctx context.Context, query string, excludeID uuid.UUID) ([]user.User, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, chat_errors.ErrInvalidInput
	}
	return s.userRepo.Search(ctx, query, excludeID, 10)
}

func (s *UserService) UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error {
	if !user.ValidStatus(status) {
		return chat_errors.ErrInvalidInput
	}
	return s.userRepo.UpdateStatus(ctx, userID, status)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, profilePic string) (user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if name != "" {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > 50 {
			return user.User{}, chat_errors.ErrInvalidInput
		}
		u.Name = name
	}
	if profilePic != "" {
		u.ProfilePic = profilePic
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}
