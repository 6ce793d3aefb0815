package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/repository"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/google/uuid"
)

type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo}
}

func (s *ChatService) GetByID(ctx context.Context, chatID uuid.UUID) (chat.Chat, error) {
	return s.chatRepo.GetByID(ctx, chatID)
}

func (s *ChatService) ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	return s.chatRepo.GetUserChats(ctx, userID)
}

// FindOrCreateIndividual looks up the unordered pair and creates the
// two-member chat if absent. The returned flag distinguishes found from
// created for caller messaging.
func (s *ChatService) FindOrCreateIndividual(ctx context.Context, userA, userB uuid.UUID) (chat.Chat, bool, error) {
	if userA == userB {
		return chat.Chat{}, false, chat_errors.ErrInvalidInput
	}

	key := chat.PairKey(userA, userB)
	existing, err := s.chatRepo.GetIndividualByPair(ctx, key)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, chat_errors.ErrNotFound) {
		return chat.Chat{}, false, err
	}

	now := time.Now()
	c := chat.Chat{
		ID:        uuid.New(),
		IsGroup:   false,
		PairKey:   sql.NullString{String: key, Valid: true},
		CreatedAt: now,
		UpdatedAt: now,
		Members: []chat.Member{
			{UserID: userA, JoinedAt: now},
			{UserID: userB, JoinedAt: now},
		},
	}
	for i := range c.Members {
		c.Members[i].ChatID = c.ID
	}

	if err := s.chatRepo.Create(ctx, &c); err != nil {
		// Lost a concurrent create on the same pair; the unique pair
		// key guarantees the winner is the chat we wanted.
		if errors.Is(err, chat_errors.ErrAlreadyExists) {
			existing, err := s.chatRepo.GetIndividualByPair(ctx, key)
			return existing, false, err
		}
		return chat.Chat{}, false, err
	}
	return c, true, nil
}

// CreateGroup builds membership as {admin} ∪ members, deduplicated. The
// admin is always deduped against the supplied list before counting.
func (s *ChatService) CreateGroup(ctx context.Context, adminID uuid.UUID, groupName string, memberIDs []uuid.UUID, profilePic string) (chat.Chat, error) {
	groupName = strings.TrimSpace(groupName)
	if len(groupName) < 2 || len(groupName) > 50 {
		return chat.Chat{}, chat_errors.ErrInvalidInput
	}

	memberSet := make(map[uuid.UUID]struct{}, len(memberIDs)+1)
	ordered := []uuid.UUID{adminID}
	memberSet[adminID] = struct{}{}
	for _, id := range memberIDs {
		if _, ok := memberSet[id]; ok {
			continue
		}
		memberSet[id] = struct{}{}
		ordered = append(ordered, id)
	}
	if len(ordered) < 2 {
		return chat.Chat{}, chat_errors.ErrInvalidInput
	}

	// Every requested member must resolve to a real user.
	users, err := s.userRepo.GetByIDs(ctx, ordered)
	if err != nil {
		return chat.Chat{}, err
	}
	if len(users) != len(ordered) {
		return chat.Chat{}, chat_errors.ErrUnknownMember
	}

	now := time.Now()
	c := chat.Chat{
		ID:           uuid.New(),
		IsGroup:      true,
		GroupName:    sql.NullString{String: groupName, Valid: true},
		GroupAdminID: uuid.NullUUID{UUID: adminID, Valid: true},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if profilePic != "" {
		c.ProfilePic = sql.NullString{String: profilePic, Valid: true}
	}
	for _, id := range ordered {
		c.Members = append(c.Members, chat.Member{ChatID: c.ID, UserID: id, JoinedAt: now})
	}

	if err := s.chatRepo.Create(ctx, &c); err != nil {
		return chat.Chat{}, err
	}
	return c, nil
}

// AddMember assumes the caller already verified the invoker is the
// group admin; it only enforces membership uniqueness.
func (s *ChatService) AddMember(ctx context.Context, c chat.Chat, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	m := chat.Member{ChatID: c.ID, UserID: userID, JoinedAt: time.Now()}
	if err := s.chatRepo.AddMember(ctx, &m); err != nil {
		if errors.Is(err, chat_errors.ErrAlreadyExists) {
			return chat_errors.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (s *ChatService) RemoveMember(ctx context.Context, c chat.Chat, userID uuid.UUID) error {
	if c.IsAdmin(userID) {
		return chat_errors.ErrCannotRemoveAdmin
	}
	if err := s.chatRepo.RemoveMember(ctx, c.ID, userID); err != nil {
		if errors.Is(err, chat_errors.ErrNotFound) {
			return chat_errors.ErrNotMember
		}
		return err
	}
	return nil
}

// Leave removes the caller's own membership. The admin cannot leave;
// admin transfer is not supported.
func (s *ChatService) Leave(ctx context.Context, c chat.Chat, userID uuid.UUID) error {
	return s.RemoveMember(ctx, c, userID)
}

func (s *ChatService) UpdateGroupInfo(ctx context.Context, chatID uuid.UUID, groupName, profilePic string) error {
	updates := map[string]interface{}{}
	if groupName != "" {
		groupName = strings.TrimSpace(groupName)
		if len(groupName) < 2 || len(groupName) > 50 {
			return chat_errors.ErrInvalidInput
		}
		updates["group_name"] = groupName
	}
	if profilePic != "" {
		updates["profile_pic"] = profilePic
	}
	if len(updates) == 0 {
		return chat_errors.ErrInvalidInput
	}
	return s.chatRepo.UpdateInfo(ctx, chatID, updates)
}

func (s *ChatService) UpdateLastMessage(ctx context.Context, chatID, messageID uuid.UUID) error {
	return s.chatRepo.UpdateLastMessage(ctx, chatID, messageID)
}
