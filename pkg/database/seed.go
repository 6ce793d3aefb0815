package database

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/message"
	"realtime-chat/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Password      string
	DemoUserCount int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Password:      "Demo@123",
		DemoUserCount: 5,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []*user.User
	Chats    []*chat.Chat
	Messages []*message.Message
}

// Seed populates the database with demo users, a pair chat between the
// first two, and a short conversation. Re-running is safe: existing
// rows are left alone.
func Seed(cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	result := &SeedResult{}

	log.Println("Starting database seeding...")

	users, err := seedDemoUsers(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo users: %w", err)
	}
	result.Users = users

	if len(users) >= 2 {
		c, msgs, err := seedDemoChat(users[0], users[1])
		if err != nil {
			return nil, fmt.Errorf("failed to seed demo chat: %w", err)
		}
		result.Chats = append(result.Chats, c)
		result.Messages = msgs
	}

	log.Printf("Seeding complete: %d users, %d chats, %d messages",
		len(result.Users), len(result.Chats), len(result.Messages))
	return result, nil
}

func seedDemoUsers(cfg *SeedConfig) ([]*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, cfg.DemoUserCount)
	for i := 1; i <= cfg.DemoUserCount; i++ {
		mobile := strings.Repeat(strconv.Itoa(i), 10)
		u := &user.User{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("Demo User %d", i),
			Mobile:       mobile,
			PasswordHash: string(hash),
			ProfilePic:   user.DefaultProfilePic,
			Status:       user.StatusOffline,
		}

		var existing user.User
		err := DB.Where("mobile = ?", mobile).First(&existing).Error
		if err == nil {
			users = append(users, &existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err := DB.Create(u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func seedDemoChat(a, b *user.User) (*chat.Chat, []*message.Message, error) {
	pairKey := chat.PairKey(a.ID, b.ID)

	var existing chat.Chat
	err := DB.Preload("Members").Where("pair_key = ?", pairKey).First(&existing).Error
	if err == nil {
		return &existing, nil, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	now := time.Now().UTC()
	c := &chat.Chat{
		ID:      uuid.New(),
		IsGroup: false,
		PairKey: sql.NullString{String: pairKey, Valid: true},
		Members: []chat.Member{
			{UserID: a.ID, JoinedAt: now},
			{UserID: b.ID, JoinedAt: now},
		},
	}
	if err := DB.Create(c).Error; err != nil {
		return nil, nil, err
	}

	bodies := []struct {
		sender uuid.UUID
		text   string
	}{
		{a.ID, "Hey, are you on the new chat app?"},
		{b.ID, "Just signed up. Works great so far."},
	}

	msgs := make([]*message.Message, 0, len(bodies))
	for _, m := range bodies {
		msg := &message.Message{
			ID:       uuid.New(),
			ChatID:   c.ID,
			SenderID: m.sender,
			Body:     m.text,
			Type:     message.TypeText,
		}
		if err := DB.Create(msg).Error; err != nil {
			return nil, nil, err
		}
		msgs = append(msgs, msg)
	}

	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		if err := DB.Model(&chat.Chat{}).
			Where("id = ?", c.ID).
			Update("last_message_id", last.ID).Error; err != nil {
			return nil, nil, err
		}
	}

	return c, msgs, nil
}
