package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/user"
	"realtime-chat/internal/mocks"
	chat_errors "realtime-chat/pkg/errors"
)

func TestFindOrCreateIndividualRejectsSamePair(t *testing.T) {
	svc := NewChatService(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock))
	id := uuid.New()

	_, _, err := svc.FindOrCreateIndividual(context.Background(), id, id)
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestFindOrCreateIndividualReturnsExisting(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	svc := NewChatService(chatRepo, new(mocks.UserRepositoryMock))

	a := uuid.New()
	b := uuid.New()
	existing := chat.Chat{ID: uuid.New(), Members: []chat.Member{{UserID: a}, {UserID: b}}}

	// Lookup key is identical regardless of argument order.
	chatRepo.On("GetIndividualByPair", mock.Anything, chat.PairKey(b, a)).Return(existing, nil).Twice()

	got, created, err := svc.FindOrCreateIndividual(context.Background(), a, b)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, got.ID)

	got, created, err = svc.FindOrCreateIndividual(context.Background(), b, a)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, got.ID)
	chatRepo.AssertExpectations(t)
}

func TestFindOrCreateIndividualCreates(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	svc := NewChatService(chatRepo, new(mocks.UserRepositoryMock))

	a := uuid.New()
	b := uuid.New()
	key := chat.PairKey(a, b)

	chatRepo.On("GetIndividualByPair", mock.Anything, key).Return(chat.Chat{}, chat_errors.ErrNotFound).Once()
	chatRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *chat.Chat) bool {
		return !c.IsGroup && c.PairKey.String == key && len(c.Members) == 2
	})).Return(nil).Once()

	got, created, err := svc.FindOrCreateIndividual(context.Background(), a, b)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, got.IsMember(a))
	assert.True(t, got.IsMember(b))
	assert.False(t, got.GroupAdminID.Valid)
	chatRepo.AssertExpectations(t)
}

func TestFindOrCreateIndividualLosesCreateRace(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	svc := NewChatService(chatRepo, new(mocks.UserRepositoryMock))

	a := uuid.New()
	b := uuid.New()
	key := chat.PairKey(a, b)
	winner := chat.Chat{ID: uuid.New()}

	chatRepo.On("GetIndividualByPair", mock.Anything, key).Return(chat.Chat{}, chat_errors.ErrNotFound).Once()
	chatRepo.On("Create", mock.Anything, mock.Anything).Return(chat_errors.ErrAlreadyExists).Once()
	chatRepo.On("GetIndividualByPair", mock.Anything, key).Return(winner, nil).Once()

	got, created, err := svc.FindOrCreateIndividual(context.Background(), a, b)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)
	chatRepo.AssertExpectations(t)
}

func TestCreateGroupDedupesAdmin(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	svc := NewChatService(chatRepo, userRepo)

	admin := uuid.New()
	other := uuid.New()

	userRepo.On("GetByIDs", mock.Anything, []uuid.UUID{admin, other}).Return([]user.User{
		{ID: admin}, {ID: other},
	}, nil).Once()
	chatRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *chat.Chat) bool {
		return c.IsGroup && c.MemberCount() == 2 && c.IsAdmin(admin)
	})).Return(nil).Once()

	// Admin appears in the member list too; membership must not double.
	got, err := svc.CreateGroup(context.Background(), admin, "weekend plans", []uuid.UUID{admin, other}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount())
	assert.True(t, got.IsAdmin(admin))
	chatRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateGroupUnknownMember(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	svc := NewChatService(chatRepo, userRepo)

	admin := uuid.New()
	ghost := uuid.New()

	userRepo.On("GetByIDs", mock.Anything, []uuid.UUID{admin, ghost}).Return([]user.User{
		{ID: admin},
	}, nil).Once()

	_, err := svc.CreateGroup(context.Background(), admin, "ghost town", []uuid.UUID{ghost}, "")
	assert.ErrorIs(t, err, chat_errors.ErrUnknownMember)
	userRepo.AssertExpectations(t)
}

func TestCreateGroupValidatesName(t *testing.T) {
	svc := NewChatService(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock))

	_, err := svc.CreateGroup(context.Background(), uuid.New(), "x", []uuid.UUID{uuid.New()}, "")
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestCreateGroupRequiresAnotherMember(t *testing.T) {
	svc := NewChatService(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock))
	admin := uuid.New()

	_, err := svc.CreateGroup(context.Background(), admin, "just me", []uuid.UUID{admin}, "")
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestAddMemberDuplicate(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	svc := NewChatService(chatRepo, userRepo)

	member := uuid.New()
	c := chat.Chat{ID: uuid.New(), IsGroup: true}

	userRepo.On("GetByID", mock.Anything, member).Return(user.User{ID: member}, nil).Once()
	chatRepo.On("AddMember", mock.Anything, mock.Anything).Return(chat_errors.ErrAlreadyExists).Once()

	err := svc.AddMember(context.Background(), c, member)
	assert.ErrorIs(t, err, chat_errors.ErrAlreadyMember)
	chatRepo.AssertExpectations(t)
}

func TestRemoveMemberProtectsAdmin(t *testing.T) {
	svc := NewChatService(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock))

	admin := uuid.New()
	c := chat.Chat{
		ID:           uuid.New(),
		IsGroup:      true,
		GroupAdminID: uuid.NullUUID{UUID: admin, Valid: true},
	}

	err := svc.RemoveMember(context.Background(), c, admin)
	assert.ErrorIs(t, err, chat_errors.ErrCannotRemoveAdmin)
}

func TestRemoveMemberNotMember(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	svc := NewChatService(chatRepo, new(mocks.UserRepositoryMock))

	c := chat.Chat{ID: uuid.New(), IsGroup: true}
	stranger := uuid.New()

	chatRepo.On("RemoveMember", mock.Anything, c.ID, stranger).Return(chat_errors.ErrNotFound).Once()

	err := svc.RemoveMember(context.Background(), c, stranger)
	assert.ErrorIs(t, err, chat_errors.ErrNotMember)
	chatRepo.AssertExpectations(t)
}

func TestUpdateGroupInfoRequiresChanges(t *testing.T) {
	svc := NewChatService(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock))

	err := svc.UpdateGroupInfo(context.Background(), uuid.New(), "", "")
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}
