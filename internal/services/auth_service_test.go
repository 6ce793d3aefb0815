package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtime-chat/config"
	"realtime-chat/internal/domain/user"
	"realtime-chat/internal/mocks"
	chat_errors "realtime-chat/pkg/errors"
)

func testAuthService(userRepo *mocks.UserRepositoryMock) *AuthService {
	return NewAuthService(userRepo, &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiryHour: 1,
	})
}

func TestRegisterValidation(t *testing.T) {
	svc := testAuthService(new(mocks.UserRepositoryMock))

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"empty name", RegisterInput{Name: "  ", Mobile: "9876543210", Password: "secret1"}},
		{"short mobile", RegisterInput{Name: "Alice", Mobile: "12345", Password: "secret1"}},
		{"non-digit mobile", RegisterInput{Name: "Alice", Mobile: "987654321a", Password: "secret1"}},
		{"short password", RegisterInput{Name: "Alice", Mobile: "9876543210", Password: "12345"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
		})
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testAuthService(userRepo)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Mobile == "9876543210" &&
			u.PasswordHash != "secret1" &&
			CheckPassword(u.PasswordHash, "secret1")
	})).Return(nil).Once()

	res, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Mobile:   "9876543210",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user.StatusOffline, res.User.Status)
	userRepo.AssertExpectations(t)
}

func TestRegisterDuplicateMobile(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testAuthService(userRepo)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(chat_errors.ErrAlreadyExists).Once()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Mobile:   "9876543210",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, chat_errors.ErrAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testAuthService(userRepo)

	hash, err := HashPassword("correct-pass")
	require.NoError(t, err)

	userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(user.User{
		ID:           uuid.New(),
		Mobile:       "9876543210",
		PasswordHash: hash,
	}, nil).Once()

	_, err = svc.Login(context.Background(), LoginInput{Mobile: "9876543210", Password: "wrong"})
	assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)
}

func TestLoginUnknownMobileHidesExistence(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testAuthService(userRepo)

	userRepo.On("GetByMobile", mock.Anything, "0000000000").Return(user.User{}, chat_errors.ErrNotFound).Once()

	_, err := svc.Login(context.Background(), LoginInput{Mobile: "0000000000", Password: "whatever"})
	assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)
}

func TestLoginSetsOnlineAndIssuesToken(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testAuthService(userRepo)

	id := uuid.New()
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(user.User{
		ID:           id,
		Mobile:       "9876543210",
		PasswordHash: hash,
		Status:       user.StatusOffline,
	}, nil).Once()
	userRepo.On("UpdateStatus", mock.Anything, id, user.StatusOnline).Return(nil).Once()

	res, err := svc.Login(context.Background(), LoginInput{Mobile: "9876543210", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.StatusOnline, res.User.Status)

	claims, err := svc.ParseAccessToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	userRepo.AssertExpectations(t)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := testAuthService(new(mocks.UserRepositoryMock))

	_, err := svc.ParseAccessToken("")
	assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)

	_, err = svc.ParseAccessToken("not.a.token")
	assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)
}

func TestParseAccessTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewAuthService(new(mocks.UserRepositoryMock), &config.Config{JWTSecret: "other-secret", JWTExpiryHour: 1})
	verifier := testAuthService(new(mocks.UserRepositoryMock))

	token, err := issuer.issueToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	assert.ErrorIs(t, err, chat_errors.ErrUnauthorized)
}
