package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/user"
	"realtime-chat/internal/mocks"
	"realtime-chat/internal/services"
	chat_errors "realtime-chat/pkg/errors"
)

func setupChatRouter(h *ChatHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := services.WithUserContext(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.GET("/chats/:chatId", h.Get)
	r.POST("/chats/individual", h.CreateIndividual)
	r.POST("/chats/:chatId/members", h.AddMember)
	r.DELETE("/chats/:chatId/members/:memberId", h.RemoveMember)
	return r
}

func newChatHandler(chatRepo *mocks.ChatRepositoryMock, userRepo *mocks.UserRepositoryMock) *ChatHandler {
	chatService := services.NewChatService(chatRepo, userRepo)
	userService := services.NewUserService(userRepo)
	return NewChatHandler(chatService, userService)
}

func TestGetChatNonMemberForbidden(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	caller := uuid.New()
	router := setupChatRouter(newChatHandler(chatRepo, userRepo), caller)

	c := chat.Chat{ID: uuid.New(), Members: []chat.Member{{UserID: uuid.New()}, {UserID: uuid.New()}}}
	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats/"+c.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	chatRepo.AssertExpectations(t)
}

func TestAddMemberNonAdminForbidden(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	caller := uuid.New()
	router := setupChatRouter(newChatHandler(chatRepo, userRepo), caller)

	c := chat.Chat{
		ID:           uuid.New(),
		IsGroup:      true,
		GroupAdminID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
		Members:      []chat.Member{{UserID: caller}},
	}
	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()

	body := bytes.NewBufferString(fmt.Sprintf(`{"user_id":%q}`, uuid.New()))
	req := httptest.NewRequest(http.MethodPost, "/chats/"+c.ID.String()+"/members", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	chatRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
}

func TestAddMemberIndividualChatRejected(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	caller := uuid.New()
	router := setupChatRouter(newChatHandler(chatRepo, userRepo), caller)

	c := chat.Chat{ID: uuid.New(), IsGroup: false, Members: []chat.Member{{UserID: caller}, {UserID: uuid.New()}}}
	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()

	body := bytes.NewBufferString(fmt.Sprintf(`{"user_id":%q}`, uuid.New()))
	req := httptest.NewRequest(http.MethodPost, "/chats/"+c.ID.String()+"/members", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddMemberSuccess(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	caller := uuid.New()
	router := setupChatRouter(newChatHandler(chatRepo, userRepo), caller)

	newMember := uuid.New()
	c := chat.Chat{
		ID:           uuid.New(),
		IsGroup:      true,
		GroupAdminID: uuid.NullUUID{UUID: caller, Valid: true},
		Members:      []chat.Member{{UserID: caller}},
	}
	updated := c
	updated.Members = append([]chat.Member{}, c.Members...)
	updated.Members = append(updated.Members, chat.Member{UserID: newMember})

	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()
	userRepo.On("GetByID", mock.Anything, newMember).Return(user.User{ID: newMember}, nil).Once()
	chatRepo.On("AddMember", mock.Anything, mock.MatchedBy(func(m *chat.Member) bool {
		return m.ChatID == c.ID && m.UserID == newMember
	})).Return(nil).Once()
	chatRepo.On("GetByID", mock.Anything, c.ID).Return(updated, nil).Once()

	body := bytes.NewBufferString(fmt.Sprintf(`{"user_id":%q}`, newMember))
	req := httptest.NewRequest(http.MethodPost, "/chats/"+c.ID.String()+"/members", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	chatRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestRemoveAdminRejected(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	caller := uuid.New()
	router := setupChatRouter(newChatHandler(chatRepo, userRepo), caller)

	c := chat.Chat{
		ID:           uuid.New(),
		IsGroup:      true,
		GroupAdminID: uuid.NullUUID{UUID: caller, Valid: true},
		Members:      []chat.Member{{UserID: caller}, {UserID: uuid.New()}},
	}
	chatRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil).Once()

	req := httptest.NewRequest(http.MethodDelete,
		"/chats/"+c.ID.String()+"/members/"+caller.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	chatRepo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateIndividualFoundVsCreatedStatus(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	caller := uuid.New()
	router := setupChatRouter(newChatHandler(chatRepo, userRepo), caller)

	other := user.User{ID: uuid.New(), Mobile: "9876543210"}
	key := chat.PairKey(caller, other.ID)

	userRepo.On("GetByMobile", mock.Anything, other.Mobile).Return(other, nil).Twice()

	// First request creates.
	chatRepo.On("GetIndividualByPair", mock.Anything, key).
		Return(chat.Chat{}, chat_errors.ErrNotFound).Once()
	chatRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	body := bytes.NewBufferString(`{"mobile":"9876543210"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/individual", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Second request finds the existing pair.
	existing := chat.Chat{ID: uuid.New(), Members: []chat.Member{{UserID: caller}, {UserID: other.ID}}}
	chatRepo.On("GetIndividualByPair", mock.Anything, key).Return(existing, nil).Once()

	body = bytes.NewBufferString(`{"mobile":"9876543210"}`)
	req = httptest.NewRequest(http.MethodPost, "/chats/individual", body)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	chatRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
