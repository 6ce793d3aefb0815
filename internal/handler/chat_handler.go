package handler

import (
	"net/http"

	"realtime-chat/internal/services"
	"realtime-chat/internal/transport/httpdto"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatHandler struct {
	service     *services.ChatService
	userService *services.UserService
}

func NewChatHandler(service *services.ChatService, userService *services.UserService) *ChatHandler {
	return &ChatHandler{service: service, userService: userService}
}

func (h *ChatHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chats, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListChatsResponse{
		Chats:      httpdto.FromChatSlice(chats),
		TotalChats: len(chats),
	}))
}

func (h *ChatHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	chat, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !chat.IsMember(userID) {
		respondError(c, chat_errors.ErrNotChatMember)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromChat(chat)))
}

// CreateIndividual resolves the other party by mobile, then finds or
// creates the pair chat.
func (h *ChatHandler) CreateIndividual(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req httpdto.CreateIndividualChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	other, err := h.userService.ResolveByMobile(c.Request.Context(), req.Mobile)
	if err != nil {
		respondError(c, err)
		return
	}

	chat, created, err := h.service.FindOrCreateIndividual(c.Request.Context(), userID, other.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, httpdto.NewSuccessResponse(httpdto.FromChat(chat)))
}

func (h *ChatHandler) CreateGroup(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req httpdto.CreateGroupChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	memberIDs := make([]uuid.UUID, 0, len(req.MemberIDs))
	for _, idStr := range req.MemberIDs {
		id, err := parseUUID(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid member id", "INVALID_REQUEST"))
			return
		}
		memberIDs = append(memberIDs, id)
	}

	chat, err := h.service.CreateGroup(c.Request.Context(), userID, req.GroupName, memberIDs, req.ProfilePic)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromChat(chat)))
}

// AddMember enforces the admin/group preconditions here; the service
// only guards membership uniqueness.
func (h *ChatHandler) AddMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	memberID, err := parseUUID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !chat.IsGroup {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("can only add members to group chats", "INVALID_REQUEST"))
		return
	}
	if !chat.IsAdmin(userID) {
		respondError(c, chat_errors.ErrForbidden)
		return
	}

	if err := h.service.AddMember(c.Request.Context(), chat, memberID); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromChat(updated)))
}

func (h *ChatHandler) RemoveMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	memberID, err := parseUUID(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid member id", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !chat.IsGroup {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("can only remove members from group chats", "INVALID_REQUEST"))
		return
	}
	if !chat.IsAdmin(userID) {
		respondError(c, chat_errors.ErrForbidden)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), chat, memberID); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromChat(updated)))
}

func (h *ChatHandler) Leave(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !chat.IsGroup {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("can only leave group chats", "INVALID_REQUEST"))
		return
	}

	if err := h.service.Leave(c.Request.Context(), chat, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *ChatHandler) UpdateGroupInfo(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.UpdateGroupInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !chat.IsGroup {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("can only update group chats", "INVALID_REQUEST"))
		return
	}
	if !chat.IsAdmin(userID) {
		respondError(c, chat_errors.ErrForbidden)
		return
	}

	if err := h.service.UpdateGroupInfo(c.Request.Context(), chatID, req.GroupName, req.ProfilePic); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromChat(updated)))
}
