package handler

import (
	"net/http"
	"strconv"

	"realtime-chat/internal/services"
	"realtime-chat/internal/transport/httpdto"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	service     *services.MessageService
	chatService *services.ChatService
}

func NewMessageHandler(service *services.MessageService, chatService *services.ChatService) *MessageHandler {
	return &MessageHandler{service: service, chatService: chatService}
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	chatID, err := parseUUID(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat_id", "INVALID_REQUEST"))
		return
	}

	in := services.SendInput{
		ChatID:   chatID,
		SenderID: userID,
		Body:     req.Body,
		Type:     req.Type,
		FileURL:  req.FileURL,
	}
	if req.ReplyTo != "" {
		replyTo, err := parseUUID(req.ReplyTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid reply_to", "INVALID_REQUEST"))
			return
		}
		in.ReplyTo = &replyTo
	}

	msg, err := h.service.Send(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromMessage(msg)))
}

// List returns the page and, as the caller has now fetched the chat,
// marks it seen for them.
func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	if !h.requireMembership(c, chatID, userID) {
		return
	}

	messages, err := h.service.List(c.Request.Context(), chatID, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.MarkChatSeen(c.Request.Context(), chatID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListMessagesResponse{
		Messages:      httpdto.FromMessageSlice(messages),
		TotalMessages: len(messages),
		HasMore:       len(messages) == limit,
	}))
}

func (h *MessageHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	messageID, err := parseUUID(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	msg, err := h.service.GetByID(c.Request.Context(), messageID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.requireMembership(c, msg.ChatID, userID) {
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromMessage(msg)))
}

func (h *MessageHandler) Edit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	messageID, err := parseUUID(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	msg, err := h.service.Edit(c.Request.Context(), messageID, userID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromMessage(msg)))
}

func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	messageID, err := parseUUID(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) MarkSeen(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	messageID, err := parseUUID(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	msg, err := h.service.GetByID(c.Request.Context(), messageID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.requireMembership(c, msg.ChatID, userID) {
		return
	}

	if err := h.service.MarkSeen(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) MarkChatSeen(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	if !h.requireMembership(c, chatID, userID) {
		return
	}
	if err := h.service.MarkChatSeen(c.Request.Context(), chatID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	if !h.requireMembership(c, chatID, userID) {
		return
	}
	count, err := h.service.UnreadCount(c.Request.Context(), chatID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UnreadCountResponse{UnreadCount: count}))
}

func (h *MessageHandler) Search(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if !h.requireMembership(c, chatID, userID) {
		return
	}

	messages, err := h.service.Search(c.Request.Context(), chatID, c.Query("query"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{
		"messages":      httpdto.FromMessageSlice(messages),
		"total_results": len(messages),
	}))
}

// requireMembership is the calling-layer authorization check for reads:
// the caller must be a member of the chat before touching its messages.
func (h *MessageHandler) requireMembership(c *gin.Context, chatID, userID uuid.UUID) bool {
	chat, err := h.chatService.GetByID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if !chat.IsMember(userID) {
		respondError(c, chat_errors.ErrNotChatMember)
		return false
	}
	return true
}
