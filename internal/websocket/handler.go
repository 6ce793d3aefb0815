package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"realtime-chat/internal/services"
	"realtime-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ChatChannel is the hub channel carrying events for one chat.
func ChatChannel(chatID uuid.UUID) string {
	return "chat:" + chatID.String()
}

// UserChannel carries events addressed to a single user.
func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// clientFrame is the only inbound message shape clients may send:
// subscribe/unsubscribe to a chat they joined after connecting.
type clientFrame struct {
	Action string `json:"action"`
	ChatID string `json:"chat_id"`
}

type Handler struct {
	auth *services.AuthService
	chat *services.ChatService
	hub  *Hub
}

func NewHandler(auth *services.AuthService, chat *services.ChatService, hub *Hub) *Handler {
	return &Handler{auth: auth, chat: chat, hub: hub}
}

// Connect upgrades the request, attaches the client to every chat the
// user belongs to, then serves subscribe frames until the peer goes away.
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	claims, err := h.auth.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, userID.String())
	h.hub.Register(client)
	go client.WriteLoop(c.Request.Context())

	h.hub.Subscribe(client, UserChannel(userID))
	if chats, err := h.chat.ListForUser(c.Request.Context(), userID); err == nil {
		for _, chat := range chats {
			h.hub.Subscribe(client, ChatChannel(chat.ID))
		}
	}

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		h.handleFrame(c, client, userID, data)
	}

	h.hub.Unregister(client)
}

func (h *Handler) handleFrame(c *gin.Context, client *Client, userID uuid.UUID, data []byte) {
	var frame clientFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return
	}
	chatID, err := uuid.Parse(frame.ChatID)
	if err != nil {
		return
	}

	switch frame.Action {
	case "subscribe":
		chat, err := h.chat.GetByID(c.Request.Context(), chatID)
		if err != nil || !chat.IsMember(userID) {
			return
		}
		h.hub.Subscribe(client, ChatChannel(chatID))
	case "unsubscribe":
		h.hub.Unsubscribe(client, ChatChannel(chatID))
	}
}
