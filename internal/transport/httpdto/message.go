package httpdto

import (
	"time"

	"realtime-chat/internal/domain/message"
)

type SendMessageRequest struct {
	ChatID  string `json:"chat_id" binding:"required"`
	Body    string `json:"body" binding:"required"`
	Type    string `json:"type"`
	FileURL string `json:"file_url"`
	ReplyTo string `json:"reply_to"`
}

type EditMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

type MessageResponse struct {
	ID         string     `json:"id"`
	ChatID     string     `json:"chat_id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id,omitempty"`
	Body       string     `json:"body"`
	Type       string     `json:"type"`
	FileURL    string     `json:"file_url,omitempty"`
	ReplyTo    string     `json:"reply_to,omitempty"`
	SeenBy     []string   `json:"seen_by"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
	Deleted    bool       `json:"deleted"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ListMessagesResponse struct {
	Messages      []MessageResponse `json:"messages"`
	TotalMessages int               `json:"total_messages"`
	HasMore       bool              `json:"has_more"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

func FromMessage(m message.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID.String(),
		ChatID:    m.ChatID.String(),
		SenderID:  m.SenderID.String(),
		Body:      m.Body,
		Type:      m.Type,
		SeenBy:    make([]string, 0, len(m.SeenBy)),
		Deleted:   m.Deleted,
		CreatedAt: m.CreatedAt,
	}
	if m.ReceiverID.Valid {
		resp.ReceiverID = m.ReceiverID.UUID.String()
	}
	if m.FileURL.Valid {
		resp.FileURL = m.FileURL.String
	}
	if m.ReplyToID.Valid {
		resp.ReplyTo = m.ReplyToID.UUID.String()
	}
	if m.EditedAt.Valid {
		t := m.EditedAt.Time
		resp.EditedAt = &t
	}
	for _, s := range m.SeenBy {
		resp.SeenBy = append(resp.SeenBy, s.UserID.String())
	}
	return resp
}

func FromMessageSlice(messages []message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, FromMessage(m))
	}
	return out
}
