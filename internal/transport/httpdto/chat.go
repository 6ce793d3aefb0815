package httpdto

import (
	"time"

	"realtime-chat/internal/domain/chat"
)

type CreateIndividualChatRequest struct {
	Mobile string `json:"mobile" binding:"required"`
}

type CreateGroupChatRequest struct {
	GroupName  string   `json:"group_name" binding:"required"`
	MemberIDs  []string `json:"member_ids" binding:"required"`
	ProfilePic string   `json:"profile_pic"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type UpdateGroupInfoRequest struct {
	GroupName  string `json:"group_name"`
	ProfilePic string `json:"profile_pic"`
}

type ChatResponse struct {
	ID            string    `json:"id"`
	IsGroup       bool      `json:"is_group"`
	GroupName     string    `json:"group_name,omitempty"`
	GroupAdminID  string    `json:"group_admin_id,omitempty"`
	ProfilePic    string    `json:"profile_pic,omitempty"`
	Members       []string  `json:"members"`
	MemberCount   int       `json:"member_count"`
	LastMessageID string    `json:"last_message_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListChatsResponse struct {
	Chats      []ChatResponse `json:"chats"`
	TotalChats int            `json:"total_chats"`
}

func FromChat(c chat.Chat) ChatResponse {
	resp := ChatResponse{
		ID:          c.ID.String(),
		IsGroup:     c.IsGroup,
		MemberCount: c.MemberCount(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.GroupName.Valid {
		resp.GroupName = c.GroupName.String
	}
	if c.GroupAdminID.Valid {
		resp.GroupAdminID = c.GroupAdminID.UUID.String()
	}
	if c.ProfilePic.Valid {
		resp.ProfilePic = c.ProfilePic.String
	}
	if c.LastMessageID.Valid {
		resp.LastMessageID = c.LastMessageID.UUID.String()
	}
	for _, m := range c.Members {
		resp.Members = append(resp.Members, m.UserID.String())
	}
	return resp
}

func FromChatSlice(chats []chat.Chat) []ChatResponse {
	out := make([]ChatResponse, 0, len(chats))
	for _, c := range chats {
		out = append(out, FromChat(c))
	}
	return out
}
