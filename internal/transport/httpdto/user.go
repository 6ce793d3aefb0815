package httpdto

import (
	"time"

	"realtime-chat/internal/domain/user"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  PublicProfile `json:"user"`
	Token string        `json:"token"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	ProfilePic string `json:"profile_pic"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PublicProfile is the directory projection of a user; the password
// hash never leaves the service layer.
type PublicProfile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Mobile     string    `json:"mobile"`
	ProfilePic string    `json:"profile_pic"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromUser(u user.User) PublicProfile {
	return PublicProfile{
		ID:         u.ID.String(),
		Name:       u.Name,
		Mobile:     u.Mobile,
		ProfilePic: u.ProfilePic,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func FromUserSlice(users []user.User) []PublicProfile {
	out := make([]PublicProfile, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
