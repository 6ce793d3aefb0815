package httpdto

import (
	"time"

	"realtime-chat/internal/services"
)

type AddContactRequest struct {
	ContactID string `json:"contact_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

type RenameContactRequest struct {
	Name string `json:"name" binding:"required"`
}

type ContactResponse struct {
	User    PublicProfile `json:"user"`
	Name    string        `json:"name"`
	AddedAt time.Time     `json:"added_at"`
}

type ListContactsResponse struct {
	Contacts      []ContactResponse `json:"contacts"`
	TotalContacts int               `json:"total_contacts"`
}

func FromContactProfiles(profiles []services.ContactProfile) ListContactsResponse {
	contacts := make([]ContactResponse, 0, len(profiles))
	for _, p := range profiles {
		contacts = append(contacts, ContactResponse{
			User:    FromUser(p.User),
			Name:    p.Name,
			AddedAt: p.AddedAt,
		})
	}
	return ListContactsResponse{Contacts: contacts, TotalContacts: len(contacts)}
}
