package chat_errors

import "errors"

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
)

// Contact errors
var (
	ErrDuplicateContact = errors.New("contact already exists")
	ErrSelfContact      = errors.New("cannot add yourself as a contact")
)

// Chat errors
var (
	ErrAlreadyMember     = errors.New("user is already a member of this chat")
	ErrNotMember         = errors.New("user is not a member of this chat")
	ErrCannotRemoveAdmin = errors.New("cannot remove group admin")
	ErrUnknownMember     = errors.New("some requested members do not exist")
)

// Message errors
var (
	ErrNotChatMember  = errors.New("you are not a member of this chat")
	ErrInvalidReply   = errors.New("invalid reply message")
	ErrMissingFileURL = errors.New("file url is required for image and file messages")
	ErrNotSender      = errors.New("only sender can modify the message")
	ErrAlreadyDeleted = errors.New("message is already deleted")
)
