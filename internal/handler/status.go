package handler

import (
	"errors"
	"net/http"

	chat_errors "realtime-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realtime-chat/internal/services"
	"realtime-chat/internal/transport/httpdto"
)

// statusForError maps the domain error taxonomy onto HTTP. Anything
// outside the taxonomy is an infrastructure failure and stays a 500 —
// the two classes are never conflated.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, chat_errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, chat_errors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, chat_errors.ErrForbidden),
		errors.Is(err, chat_errors.ErrNotChatMember),
		errors.Is(err, chat_errors.ErrNotSender):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, chat_errors.ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, chat_errors.ErrDuplicateContact),
		errors.Is(err, chat_errors.ErrSelfContact),
		errors.Is(err, chat_errors.ErrAlreadyMember),
		errors.Is(err, chat_errors.ErrNotMember),
		errors.Is(err, chat_errors.ErrCannotRemoveAdmin),
		errors.Is(err, chat_errors.ErrUnknownMember),
		errors.Is(err, chat_errors.ErrInvalidReply),
		errors.Is(err, chat_errors.ErrMissingFileURL),
		errors.Is(err, chat_errors.ErrAlreadyDeleted),
		errors.Is(err, chat_errors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, httpdto.NewErrorResponse("internal server error", code))
		return
	}
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return uuid.Nil, false
	}
	return userID, true
}

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}
