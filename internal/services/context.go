package services

import (
	"context"

	"github.com/google/uuid"

	"realtime-chat/pkg/logger"
)

type ctxKey string

const userIDKey ctxKey = "auth_user_id"

// WithUserContext stamps the authenticated user onto the request
// context, both for handlers and for log enrichment.
func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, logger.UserIdKey, userID.String())
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
