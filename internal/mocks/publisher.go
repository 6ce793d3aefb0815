package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"realtime-chat/pkg/events"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, channel string, event events.Event) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}
