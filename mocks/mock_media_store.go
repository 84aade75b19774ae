package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uploadrelay/internal/domain"
	"uploadrelay/internal/port"
)

// MockMediaStore is a mock implementation of port.MediaStore.
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, input port.UploadInput) (domain.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.UploadResult), args.Error(1)
}

func (m *MockMediaStore) ListResources(ctx context.Context, query domain.ResourceQuery) (*domain.ResourceList, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceList), args.Error(1)
}

func (m *MockMediaStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
