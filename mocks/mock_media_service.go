package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uploadrelay/internal/domain"
	"uploadrelay/internal/service"
)

// MockMediaService is a mock implementation of service.MediaService.
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, input service.UploadInput) (domain.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.UploadResult), args.Error(1)
}

func (m *MockMediaService) ListResources(ctx context.Context, input service.ListInput) (*domain.ResourceList, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceList), args.Error(1)
}

func (m *MockMediaService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
