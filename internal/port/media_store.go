package port

import (
	"context"

	"uploadrelay/internal/domain"
)

// UploadInput describes a staged file to push to the media store.
type UploadInput struct {
	FilePath string
	Filename string
	Folder   string
}

// MediaStore abstracts the remote media hosting service.
type MediaStore interface {
	Upload(ctx context.Context, input UploadInput) (domain.UploadResult, error)
	ListResources(ctx context.Context, query domain.ResourceQuery) (*domain.ResourceList, error)
	Ping(ctx context.Context) error
}
