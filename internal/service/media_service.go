package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"uploadrelay/internal/config"
	"uploadrelay/internal/domain"
	"uploadrelay/internal/port"
	"uploadrelay/internal/staging"
)

// UploadInput is the DTO for relayed upload requests.
type UploadInput struct {
	Header *multipart.FileHeader
}

// ListInput carries optional paging for resource listings.
type ListInput struct {
	MaxResults int
	NextCursor string
}

// MediaService defines the upload relay contract.
type MediaService interface {
	Upload(ctx context.Context, input UploadInput) (domain.UploadResult, error)
	ListResources(ctx context.Context, input ListInput) (*domain.ResourceList, error)
	Ping(ctx context.Context) error
}

type mediaService struct {
	store   port.MediaStore
	folder  string
	tempDir string
}

// NewMediaService creates a new MediaService implementation.
func NewMediaService(store port.MediaStore, mediaCfg *config.MediaConfig, uploadCfg *config.UploadConfig) MediaService {
	folder := mediaCfg.Folder
	if folder == "" {
		folder = domain.DefaultUploadFolder
	}
	return &mediaService{
		store:   store,
		folder:  folder,
		tempDir: uploadCfg.TempDir,
	}
}

// Upload stages the file locally, hands it to the media store and removes the
// staged copy whatever the outcome. Store errors are returned unwrapped so
// their message reaches the client as the store reported it.
func (s *mediaService) Upload(ctx context.Context, input UploadInput) (domain.UploadResult, error) {
	if input.Header == nil {
		return nil, domain.ErrNoFile
	}

	src, err := input.Header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer func() { _ = src.Close() }()

	staged, release, err := staging.Stage(s.tempDir, input.Header.Filename, src)
	defer release()
	if err != nil {
		log.Printf("mediaService.Upload: staging %s failed: %v", input.Header.Filename, err)
		return nil, err
	}

	log.Printf("mediaService.Upload: relaying %s (%d bytes) to folder %s",
		staged.Name, staged.Size, s.folder)

	result, err := s.store.Upload(ctx, port.UploadInput{
		FilePath: staged.Path,
		Filename: staged.Name,
		Folder:   s.folder,
	})
	if err != nil {
		log.Printf("mediaService.Upload: store upload failed for %s: %v", staged.Name, err)
		return nil, err
	}

	return result, nil
}

func (s *mediaService) ListResources(ctx context.Context, input ListInput) (*domain.ResourceList, error) {
	if input.MaxResults < 0 {
		return nil, domain.ErrInvalidListParams
	}

	list, err := s.store.ListResources(ctx, domain.ResourceQuery{
		Type:       domain.ResourceTypeUpload,
		Prefix:     s.folder,
		MaxResults: input.MaxResults,
		NextCursor: input.NextCursor,
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = &domain.ResourceList{}
	}
	if list.Resources == nil {
		list.Resources = []domain.Resource{}
	}
	return list, nil
}

func (s *mediaService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
