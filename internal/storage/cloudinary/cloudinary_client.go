package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"uploadrelay/internal/config"
	"uploadrelay/internal/domain"
	"uploadrelay/internal/port"
)

// Listings cover image assets, which is what the upload endpoint relays.
const assetType = api.AssetType("image")

type cloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryClient creates a Cloudinary-backed MediaStore implementation.
func NewCloudinaryClient(cfg *config.CloudinaryConfig) (port.MediaStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("creating cloudinary client: %w", err)
	}
	return &cloudinaryClient{cld: cld}, nil
}

// Upload relays the body Cloudinary returned, not the SDK's typed view of it,
// so fields the SDK does not model still reach the client.
func (c *cloudinaryClient) Upload(ctx context.Context, input port.UploadInput) (domain.UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, input.FilePath, uploader.UploadParams{
		Folder: input.Folder,
	})
	if err != nil {
		return nil, err
	}
	if err := apiError(res.Error); err != nil {
		return nil, err
	}
	return rawPayload(res.Response)
}

func (c *cloudinaryClient) ListResources(ctx context.Context, query domain.ResourceQuery) (*domain.ResourceList, error) {
	res, err := c.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:    assetType,
		DeliveryType: query.Type,
		Prefix:       query.Prefix,
		MaxResults:   query.MaxResults,
		NextCursor:   query.NextCursor,
	})
	if err != nil {
		return nil, err
	}
	if err := apiError(res.Error); err != nil {
		return nil, err
	}

	items, err := resourceItems(res.Response)
	if err != nil {
		return nil, err
	}

	list := &domain.ResourceList{
		Resources:  make([]domain.Resource, 0, len(items)),
		NextCursor: res.NextCursor,
	}
	for _, item := range items {
		raw, err := rawPayload(item)
		if err != nil {
			return nil, err
		}
		list.Resources = append(list.Resources, raw)
	}
	return list, nil
}

func (c *cloudinaryClient) Ping(ctx context.Context) error {
	res, err := c.cld.Admin.Ping(ctx)
	if err != nil {
		return err
	}
	return apiError(res.Error)
}

// apiError surfaces an error the API reported in the response body. The SDK
// returns these with a nil error, so they must be checked explicitly.
func apiError(resp api.ErrorResp) error {
	if resp.Message == "" {
		return nil
	}
	return errors.New(resp.Message)
}

// resourceItems pulls the "resources" array out of a decoded listing body.
func resourceItems(body any) ([]any, error) {
	fields, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected cloudinary listing body %T", body)
	}
	raw, present := fields["resources"]
	if !present || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected cloudinary resources field %T", raw)
	}
	return items, nil
}

// rawPayload re-encodes a value the SDK decoded from the vendor body.
func rawPayload(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, errors.New("empty cloudinary response")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding cloudinary result: %w", err)
	}
	return raw, nil
}
