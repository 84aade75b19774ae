package domain

import "errors"

var (
	ErrNoFile                  = errors.New("no file uploaded")
	ErrInvalidListParams       = errors.New("invalid max_results")
	ErrUnsupportedResourceType = errors.New("unsupported resource type")
	ErrStoreUnavailable        = errors.New("media store not reachable")
)
