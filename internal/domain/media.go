package domain

import "encoding/json"

// Defaults applied to every upload and listing.
const (
	DefaultUploadFolder = "uploads"
	ResourceTypeUpload  = "upload"
)

// UploadResult is the metadata the media store returns for a stored file.
// It is relayed to clients without interpretation.
type UploadResult = json.RawMessage

// Resource is one stored file's metadata record as reported by the media store.
type Resource = json.RawMessage

// ResourceList is a page of resources returned by a listing query.
type ResourceList struct {
	Resources  []Resource
	NextCursor string
}

// ResourceQuery filters a listing of stored resources.
type ResourceQuery struct {
	Type       string
	Prefix     string
	MaxResults int
	NextCursor string
}
