package cloudinary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uploadrelay/internal/config"
	"uploadrelay/internal/domain"
	"uploadrelay/internal/port"
)

const uploadBody = `{
	"asset_id": "3515c6000a548515f1134043f9785c2f",
	"public_id": "uploads/cat",
	"version": 1719304891,
	"width": 640,
	"height": 480,
	"format": "png",
	"resource_type": "image",
	"type": "upload",
	"bytes": 5120,
	"folder": "uploads",
	"api_key": "123456789012345",
	"tags": [],
	"url": "http://res.cloudinary.com/demo/image/upload/v1719304891/uploads/cat.png",
	"secure_url": "https://res.cloudinary.com/demo/image/upload/v1719304891/uploads/cat.png",
	"original_filename": "cat"
}`

const listingBody = `{
	"resources": [
		{
			"asset_id": "3515c6000a548515f1134043f9785c2f",
			"public_id": "uploads/cat",
			"folder": "uploads",
			"format": "png",
			"bytes": 5120,
			"tags": ["pets"],
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1719304891/uploads/cat.png"
		},
		{
			"asset_id": "8b1f3e0c1a2d4e5f6a7b8c9d0e1f2a3b",
			"public_id": "uploads/dog",
			"folder": "uploads",
			"format": "jpg",
			"bytes": 2048,
			"tags": [],
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1719304892/uploads/dog.jpg"
		}
	],
	"next_cursor": "8edbc61040178db60b0973ca9494bf3a"
}`

// newTestClient points a client at a local server speaking the Cloudinary API.
func newTestClient(t *testing.T, handler http.HandlerFunc) *cloudinaryClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewCloudinaryClient(&config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "123456789012345",
		APISecret: "secret",
	})
	require.NoError(t, err)

	c, ok := store.(*cloudinaryClient)
	require.True(t, ok)
	c.cld.Upload.Config.API.UploadPrefix = srv.URL
	c.cld.Admin.Config.API.UploadPrefix = srv.URL
	return c
}

func stagedImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nfake"), 0o600))
	return path
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestCloudinaryClient_Upload_RelaysVendorBody(t *testing.T) {
	var gotMethod, gotPath, gotFolder string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			gotFolder = r.FormValue("folder")
		}
		writeJSON(w, http.StatusOK, uploadBody)
	})

	res, err := c.Upload(context.Background(), port.UploadInput{
		FilePath: stagedImage(t),
		Filename: "cat.png",
		Folder:   "uploads",
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.True(t, strings.HasSuffix(gotPath, "/demo/auto/upload"), gotPath)
	assert.Equal(t, "uploads", gotFolder)
	assert.JSONEq(t, uploadBody, string(res))
}

func TestCloudinaryClient_Upload_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":{"message":"Invalid image file"}}`)
	})

	res, err := c.Upload(context.Background(), port.UploadInput{
		FilePath: stagedImage(t),
		Filename: "cat.png",
		Folder:   "uploads",
	})

	require.Error(t, err)
	assert.Equal(t, "Invalid image file", err.Error())
	assert.Nil(t, res)
}

func TestCloudinaryClient_ListResources_RelaysVendorItems(t *testing.T) {
	var gotPath, gotPrefix, gotMax, gotCursor string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPrefix = r.URL.Query().Get("prefix")
		gotMax = r.URL.Query().Get("max_results")
		gotCursor = r.URL.Query().Get("next_cursor")
		writeJSON(w, http.StatusOK, listingBody)
	})

	list, err := c.ListResources(context.Background(), domain.ResourceQuery{
		Type:       domain.ResourceTypeUpload,
		Prefix:     "uploads",
		MaxResults: 2,
		NextCursor: "abc",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gotPath, "/demo/resources/image/upload"), gotPath)
	assert.Equal(t, "uploads", gotPrefix)
	assert.Equal(t, "2", gotMax)
	assert.Equal(t, "abc", gotCursor)

	var vendor struct {
		Resources []json.RawMessage `json:"resources"`
	}
	require.NoError(t, json.Unmarshal([]byte(listingBody), &vendor))
	require.Len(t, list.Resources, len(vendor.Resources))
	for i := range vendor.Resources {
		assert.JSONEq(t, string(vendor.Resources[i]), string(list.Resources[i]))
	}
	assert.Equal(t, "8edbc61040178db60b0973ca9494bf3a", list.NextCursor)
}

func TestCloudinaryClient_ListResources_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"resources":[]}`)
	})

	list, err := c.ListResources(context.Background(), domain.ResourceQuery{
		Type:   domain.ResourceTypeUpload,
		Prefix: "uploads",
	})

	require.NoError(t, err)
	assert.NotNil(t, list.Resources)
	assert.Empty(t, list.Resources)
	assert.Empty(t, list.NextCursor)
}

func TestCloudinaryClient_ListResources_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"message":"Invalid api_key 123456789012345"}}`)
	})

	list, err := c.ListResources(context.Background(), domain.ResourceQuery{
		Type:   domain.ResourceTypeUpload,
		Prefix: "uploads",
	})

	require.Error(t, err)
	assert.Equal(t, "Invalid api_key 123456789012345", err.Error())
	assert.Nil(t, list)
}

func TestCloudinaryClient_Ping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/ping"), r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status":"ok"}`)
	})

	assert.NoError(t, c.Ping(context.Background()))
}

func TestApiError(t *testing.T) {
	assert.NoError(t, apiError(api.ErrorResp{}))

	err := apiError(api.ErrorResp{Message: "Invalid image file"})
	require.Error(t, err)
	assert.Equal(t, "Invalid image file", err.Error())
}

func TestResourceItems_RejectsUnexpectedShapes(t *testing.T) {
	_, err := resourceItems([]any{"a"})
	assert.Error(t, err)

	_, err = resourceItems(map[string]any{"resources": "nope"})
	assert.Error(t, err)

	items, err := resourceItems(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNewCloudinaryClient(t *testing.T) {
	store, err := NewCloudinaryClient(&config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
	})

	require.NoError(t, err)
	assert.NotNil(t, store)
}
