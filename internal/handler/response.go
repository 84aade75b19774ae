package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"uploadrelay/internal/domain"
)

const msgNoFile = "No file uploaded"

// APIResponse is the envelope for upload and error responses. Result carries
// the media store's upload metadata verbatim.
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ResourcesResponse is the envelope for resource listings.
type ResourcesResponse struct {
	Success    bool              `json:"success"`
	Resources  []json.RawMessage `json:"resources"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, APIResponse{Success: false, Error: msg})
}

// MapDomainError translates an error to an HTTP status code. Anything not
// recognised is a media store or staging failure.
func MapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidListParams):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError maps an error and sends the appropriate error response. The
// error message is surfaced to the caller unchanged.
func HandleError(c *gin.Context, err error) {
	status := MapDomainError(err)
	if errors.Is(err, domain.ErrNoFile) {
		c.JSON(status, APIResponse{Success: false, Message: msgNoFile})
		return
	}
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] request failed: %v", requestID, err)
	}
	RespondError(c, status, err.Error())
}
