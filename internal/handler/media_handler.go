package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uploadrelay/internal/domain"
	"uploadrelay/internal/service"
)

const uploadField = "image"

// MediaHandler handles the upload relay endpoints.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload handles POST /upload
// @Summary Upload an image
// @Description Stage the uploaded file and relay it to the media store under the uploads folder
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "File to upload"
// @Success 200 {object} APIResponse "File uploaded successfully!"
// @Failure 400 {object} APIResponse "No file uploaded"
// @Failure 500 {object} APIResponse "Media store rejected the upload"
// @Router /upload [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		HandleError(c, domain.ErrNoFile)
		return
	}

	result, err := h.mediaService.Upload(c.Request.Context(), service.UploadInput{Header: header})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "File uploaded successfully!",
		Result:  result,
	})
}

// ListResources handles GET /resources
// @Summary List uploaded resources
// @Description List resources of type upload under the uploads folder, as reported by the media store
// @Tags media
// @Produce json
// @Param max_results query int false "Page size forwarded to the media store"
// @Param next_cursor query string false "Cursor from a previous response"
// @Success 200 {object} ResourcesResponse "Resources"
// @Failure 400 {object} APIResponse "Invalid paging parameters"
// @Failure 500 {object} APIResponse "Media store failure"
// @Router /resources [get]
func (h *MediaHandler) ListResources(c *gin.Context) {
	var input service.ListInput
	if raw := c.Query("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			HandleError(c, domain.ErrInvalidListParams)
			return
		}
		input.MaxResults = n
	}
	input.NextCursor = c.Query("next_cursor")

	list, err := h.mediaService.ListResources(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResourcesResponse{
		Success:    true,
		Resources:  list.Resources,
		NextCursor: list.NextCursor,
	})
}
