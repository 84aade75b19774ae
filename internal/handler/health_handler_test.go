package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"uploadrelay/internal/handler"
	"uploadrelay/mocks"
)

func TestHealthHandler_Root(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockMediaService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)

	h.Root(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to my server", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockMediaService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	mockSvc := new(mocks.MockMediaService)
	h := handler.NewHealthHandler(mockSvc)

	mockSvc.On("Ping", mock.Anything).Return(nil).Once()
	mockSvc.On("Ping", mock.Anything).Return(errors.New("unreachable")).Once()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
