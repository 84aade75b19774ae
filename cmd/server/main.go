//	@title			Upload Relay API
//	@version		1.0
//	@description	Accepts image uploads and relays them to the configured media store.
//
//	@host		localhost:3000
//	@BasePath	/

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	_ "uploadrelay/docs"
	"uploadrelay/internal/config"
	"uploadrelay/internal/handler"
	"uploadrelay/internal/port"
	"uploadrelay/internal/router"
	"uploadrelay/internal/service"
	cloudinarystore "uploadrelay/internal/storage/cloudinary"
	s3storage "uploadrelay/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := newMediaStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}

	// Initialize services
	mediaSvc := service.NewMediaService(store, &cfg.Media, &cfg.Upload)

	// Initialize handlers
	mediaH := handler.NewMediaHandler(mediaSvc)
	healthH := handler.NewHealthHandler(mediaSvc)

	r := router.Setup(cfg, mediaH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (provider=%s, folder=%s)", cfg.Server.Port, cfg.Media.Provider, cfg.Media.Folder)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("server stopped")
	return nil
}

func newMediaStore(cfg *config.Config) (port.MediaStore, error) {
	switch cfg.Media.Provider {
	case config.ProviderS3:
		return s3storage.NewS3Client(&cfg.S3)
	case config.ProviderCloudinary:
		return cloudinarystore.NewCloudinaryClient(&cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.Media.Provider)
	}
}
