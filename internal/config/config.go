package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Media store providers.
const (
	ProviderCloudinary = "cloudinary"
	ProviderS3         = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Media      MediaConfig
	Cloudinary CloudinaryConfig
	S3         S3Config
	Upload     UploadConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings. Zero timeouts disable the limit.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// MediaConfig selects the media store backend and where uploads land in it.
type MediaConfig struct {
	Provider string `mapstructure:"provider"`
	Folder   string `mapstructure:"folder"`
}

// CloudinaryConfig holds Cloudinary account credentials.
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

// S3Config holds settings for the S3-compatible media store.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// UploadConfig holds settings for staging incoming uploads.
type UploadConfig struct {
	TempDir     string `mapstructure:"temp_dir"`
	MaxMemoryMB int64  `mapstructure:"max_memory_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from an optional .env file and environment variables
// with the RELAY_ prefix. Cloudinary credentials also accept the vendor's
// CLOUDINARY_* variable names.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env file: %v", err)
	}

	v := viper.New()
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.read_timeout", "0s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Media defaults
	v.SetDefault("media.provider", ProviderCloudinary)
	v.SetDefault("media.folder", "uploads")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.public_base_url", "")

	// Upload defaults
	v.SetDefault("upload.temp_dir", os.TempDir())
	v.SetDefault("upload.max_memory_mb", 32)

	v.SetDefault("cors.allowed_origins", "*")

	envBindings := map[string][]string{
		"server.port":             {"RELAY_SERVER_PORT"},
		"server.read_timeout":     {"RELAY_SERVER_READ_TIMEOUT"},
		"server.write_timeout":    {"RELAY_SERVER_WRITE_TIMEOUT"},
		"server.shutdown_timeout": {"RELAY_SERVER_SHUTDOWN_TIMEOUT"},
		"server.environment":      {"RELAY_SERVER_ENVIRONMENT"},
		"media.provider":          {"RELAY_MEDIA_PROVIDER"},
		"media.folder":            {"RELAY_MEDIA_FOLDER"},
		"cloudinary.cloud_name":   {"RELAY_CLOUDINARY_CLOUD_NAME", "CLOUDINARY_CLOUD_NAME"},
		"cloudinary.api_key":      {"RELAY_CLOUDINARY_API_KEY", "CLOUDINARY_API_KEY"},
		"cloudinary.api_secret":   {"RELAY_CLOUDINARY_API_SECRET", "CLOUDINARY_API_SECRET"},
		"s3.region":               {"RELAY_S3_REGION"},
		"s3.bucket":               {"RELAY_S3_BUCKET"},
		"s3.endpoint":             {"RELAY_S3_ENDPOINT"},
		"s3.access_key":           {"RELAY_S3_ACCESS_KEY"},
		"s3.secret_key":           {"RELAY_S3_SECRET_KEY"},
		"s3.public_base_url":      {"RELAY_S3_PUBLIC_BASE_URL"},
		"upload.temp_dir":         {"RELAY_UPLOAD_TEMP_DIR"},
		"upload.max_memory_mb":    {"RELAY_UPLOAD_MAX_MEMORY_MB"},
		"cors.allowed_origins":    {"RELAY_CORS_ALLOWED_ORIGINS"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless RELAY_SERVER_PORT is explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RELAY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Media = MediaConfig{
		Provider: strings.ToLower(strings.TrimSpace(v.GetString("media.provider"))),
		Folder:   strings.Trim(v.GetString("media.folder"), "/"),
	}
	cfg.Cloudinary = CloudinaryConfig{
		CloudName: v.GetString("cloudinary.cloud_name"),
		APIKey:    v.GetString("cloudinary.api_key"),
		APISecret: v.GetString("cloudinary.api_secret"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PublicBaseURL: v.GetString("s3.public_base_url"),
	}
	cfg.Upload = UploadConfig{
		TempDir:     v.GetString("upload.temp_dir"),
		MaxMemoryMB: v.GetInt64("upload.max_memory_mb"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected media provider has everything it needs.
func (c *Config) Validate() error {
	if c.Media.Folder == "" {
		return fmt.Errorf("media folder must not be empty")
	}

	switch c.Media.Provider {
	case ProviderCloudinary:
		var missing []string
		if c.Cloudinary.CloudName == "" {
			missing = append(missing, "CLOUDINARY_CLOUD_NAME")
		}
		if c.Cloudinary.APIKey == "" {
			missing = append(missing, "CLOUDINARY_API_KEY")
		}
		if c.Cloudinary.APISecret == "" {
			missing = append(missing, "CLOUDINARY_API_SECRET")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing cloudinary credentials: %s", strings.Join(missing, ", "))
		}
	case ProviderS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("missing s3 bucket: set RELAY_S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown media provider %q", c.Media.Provider)
	}
	return nil
}
