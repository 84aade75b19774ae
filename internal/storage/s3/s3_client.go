package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"uploadrelay/internal/config"
	"uploadrelay/internal/domain"
	"uploadrelay/internal/port"
)

// resource is the metadata relayed for an object in the bucket. Field names
// follow the ones clients already get from the Cloudinary backend.
type resource struct {
	PublicID  string    `json:"public_id"`
	Folder    string    `json:"folder,omitempty"`
	Format    string    `json:"format,omitempty"`
	Bytes     int64     `json:"bytes"`
	ETag      string    `json:"etag,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type s3Client struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	publicBase string
}

// NewS3Client creates a new S3-backed MediaStore implementation.
func NewS3Client(cfg *config.S3Config) (port.MediaStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &s3Client{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (c *s3Client) Upload(ctx context.Context, input port.UploadInput) (domain.UploadResult, error) {
	f, err := os.Open(input.FilePath)
	if err != nil {
		return nil, fmt.Errorf("opening staged file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat staged file: %w", err)
	}

	contentType, err := sniffContentType(f)
	if err != nil {
		return nil, err
	}

	key := objectKey(input.Folder, input.Filename, uuid.New())
	result, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	res := c.resourceFor(key, info.Size(), aws.ToString(result.ETag), time.Now().UTC())
	if c.publicBase == "" {
		res.URL = result.Location
	}
	return json.Marshal(res)
}

func (c *s3Client) ListResources(ctx context.Context, query domain.ResourceQuery) (*domain.ResourceList, error) {
	if query.Type != domain.ResourceTypeUpload {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedResourceType, query.Type)
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(query.Prefix),
	}
	if query.MaxResults > 0 {
		input.MaxKeys = aws.Int32(int32(min(query.MaxResults, 1000)))
	}
	if query.NextCursor != "" {
		input.ContinuationToken = aws.String(query.NextCursor)
	}

	out, err := c.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("s3 list: %w", err)
	}

	list := &domain.ResourceList{
		Resources:  make([]domain.Resource, 0, len(out.Contents)),
		NextCursor: aws.ToString(out.NextContinuationToken),
	}
	for _, obj := range out.Contents {
		raw, err := json.Marshal(c.resourceFromObject(obj))
		if err != nil {
			return nil, fmt.Errorf("encoding s3 object: %w", err)
		}
		list.Resources = append(list.Resources, raw)
	}
	return list, nil
}

func (c *s3Client) Ping(ctx context.Context) error {
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 head bucket: %w", err)
	}
	return nil
}

func (c *s3Client) resourceFromObject(obj types.Object) resource {
	return c.resourceFor(
		aws.ToString(obj.Key),
		aws.ToInt64(obj.Size),
		aws.ToString(obj.ETag),
		aws.ToTime(obj.LastModified),
	)
}

func (c *s3Client) resourceFor(key string, size int64, etag string, created time.Time) resource {
	res := resource{
		PublicID:  strings.TrimSuffix(key, path.Ext(key)),
		Folder:    path.Dir(key),
		Format:    strings.TrimPrefix(path.Ext(key), "."),
		Bytes:     size,
		ETag:      strings.Trim(etag, `"`),
		CreatedAt: created,
	}
	if res.Folder == "." {
		res.Folder = ""
	}
	if c.publicBase != "" {
		res.URL = c.publicBase + "/" + key
	}
	return res
}

// objectKey places an upload under folder with a fresh ID, keeping the
// original extension.
func objectKey(folder, filename string, id uuid.UUID) string {
	name := id.String() + strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}

// sniffContentType reads the first 512 bytes for magic-byte detection and
// rewinds the file for upload.
func sniffContentType(f io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading file header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking file: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}
