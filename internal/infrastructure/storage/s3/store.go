package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/shopstream/storefront/internal/domain"
)

// Config holds what the store needs from the environment. Endpoint is set
// for MinIO/R2; empty means real AWS.
type Config struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UsePathStyle bool
	CDNBaseURL   string
}

// Store keeps product images in an S3-compatible bucket and serves them
// through a public base URL.
type Store struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	}
	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
			}, nil
		})
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Store{
		client:     client,
		bucket:     cfg.Bucket,
		cdnBaseURL: strings.TrimRight(cfg.CDNBaseURL, "/"),
	}, nil
}

// Upload decodes a base64 data URL ("data:image/png;base64,....") and
// writes it under products/. Returns the public URL to persist.
func (s *Store) Upload(ctx context.Context, dataURL string) (string, error) {
	contentType, raw, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := "products/" + uuid.NewString() + extensionFor(contentType)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(raw),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(raw))),
	})
	if err != nil {
		return "", domain.ErrStorageUnavailable(err)
	}
	return s.cdnBaseURL + "/" + key, nil
}

// Delete removes the object behind a public URL. URLs that don't belong to
// this store's base are ignored.
func (s *Store) Delete(ctx context.Context, imageURL string) error {
	key, ok := strings.CutPrefix(imageURL, s.cdnBaseURL+"/")
	if !ok || key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	return nil
}

func decodeDataURL(dataURL string) (contentType string, raw []byte, err error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, domain.ErrInvalidField("image", "expected a base64 data URL")
	}
	contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, domain.ErrInvalidField("image", "not an image content type")
	}
	raw, derr := base64.StdEncoding.DecodeString(payload)
	if derr != nil {
		return "", nil, domain.ErrInvalidField("image", "invalid base64 payload")
	}
	return contentType, raw, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
