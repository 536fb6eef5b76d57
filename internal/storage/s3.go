package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/templui/vidshare/internal/config"
)

// Storage is the object store that holds uploaded media.
type Storage interface {
	// Save stores an object at key
	Save(ctx context.Context, key, contentType string, body io.Reader) error

	// Delete removes the object at key
	Delete(ctx context.Context, key string) error

	// PresignPut returns a URL the client can PUT the object to directly
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)

	// URL returns the stable public URL of key
	URL(key string) string

	// KeyFromURL reverses URL; ok is false for URLs outside this store
	KeyFromURL(url string) (key string, ok bool)
}

// S3Storage implements Storage for S3-compatible storage
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2, etc.
type S3Storage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	publicURL     string
}

// S3Config holds configuration for S3 storage
type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	Endpoint     string // Optional: for S3-compatible services
	PublicURL    string // Optional: CDN base URL in front of the bucket
	CreateBucket bool
}

// New creates an S3-compatible storage instance from app config
func New(ctx context.Context, c *cfg.Config) (*S3Storage, error) {
	slog.Info("initializing S3 storage",
		"bucket", c.S3Bucket,
		"region", c.S3Region,
		"endpoint", c.S3Endpoint,
	)
	return NewS3Storage(ctx, S3Config{
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		Endpoint:     c.S3Endpoint,
		PublicURL:    c.S3PublicURL,
		CreateBucket: c.S3CreateBucket,
	})
}

func NewS3Storage(ctx context.Context, sc S3Config) (*S3Storage, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(sc.Region))

	if sc.AccessKey != "" && sc.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(sc.AccessKey, sc.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if sc.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(sc.Endpoint)
			o.UsePathStyle = true // Required for MinIO and some S3-compatible services
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	storage := &S3Storage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        sc.Bucket,
		publicURL:     publicBaseURL(sc),
	}

	if sc.CreateBucket {
		if err := storage.ensureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
		}
	}

	return storage, nil
}

func publicBaseURL(sc S3Config) string {
	switch {
	case sc.PublicURL != "":
		return strings.TrimSuffix(sc.PublicURL, "/")
	case sc.Endpoint != "":
		return strings.TrimSuffix(sc.Endpoint, "/") + "/" + sc.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", sc.Bucket, sc.Region)
	}
}

// ensureBucket checks if bucket exists, creates it if not
func (s *S3Storage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q does not exist and could not be created: %w", s.bucket, err)
	}

	slog.Info("created S3 bucket", "bucket", s.bucket)
	return nil
}

// Ping checks that the bucket is reachable.
func (s *S3Storage) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	return err
}

func (s *S3Storage) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

func (s *S3Storage) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	presignedReq, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return presignedReq.URL, nil
}

func (s *S3Storage) URL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

func (s *S3Storage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.publicURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
