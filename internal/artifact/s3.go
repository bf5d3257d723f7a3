package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"sitecheck/internal/inspect"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Store implements the ArtifactStore interface against an S3-compatible
// backend (AWS S3 or MinIO). Single bucket; references map to object keys
// under an optional prefix.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// S3Config holds construction parameters for the S3 store.
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	Endpoint        string // optional; enables custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string // optional
	SessionToken    string // optional
	PathStyle       bool
}

// NewS3Store creates an S3 artifact store from S3Config.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Write uploads the bytes under a freshly generated reference. The
// uploader handles multipart uploads for large artifacts.
func (s *S3Store) Write(category inspect.Category, name string, r io.Reader) (string, error) {
	ref := string(category) + "/" + uuid.New().String() + "_" + name
	key := s.key(ref)

	_, err := s.uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("uploading artifact: %w", err)
	}
	return ref, nil
}

// Open returns the artifact contents for reading.
func (s *S3Store) Open(ref string) (io.ReadCloser, error) {
	key := s.key(ref)
	out, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%s: %w", ref, inspect.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("getting artifact: %w", err)
	}
	return out.Body, nil
}

// Exists reports whether the reference resolves to a stored object.
func (s *S3Store) Exists(ref string) (bool, error) {
	_, err := s.head(ref)
	if err != nil {
		if errors.Is(err, inspect.ErrArtifactNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Size returns the artifact size in bytes.
func (s *S3Store) Size(ref string) (int64, error) {
	out, err := s.head(ref)
	if err != nil {
		return 0, err
	}
	if out.ContentLength == nil {
		return 0, nil
	}
	return *out.ContentLength, nil
}

// Delete removes the artifact. S3 DeleteObject succeeds for absent keys,
// which matches the idempotent delete contract.
func (s *S3Store) Delete(ref string) error {
	key := s.key(ref)
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("deleting artifact: %w", err)
	}
	return nil
}

func (s *S3Store) head(ref string) (*s3.HeadObjectOutput, error) {
	key := s.key(ref)
	out, err := s.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ref, inspect.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("checking artifact: %w", err)
	}
	return out, nil
}

func (s *S3Store) key(ref string) string {
	if s.prefix == "" {
		return ref
	}
	return s.prefix + "/" + ref
}

// Compile-time check that S3Store implements inspect.ArtifactStore.
var _ inspect.ArtifactStore = (*S3Store)(nil)
