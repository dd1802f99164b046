package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"fbingest/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of the S3 client used by the fetcher. Tests substitute
// a fake implementation.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Fetcher reads the export document from an S3 bucket.
type S3Fetcher struct {
	client s3API
	bucket string
	folder string
	file   string
}

// NewS3Fetcher builds an S3Fetcher using the ambient AWS credential chain.
func NewS3Fetcher(ctx context.Context, cfg *config.Config) (*S3Fetcher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return NewS3FetcherWithClient(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewS3FetcherWithClient builds an S3Fetcher around an existing client.
func NewS3FetcherWithClient(client s3API, cfg *config.Config) *S3Fetcher {
	return &S3Fetcher{
		client: client,
		bucket: cfg.S3BucketName,
		folder: cfg.S3FolderPath,
		file:   cfg.S3FileName,
	}
}

// Key joins the folder path and file name into the full object key.
func (f *S3Fetcher) Key() string {
	if f.folder != "" {
		return strings.TrimRight(f.folder, "/") + "/" + f.file
	}
	return f.file
}

// Location describes the object for logs and error messages.
func (f *S3Fetcher) Location() string {
	return fmt.Sprintf("s3://%s/%s", f.bucket, f.Key())
}

// Exists reports whether the configured object is present in the bucket.
func (f *S3Fetcher) Exists(ctx context.Context) (bool, error) {
	_, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.Key()),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s: %w", f.Location(), err)
	}
	return true, nil
}

// Fetch returns the object's raw bytes.
func (f *S3Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.Key()),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Location())
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", f.Location(), err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Location(), err)
	}
	return body, nil
}
