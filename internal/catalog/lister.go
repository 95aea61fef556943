package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ytget/video-library/internal/model"
)

// DefaultPresignExpiry is the lifetime of a signed media URL
const DefaultPresignExpiry = time.Hour

// ErrInvalidFolder is returned for an empty folder name
var ErrInvalidFolder = errors.New("invalid folder name")

// ObjectLister is the part of the S3 API used for listing
type ObjectLister interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Presigner signs GET requests for single objects
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Lister resolves a folder name to the signed media files stored under it
type Lister struct {
	client    ObjectLister
	presigner Presigner
	bucket    string
	expiry    time.Duration
}

// Option configures a Lister
type Option func(*Lister)

// WithPresignExpiry overrides DefaultPresignExpiry
func WithPresignExpiry(d time.Duration) Option {
	return func(l *Lister) {
		if d > 0 {
			l.expiry = d
		}
	}
}

// NewLister creates a lister over explicit S3 clients
func NewLister(client ObjectLister, presigner Presigner, bucket string, opts ...Option) *Lister {
	l := &Lister{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		expiry:    DefaultPresignExpiry,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewS3Lister builds the S3 client from the default credential chain
func NewS3Lister(ctx context.Context, bucket, region string, opts ...Option) (*Lister, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is empty")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return NewLister(client, s3.NewPresignClient(client), bucket, opts...), nil
}

// Bucket returns the bucket name
func (l *Lister) Bucket() string {
	return l.bucket
}

// ListVideos lists every object under folder/, skipping the folder marker,
// with names relative to the folder and a signed URL each.
func (l *Lister) ListVideos(ctx context.Context, folder string) ([]model.VideoFile, error) {
	if folder == "" {
		return nil, ErrInvalidFolder
	}
	prefix := folder + "/"

	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
		Prefix: aws.String(prefix),
	})

	videos := []model.VideoFile{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || key == prefix {
				continue
			}

			url, err := l.presign(ctx, key)
			if err != nil {
				return nil, err
			}

			video := model.VideoFile{
				Name: strings.TrimPrefix(key, prefix),
				Key:  key,
				URL:  url,
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				video.LastModified = *obj.LastModified
			}
			videos = append(videos, video)
		}
	}

	log.Printf("Listed %d objects under %s", len(videos), prefix)
	return videos, nil
}

func (l *Lister) presign(ctx context.Context, key string) (string, error) {
	req, err := l.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(l.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return req.URL, nil
}
