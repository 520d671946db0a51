package filestore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps documents in an S3 bucket, one object per document.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

type S3StoreConfig struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // optional, for MinIO and compatible stores
	Prefix   string `yaml:"prefix"`
}

func NewS3Store(ctx context.Context, cfg S3StoreConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOpts := func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg, clientOpts),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (s *S3Store) key(objectID string) string {
	return s.prefix + objectID
}

func (s *S3Store) Upload(ctx context.Context, objectID string, name string, contentType string, content io.Reader) (ObjectInfo, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(objectID)),
		Body:        content,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-name": name,
		},
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("s3 put failed: %w", err)
	}

	return ObjectInfo{
		ObjectID:    objectID,
		Name:        name,
		ContentType: contentType,
	}, nil
}

func (s *S3Store) Download(ctx context.Context, objectID string) (io.ReadCloser, ObjectInfo, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(objectID)),
	})
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("s3 get failed for %s: %w", objectID, err)
	}

	info := ObjectInfo{ObjectID: objectID}
	if result.ContentType != nil {
		info.ContentType = *result.ContentType
	}
	if result.ContentLength != nil {
		info.Size = *result.ContentLength
	}
	if name, ok := result.Metadata["original-name"]; ok {
		info.Name = name
	}

	return result.Body, info, nil
}

func (s *S3Store) Delete(ctx context.Context, objectID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(objectID)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed for %s: %w", objectID, err)
	}
	return nil
}
