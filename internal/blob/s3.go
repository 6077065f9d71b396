// s3.go implements the attachment store on S3 or an S3-compatible service.
//
// Uploads go through the transfer manager so large audio files are sent as
// multipart uploads without buffering the whole file. A custom endpoint
// switches the client to path-style addressing, which MinIO and most
// S3-compatible services require.

package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the S3 backend.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for S3-compatible services
	PublicURL string // optional, base URL objects are served from (CDN)
	AccessKey string // optional, falls back to the default credential chain
	SecretKey string
}

// S3 stores blobs as objects in a bucket.
type S3 struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

var _ Store = (*S3)(nil)

// NewS3 builds an S3 store from opts using the AWS default config chain.
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	var loaders []func(*config.LoadOptions) error
	if opts.Region != "" {
		loaders = append(loaders, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3FromClient(client, opts.Bucket, opts.PublicURL), nil
}

// NewS3FromClient wraps an existing client.
func NewS3FromClient(client *s3.Client, bucket, publicURL string) *S3 {
	return &S3{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: publicURL,
	}
}

// Put uploads r as bucket/key.
func (s *S3) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	if err := checkKey(key); err != nil {
		return Object{}, err
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}
	out, err := s.uploader.Upload(ctx, in)
	if err != nil {
		return Object{}, fmt.Errorf("upload %s: %w", key, err)
	}

	url := out.Location
	if s.publicURL != "" {
		url = joinURL(s.publicURL, key)
	}
	return Object{Key: key, URL: url}, nil
}

// Delete removes bucket/key. S3 treats deleting a missing key as success.
func (s *S3) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
