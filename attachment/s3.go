// Package attachment issues time-limited pre-signed upload URLs for todo
// attachments stored in S3.
package attachment

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Signer signs putObject URLs against a single bucket with a fixed expiry.
type S3Signer struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

// NewS3Signer loads the default AWS config and builds a signer for the bucket.
func NewS3Signer(ctx context.Context, bucket string, expiry time.Duration) (*S3Signer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Signer{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		expiry:  expiry,
	}, nil
}

// SignedUploadURL returns a pre-signed putObject URL for the key, valid for
// the configured expiry.
func (s *S3Signer) SignedUploadURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}
	return req.URL, nil
}

// ObjectURL returns the public URL the object will have once uploaded.
func (s *S3Signer) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
