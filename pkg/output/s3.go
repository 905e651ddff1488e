package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultUploadTimeout bounds a single Publish call
const DefaultUploadTimeout = 10 * time.Second

// S3Config holds the bucket and credentials frames are published to.
// Endpoint may point at any S3-compatible store; credentials fall back to
// the SDK's default chain when AccessKey is empty.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	ACL       string        // e.g. "public-read"; empty leaves the bucket default
	Timeout   time.Duration // 0 = DefaultUploadTimeout
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// S3Publisher uploads encoded frames to a bucket
type S3Publisher struct {
	client  s3iface.S3API
	bucket  string
	acl     string
	timeout time.Duration
}

// NewS3Publisher creates a publisher backed by a new AWS session
func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, errors.New("s3: bucket is required")
	}

	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("s3: create session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), cfg), nil
}

// NewS3PublisherWithClient wraps an existing S3 client
func NewS3PublisherWithClient(client s3iface.S3API, cfg S3Config) *S3Publisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	return &S3Publisher{
		client:  client,
		bucket:  cfg.Bucket,
		acl:     cfg.ACL,
		timeout: timeout,
	}
}

// Publish uploads data under key
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if p.acl != "" {
		input.ACL = aws.String(p.acl)
	}

	start := time.Now()
	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	core.Logger().Info("frame uploaded",
		"bucket", p.bucket,
		"key", key,
		"bytes", len(data),
		"duration", time.Since(start))
	return nil
}
