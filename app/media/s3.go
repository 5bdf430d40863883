package media

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// S3Options selects the bucket. Endpoint is only needed for S3-compatible
// services such as MinIO.
type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string
	Prefix   string
}

// S3Store keeps files as objects in one bucket. Credentials come from the
// usual AWS environment variables or shared config.
type S3Store struct {
	client s3iface.S3API
	bucket string
	prefix string
}

func NewS3Store(opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is not configured")
	}
	cfg := aws.NewConfig().WithRegion(opts.Region)
	if opts.Endpoint != "" {
		cfg = cfg.WithEndpoint(opts.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}
	return NewS3StoreWithClient(s3.New(sess), opts.Bucket, opts.Prefix), nil
}

func NewS3StoreWithClient(client s3iface.S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(name string) (*string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	return aws.String(s.prefix + cleaned), nil
}

// Save buffers r so the SDK can sign and retry the body.
func (s *S3Store) Save(ctx context.Context, name string, r io.Reader, contentType string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read upload")
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    key,
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err = s.client.PutObjectWithContext(ctx, input)
	return errors.Wrapf(err, "put s3 object %s", *key)
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    key,
	})
	if isNoSuchKey(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get s3 object %s", *key)
	}
	return resp.Body, nil
}

// Delete is idempotent on S3, a missing object is not reported.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    key,
	})
	return errors.Wrapf(err, "delete s3 object %s", *key)
}

func isNoSuchKey(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound"
	}
	return false
}
