package objectstore

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/subject"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store stores subject files in an S3 compatible bucket (AWS, MinIO, ...).
type S3Store struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

var _ subject.ObjectStore = (*S3Store)(nil)

// NewS3Store builds the S3 client from the storage configuration.
// Static credentials are used when set, the default AWS chain otherwise.
func NewS3Store(ctx context.Context, conf core.StorageConfig) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(conf.Region)}
	if conf.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading aws config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, conf), nil
}

func newS3Store(client putObjectAPI, conf core.StorageConfig) *S3Store {
	baseURL := conf.PublicBaseURL
	if baseURL == "" {
		baseURL = "https://" + conf.Bucket + ".s3." + conf.Region + ".amazonaws.com"
	}
	return &S3Store{
		client:  client,
		bucket:  conf.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (st *S3Store) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	_, err := st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(st.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", errors.Wrapf(err, "putting object %s", key)
	}
	return st.Link(key), nil
}

// Link returns the public URL of `key`.
func (st *S3Store) Link(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return st.baseURL + "/" + strings.Join(parts, "/")
}
