package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/elevate/core"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Store_Put(t *testing.T) {
	client := new(fakeS3)
	st := newS3Store(client, core.StorageConfig{Bucket: "elevate", PublicBaseURL: "http://localhost:9000/elevate/"})

	link, err := st.Put(context.Background(), "elevate/9th/abc-my notes.pdf", "application/pdf", 5, strings.NewReader("%PDF-"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/elevate/elevate/9th/abc-my%20notes.pdf", link)
	assert.Equal(t, "elevate", aws.ToString(client.input.Bucket))
	assert.Equal(t, "elevate/9th/abc-my notes.pdf", aws.ToString(client.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(5), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "%PDF-", client.body)
}

func TestS3Store_PutError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	st := newS3Store(client, core.StorageConfig{Bucket: "elevate", Region: "us-east-1"})

	_, err := st.Put(context.Background(), "elevate/9th/x", "text/plain", 1, strings.NewReader("x"))
	assert.EqualError(t, err, "putting object elevate/9th/x: access denied")
}

func TestS3Store_DefaultLink(t *testing.T) {
	st := newS3Store(new(fakeS3), core.StorageConfig{Bucket: "elevate", Region: "eu-west-1"})
	assert.Equal(t, "https://elevate.s3.eu-west-1.amazonaws.com/elevate/10th/id-notes.txt", st.Link("elevate/10th/id-notes.txt"))
}
