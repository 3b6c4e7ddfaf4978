// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"errors"
	"net/http"
	"testing"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/stretchr/testify/assert"
)

func newTestS3FileSystem(bucket string, prefix string) *S3FileSystem {
	return NewS3FileSystem(
		"us-west-2",
		bucket,
		prefix,
		map[string]*s3.Client{},
		map[string]string{"known-bucket": "us-east-2"},
		-1,
		-1,
		time.Minute,
	)
}

func TestS3FileSystemRoot(t *testing.T) {
	assert.Equal(t, "s3://a-bucket", newTestS3FileSystem("a-bucket", "").Root())
	assert.Equal(t, "s3://a-bucket/media", newTestS3FileSystem("a-bucket", "media").Root())
}

func TestS3FileSystemJoin(t *testing.T) {
	s3fs := newTestS3FileSystem("a-bucket", "")
	assert.Equal(t, "img/a.jpg", s3fs.Join("img", "a.jpg"))
	assert.Equal(t, "/img/a.jpg", s3fs.Join("/img", "a.jpg"))
}

func TestS3FileSystemKey(t *testing.T) {
	s3fs := newTestS3FileSystem("a-bucket", "")
	assert.Equal(t, "img/a.jpg", s3fs.key("/img/a.jpg"))

	s3fs = newTestS3FileSystem("a-bucket", "media")
	assert.Equal(t, "media/img/a.jpg", s3fs.key("/img/a.jpg"))
}

func TestS3FileSystemGetBucketRegion(t *testing.T) {
	s3fs := newTestS3FileSystem("a-bucket", "")
	assert.Equal(t, "us-east-2", s3fs.GetBucketRegion("known-bucket"))
	assert.Equal(t, "us-west-2", s3fs.GetBucketRegion("unknown-bucket"))
}

func TestS3FileSystemIsNotExist(t *testing.T) {
	s3fs := newTestS3FileSystem("a-bucket", "")

	notFound := &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{
				Response: &http.Response{StatusCode: 404},
			},
			Err: errors.New("NotFound"),
		},
	}
	assert.True(t, s3fs.IsNotExist(notFound))

	forbidden := &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{
				Response: &http.Response{StatusCode: 403},
			},
			Err: errors.New("Forbidden"),
		},
	}
	assert.False(t, s3fs.IsNotExist(forbidden))
	assert.False(t, s3fs.IsNotExist(errors.New("other")))
}

func TestS3FileSystemDir(t *testing.T) {
	s3fs := newTestS3FileSystem("a-bucket", "")
	assert.Equal(t, "img", s3fs.Dir("img/a.jpg"))
	assert.Equal(t, ".", s3fs.Dir("a.jpg"))
}
