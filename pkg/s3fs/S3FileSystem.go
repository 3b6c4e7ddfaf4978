// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"context"
	"errors"
	"fmt"
	"path"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/navwar/gobrowse/pkg/fs"
)

// DefaultPresignExpiry is how long resolved URLs stay valid when no expiry
// is configured.
const DefaultPresignExpiry = 15 * time.Minute

// maximum number of keys per DeleteObjects request, set by the S3 API
const deleteBatchSize = 1000

// S3FileSystem serves the storage contract from an S3 bucket, optionally
// rooted at a prefix within the bucket.  Names are paths relative to the
// root.  Directories only exist as shared key prefixes.
type S3FileSystem struct {
	defaultRegion string
	bucket        string
	prefix        string
	clients       map[string]*s3.Client
	bucketRegions map[string]string
	maxEntries    int
	maxPages      int
	presignExpiry time.Duration
}

func (s3fs *S3FileSystem) Dir(name string) string {
	return Dir(name)
}

// GetBucketRegion returns the region for the bucket.
// If the bucket is not known, then returns the default region
func (s3fs *S3FileSystem) GetBucketRegion(bucket string) string {
	if bucketRegion, ok := s3fs.bucketRegions[bucket]; ok {
		return bucketRegion
	}
	return s3fs.defaultRegion
}

func (s3fs *S3FileSystem) client() *s3.Client {
	return s3fs.clients[s3fs.GetBucketRegion(s3fs.bucket)]
}

// key returns the object key for the given name
func (s3fs *S3FileSystem) key(name string) string {
	if len(s3fs.prefix) == 0 {
		return strings.TrimPrefix(name, "/")
	}
	return s3fs.Join(s3fs.prefix, name)
}

func (s3fs *S3FileSystem) IsNotExist(err error) bool {
	var responseError *http.ResponseError
	if errors.As(err, &responseError) {
		if responseError.HTTPStatusCode() == 404 {
			return true
		}
	}
	return false
}

func (s3fs *S3FileSystem) Join(name ...string) string {
	return path.Join(name...)
}

func (s3fs *S3FileSystem) HeadObject(ctx context.Context, name string) (*S3FileInfo, error) {
	headObjectOutput, err := s3fs.client().HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(s3fs.key(name)),
	})
	if err != nil {
		return nil, err
	}
	fi := NewS3FileInfo(
		name,
		aws.ToTime(headObjectOutput.LastModified),
		false,
		headObjectOutput.ContentLength,
	)
	return fi, nil
}

func (s3fs *S3FileSystem) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s3fs.HeadObject(ctx, name)
	if err == nil {
		return true, nil
	}
	if !s3fs.IsNotExist(err) {
		return false, fmt.Errorf("error checking existence of %q: %w", name, err)
	}
	// no object at the key, but the name may still be a shared prefix
	return s3fs.IsDir(ctx, name)
}

func (s3fs *S3FileSystem) IsDir(ctx context.Context, name string) (bool, error) {
	if name == "/" || len(name) == 0 {
		return true, nil
	}
	listObjectsOutput, err := s3fs.client().ListObjects(ctx, &s3.ListObjectsInput{
		Bucket:  aws.String(s3fs.bucket),
		Prefix:  aws.String(s3fs.key(name) + "/"),
		MaxKeys: 1,
	})
	if err != nil {
		return false, fmt.Errorf("error listing prefix %q: %w", name, err)
	}
	return len(listObjectsOutput.Contents) > 0, nil
}

func (s3fs *S3FileSystem) ListDir(ctx context.Context, name string) ([]fs.DirectoryEntryInterface, []fs.DirectoryEntryInterface, error) {
	prefix := s3fs.key(name)
	if len(prefix) > 0 && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	directories := []fs.DirectoryEntryInterface{}
	files := []fs.DirectoryEntryInterface{}
	var marker *string
	for i := 0; s3fs.maxPages == -1 || i < s3fs.maxPages; i++ {
		listObjectsInput := &s3.ListObjectsInput{
			Bucket:    aws.String(s3fs.bucket),
			Delimiter: aws.String("/"),
			Prefix:    aws.String(prefix),
		}
		if s3fs.maxEntries != -1 && s3fs.maxEntries < 1000 {
			listObjectsInput.MaxKeys = int32(s3fs.maxEntries)
		}
		if marker != nil {
			listObjectsInput.Marker = marker
		}
		listObjectsOutput, err := s3fs.client().ListObjects(ctx, listObjectsInput)
		if err != nil {
			return nil, nil, err
		}
		for _, commonPrefix := range listObjectsOutput.CommonPrefixes {
			directoryName := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(commonPrefix.Prefix), prefix), "/")
			if directoryName == "" {
				continue
			}
			directories = append(directories, &S3DirectoryEntry{
				name:    directoryName,
				dir:     true,
				modTime: time.Time{},
				size:    0,
			})
			if s3fs.maxEntries != -1 && len(directories)+len(files) == s3fs.maxEntries {
				return directories, files, nil
			}
		}
		for _, object := range listObjectsOutput.Contents {
			fileName := strings.TrimPrefix(aws.ToString(object.Key), prefix)
			// a blank name is the directory marker for the prefix itself
			if fileName == "" || strings.HasSuffix(fileName, "/") {
				continue
			}
			files = append(files, &S3DirectoryEntry{
				name:    fileName,
				dir:     false,
				modTime: aws.ToTime(object.LastModified),
				size:    object.Size,
			})
			if s3fs.maxEntries != -1 && len(directories)+len(files) == s3fs.maxEntries {
				return directories, files, nil
			}
		}
		if !listObjectsOutput.IsTruncated {
			break
		}
		marker = listObjectsOutput.NextMarker
	}
	return directories, files, nil
}

func (s3fs *S3FileSystem) ModifiedTime(ctx context.Context, name string) (time.Time, error) {
	fi, err := s3fs.HeadObject(ctx, name)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

func (s3fs *S3FileSystem) Remove(ctx context.Context, name string) error {
	_, err := s3fs.client().DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(s3fs.key(name)),
	})
	if err != nil {
		return fmt.Errorf("error deleting object %q: %w", name, err)
	}
	return nil
}

func (s3fs *S3FileSystem) RemoveTree(ctx context.Context, name string) error {
	prefix := s3fs.key(name)
	if len(prefix) > 0 && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	// collect every key under the prefix, including directory markers
	keys := []string{}
	var marker *string
	for {
		listObjectsInput := &s3.ListObjectsInput{
			Bucket: aws.String(s3fs.bucket),
			Prefix: aws.String(prefix),
		}
		if marker != nil {
			listObjectsInput.Marker = marker
		}
		listObjectsOutput, err := s3fs.client().ListObjects(ctx, listObjectsInput)
		if err != nil {
			return fmt.Errorf("error listing objects under %q: %w", name, err)
		}
		for _, object := range listObjectsOutput.Contents {
			keys = append(keys, aws.ToString(object.Key))
		}
		if !listObjectsOutput.IsTruncated {
			break
		}
		marker = listObjectsOutput.NextMarker
	}

	var wg errgroup.Group
	wg.SetLimit(runtime.NumCPU())
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]
		wg.Go(func() error {
			identifiers := make([]types.ObjectIdentifier, 0, len(batch))
			for _, key := range batch {
				identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
			}
			_, err := s3fs.client().DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(s3fs.bucket),
				Delete: &types.Delete{
					Objects: identifiers,
					Quiet:   true,
				},
			})
			if err != nil {
				return fmt.Errorf("error deleting batch of %d objects under %q: %w", len(batch), name, err)
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return fmt.Errorf("error removing tree %q: %w", name, err)
	}
	return nil
}

func (s3fs *S3FileSystem) Root() string {
	return fmt.Sprintf("s3://%s", s3fs.Join(s3fs.bucket, s3fs.prefix))
}

func (s3fs *S3FileSystem) Size(ctx context.Context, name string) (int64, error) {
	fi, err := s3fs.HeadObject(ctx, name)
	if err != nil {
		return int64(0), err
	}
	return fi.Size(), nil
}

func (s3fs *S3FileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	isDir, err := s3fs.IsDir(ctx, name)
	if err != nil {
		return nil, err
	}
	if isDir {
		return NewS3FileInfo(name, time.Time{}, true, int64(0)), nil
	}
	return s3fs.HeadObject(ctx, name)
}

func (s3fs *S3FileSystem) URL(ctx context.Context, name string) (string, error) {
	presignClient := s3.NewPresignClient(s3fs.client(), func(o *s3.PresignOptions) {
		o.Expires = s3fs.presignExpiry
	})
	presignedRequest, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(s3fs.key(name)),
	})
	if err != nil {
		return "", fmt.Errorf("error presigning URL for %q: %w", name, err)
	}
	return presignedRequest.URL, nil
}

func NewS3FileSystem(
	defaultRegion string,
	bucket string,
	prefix string,
	clients map[string]*s3.Client,
	bucketRegions map[string]string,
	maxEntries int,
	maxPages int,
	presignExpiry time.Duration) *S3FileSystem {

	if presignExpiry <= 0 {
		presignExpiry = DefaultPresignExpiry
	}
	return &S3FileSystem{
		defaultRegion: defaultRegion,
		bucket:        bucket,
		prefix:        prefix,
		clients:       clients,
		bucketRegions: bucketRegions,
		maxEntries:    maxEntries,
		maxPages:      maxPages,
		presignExpiry: presignExpiry,
	}
}
