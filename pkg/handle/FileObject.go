// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package handle

import (
	"context"
	"time"

	"github.com/navwar/gobrowse/pkg/filetype"
	"github.com/navwar/gobrowse/pkg/fs"
)

// NewFileObjectInput carries the path, backend, and any metadata already
// known by the caller, e.g., from a prior bulk listing.  Pre-seeding a value
// bypasses the corresponding backend query for the handle's lifetime.
type NewFileObjectInput struct {
	Path       string
	FileSystem fs.FileSystem
	Directory  string
	Classifier func(name string) string
	// pre-known metadata
	Exists       *bool
	Size         *int64
	LastModified *time.Time
	URL          *string
	IsDir        *bool
}

// FileObject is a standalone handle for a file or directory on the storage
// backend, usable independently of any record or field.
type FileObject struct {
	Attributes
	urlStored *string
}

func NewFileObject(input *NewFileObjectInput) *FileObject {
	fo := &FileObject{
		Attributes: newAttributes(input.Path, input.FileSystem, input.Directory, input.Classifier),
	}
	if input.IsDir != nil {
		if *input.IsDir {
			folder := filetype.Folder
			isFolder := true
			fo.fileTypeStored = &folder
			fo.isFolderStored = &isFolder
		} else {
			isFolder := false
			fo.isFolderStored = &isFolder
		}
	}
	fo.fileSizeStored = input.Size
	fo.existsStored = input.Exists
	if input.LastModified != nil {
		date := input.LastModified.Unix()
		fo.dateStored = &date
	}
	fo.urlStored = input.URL
	return fo
}

// Name returns the stored path.
func (fo *FileObject) Name() string {
	return fo.path
}

// URL returns the access URL for the handle, resolved through the backend
// on first access unless pre-seeded.
func (fo *FileObject) URL(ctx context.Context) (string, error) {
	if fo.urlStored != nil {
		return *fo.urlStored, nil
	}
	url, err := fo.fileSystem.URL(ctx, fo.path)
	if err != nil {
		return "", err
	}
	fo.urlStored = &url
	return url, nil
}

func (fo *FileObject) GoString() string {
	return repr("FileObject", fo.path)
}
