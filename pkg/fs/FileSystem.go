// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package fs

import (
	"context"
	"time"
)

// FileSystem is the storage contract consumed by the handle layer.
// ListDir returns child directories and child files as separate slices.
type FileSystem interface {
	Dir(name string) string
	Exists(ctx context.Context, name string) (bool, error)
	IsDir(ctx context.Context, name string) (bool, error)
	IsNotExist(err error) bool
	Join(name ...string) string
	ListDir(ctx context.Context, name string) ([]DirectoryEntryInterface, []DirectoryEntryInterface, error)
	ModifiedTime(ctx context.Context, name string) (time.Time, error)
	Remove(ctx context.Context, name string) error
	RemoveTree(ctx context.Context, name string) error
	Size(ctx context.Context, name string) (int64, error)
	Stat(ctx context.Context, name string) (FileInfo, error)
	URL(ctx context.Context, name string) (string, error)
}
