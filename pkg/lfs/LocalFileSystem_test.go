// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "img", "b.jpg"), []byte("jpeg"), 0o644))
	return root
}

func TestLocalFileSystemExists(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	exists, err := lfs.Exists(ctx, "/a.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = lfs.Exists(ctx, "/missing.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalFileSystemIsDir(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	isDir, err := lfs.IsDir(ctx, "/img")
	require.NoError(t, err)
	assert.True(t, isDir)

	isDir, err = lfs.IsDir(ctx, "/a.txt")
	require.NoError(t, err)
	assert.False(t, isDir)

	// a missing path is simply not a directory
	isDir, err = lfs.IsDir(ctx, "/missing")
	require.NoError(t, err)
	assert.False(t, isDir)
}

func TestLocalFileSystemListDir(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	directories, files, err := lfs.ListDir(ctx, "/")
	require.NoError(t, err)
	require.Len(t, directories, 1)
	require.Len(t, files, 1)
	assert.Equal(t, "img", directories[0].Name())
	assert.True(t, directories[0].IsDir())
	assert.Equal(t, "a.txt", files[0].Name())
	assert.False(t, files[0].IsDir())
	assert.Equal(t, int64(len("hello")), files[0].Size())
	assert.False(t, files[0].ModTime().IsZero())

	directories, files, err = lfs.ListDir(ctx, "/img")
	require.NoError(t, err)
	assert.Len(t, directories, 0)
	require.Len(t, files, 1)
	assert.Equal(t, "b.jpg", files[0].Name())
}

func TestLocalFileSystemSize(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	size, err := lfs.Size(ctx, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello")), size)
}

func TestLocalFileSystemModifiedTime(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	modTime, err := lfs.ModifiedTime(ctx, "/a.txt")
	require.NoError(t, err)
	assert.False(t, modTime.IsZero())
}

func TestLocalFileSystemStat(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	fi, err := lfs.Stat(ctx, "/img/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "b.jpg", fi.Name())
	assert.False(t, fi.IsDir())
	assert.Equal(t, int64(len("jpeg")), fi.Size())
}

func TestLocalFileSystemRemove(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	require.NoError(t, lfs.Remove(ctx, "/a.txt"))
	exists, err := lfs.Exists(ctx, "/a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalFileSystemRemoveTree(t *testing.T) {
	ctx := context.Background()
	lfs := NewLocalFileSystem(newTestRoot(t), "")

	require.NoError(t, lfs.RemoveTree(ctx, "/img"))
	exists, err := lfs.Exists(ctx, "/img")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalFileSystemURL(t *testing.T) {
	ctx := context.Background()
	root := newTestRoot(t)

	lfs := NewLocalFileSystem(root, "https://example.com/media/")
	url, err := lfs.URL(ctx, "/img/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/media/img/b.jpg", url)

	lfs = NewLocalFileSystem(root, "")
	url, err = lfs.URL(ctx, "/img/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(root, "img", "b.jpg")), url)
}

func TestLocalFileSystemRoot(t *testing.T) {
	root := newTestRoot(t)
	lfs := NewLocalFileSystem(root, "")
	assert.Equal(t, root, lfs.Root())
}

func TestReadOnlyLocalFileSystem(t *testing.T) {
	ctx := context.Background()
	lfs := NewReadOnlyLocalFileSystem(newTestRoot(t), "")

	exists, err := lfs.Exists(ctx, "/a.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, lfs.Remove(ctx, "/a.txt"))
}
