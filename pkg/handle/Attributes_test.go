// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package handle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gobrowse/pkg/filetype"
	"github.com/navwar/gobrowse/pkg/fs"
)

// fakeFileSystem serves canned metadata and counts backend calls by method
// name, so tests can assert how often a handle actually reaches the backend.
type fakeFileSystem struct {
	exists       map[string]bool
	isDir        map[string]bool
	sizes        map[string]int64
	modTimes     map[string]time.Time
	urls         map[string]string
	childDirs    map[string][]fs.DirectoryEntryInterface
	childFiles   map[string][]fs.DirectoryEntryInterface
	listErr      error
	removed      []string
	removedTrees []string
	calls        map[string]int
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{
		exists:     map[string]bool{},
		isDir:      map[string]bool{},
		sizes:      map[string]int64{},
		modTimes:   map[string]time.Time{},
		urls:       map[string]string{},
		childDirs:  map[string][]fs.DirectoryEntryInterface{},
		childFiles: map[string][]fs.DirectoryEntryInterface{},
		calls:      map[string]int{},
	}
}

func (f *fakeFileSystem) Dir(name string) string {
	return path.Dir(name)
}

func (f *fakeFileSystem) Exists(ctx context.Context, name string) (bool, error) {
	f.calls["Exists"]++
	return f.exists[name], nil
}

func (f *fakeFileSystem) IsDir(ctx context.Context, name string) (bool, error) {
	f.calls["IsDir"]++
	return f.isDir[name], nil
}

func (f *fakeFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func (f *fakeFileSystem) Join(name ...string) string {
	return path.Join(name...)
}

func (f *fakeFileSystem) ListDir(ctx context.Context, name string) ([]fs.DirectoryEntryInterface, []fs.DirectoryEntryInterface, error) {
	f.calls["ListDir"]++
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	return f.childDirs[name], f.childFiles[name], nil
}

func (f *fakeFileSystem) ModifiedTime(ctx context.Context, name string) (time.Time, error) {
	f.calls["ModifiedTime"]++
	return f.modTimes[name], nil
}

func (f *fakeFileSystem) Remove(ctx context.Context, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeFileSystem) RemoveTree(ctx context.Context, name string) error {
	f.removedTrees = append(f.removedTrees, name)
	return nil
}

func (f *fakeFileSystem) Size(ctx context.Context, name string) (int64, error) {
	f.calls["Size"]++
	return f.sizes[name], nil
}

func (f *fakeFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	return nil, fmt.Errorf("stat not supported for %q", name)
}

func (f *fakeFileSystem) URL(ctx context.Context, name string) (string, error) {
	f.calls["URL"]++
	return f.urls[name], nil
}

func TestAttributesPathDerived(t *testing.T) {
	backend := newFakeFileSystem()
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/uploads/img/a.jpg",
		FileSystem: backend,
		Directory:  "/media/uploads",
	})
	assert.Equal(t, "/media/uploads/img/a.jpg", fo.Path())
	assert.Equal(t, "/media/uploads/img", fo.Head)
	assert.Equal(t, "a.jpg", fo.Filename)
	assert.Equal(t, "a.jpg", fo.FilenameLower)
	assert.Equal(t, "a", fo.FilenameRoot)
	assert.Equal(t, ".jpg", fo.Extension)
	assert.Equal(t, "image/jpeg", fo.Mimetype)
	assert.Equal(t, "img/a.jpg", fo.PathRelativeDirectory())
	assert.Equal(t, "/img/a.jpg", fo.Directory())
	assert.Equal(t, "/img", fo.Folder())
	assert.Equal(t, "/media/uploads/img/a.jpg", fo.String())
	assert.Equal(t, len("/media/uploads/img/a.jpg"), fo.Len())
	// no backend calls for path-derived attributes
	assert.Empty(t, backend.calls)
}

func TestAttributesPathDerivedMixedCase(t *testing.T) {
	backend := newFakeFileSystem()
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/Photo.JPG",
		FileSystem: backend,
	})
	assert.Equal(t, "Photo.JPG", fo.Filename)
	assert.Equal(t, "photo.jpg", fo.FilenameLower)
	assert.Equal(t, "Photo", fo.FilenameRoot)
	assert.Equal(t, ".JPG", fo.Extension)
}

func TestAttributesEmptyName(t *testing.T) {
	backend := newFakeFileSystem()
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "",
		FileSystem: backend,
	})
	assert.Equal(t, "", fo.Head)
	assert.Equal(t, "", fo.Filename)
	assert.Equal(t, 0, fo.Len())
	assert.Equal(t, "<FileObject: None>", fmt.Sprintf("%#v", fo))
}

func TestAttributesGoString(t *testing.T) {
	backend := newFakeFileSystem()
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.png",
		FileSystem: backend,
	})
	assert.Equal(t, "<FileObject: /media/x.png>", fmt.Sprintf("%#v", fo))
}

func TestAttributesFileTypeMemoized(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.isDir["/media/x.jpg"] = false
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	fileType, err := fo.FileType(ctx)
	require.NoError(t, err)
	assert.Equal(t, filetype.Image, fileType)

	fileType, err = fo.FileType(ctx)
	require.NoError(t, err)
	assert.Equal(t, filetype.Image, fileType)

	assert.Equal(t, 1, backend.calls["IsDir"])
}

func TestAttributesFileTypeFolderWins(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.isDir["/media/x.jpg"] = true
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	fileType, err := fo.FileType(ctx)
	require.NoError(t, err)
	assert.Equal(t, filetype.Folder, fileType)
}

func TestAttributesFileTypeCustomClassifier(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.dat",
		FileSystem: backend,
		Classifier: func(name string) string {
			return "Telemetry"
		},
	})

	fileType, err := fo.FileType(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Telemetry", fileType)
}

func TestAttributesFileSizeMemoized(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.exists["/media/x.jpg"] = true
	backend.sizes["/media/x.jpg"] = 42
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	size, err := fo.FileSize(ctx)
	require.NoError(t, err)
	require.NotNil(t, size)
	assert.Equal(t, int64(42), *size)

	// a resolved size is permanent even if the backend changes
	backend.sizes["/media/x.jpg"] = 99
	size, err = fo.FileSize(ctx)
	require.NoError(t, err)
	require.NotNil(t, size)
	assert.Equal(t, int64(42), *size)
	assert.Equal(t, 1, backend.calls["Size"])
}

func TestAttributesFileSizeAbsentThenFound(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.exists["/media/x.jpg"] = false
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	size, err := fo.FileSize(ctx)
	require.NoError(t, err)
	assert.Nil(t, size)

	// the entity appears later, the absent result was not frozen
	backend.exists["/media/x.jpg"] = true
	backend.sizes["/media/x.jpg"] = 10
	size, err = fo.FileSize(ctx)
	require.NoError(t, err)
	require.NotNil(t, size)
	assert.Equal(t, int64(10), *size)
	assert.Equal(t, 2, backend.calls["Exists"])
	assert.Equal(t, 1, backend.calls["Size"])
}

func TestAttributesDate(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	modTime := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
	backend.exists["/media/x.jpg"] = true
	backend.modTimes["/media/x.jpg"] = modTime
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	date, err := fo.Date(ctx)
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, modTime.Unix(), *date)

	dateTime, err := fo.DateTime(ctx)
	require.NoError(t, err)
	require.NotNil(t, dateTime)
	assert.True(t, dateTime.Equal(modTime))
	assert.Equal(t, 1, backend.calls["ModifiedTime"])
}

func TestAttributesDateAbsent(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.exists["/media/x.jpg"] = false
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	date, err := fo.Date(ctx)
	require.NoError(t, err)
	assert.Nil(t, date)

	dateTime, err := fo.DateTime(ctx)
	require.NoError(t, err)
	assert.Nil(t, dateTime)
	assert.Equal(t, 0, backend.calls["ModifiedTime"])
}

func TestAttributesExistsCachedIncludingFalse(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.exists["/media/x.jpg"] = false
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	exists, err := fo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	// Exists froze the first answer
	backend.exists["/media/x.jpg"] = true
	exists, err = fo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 1, backend.calls["Exists"])
}

func TestAttributesIsFolderMemoized(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.isDir["/media/img"] = true
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/img",
		FileSystem: backend,
	})

	isFolder, err := fo.IsFolder(ctx)
	require.NoError(t, err)
	assert.True(t, isFolder)

	backend.isDir["/media/img"] = false
	isFolder, err = fo.IsFolder(ctx)
	require.NoError(t, err)
	assert.True(t, isFolder)
	assert.Equal(t, 1, backend.calls["IsDir"])
}

func TestAttributesIsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.isDir["/media/img"] = true
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/img",
		FileSystem: backend,
	})

	isEmpty, err := fo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, isEmpty)

	backend.childFiles["/media/img"] = []fs.DirectoryEntryInterface{
		fs.NewDirectoryEntry("a.jpg", false, time.Time{}, 1),
	}
	isEmpty, err = fo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, isEmpty)
}

func TestAttributesIsEmptyNonFolder(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.isDir["/media/x.jpg"] = false
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/x.jpg",
		FileSystem: backend,
	})

	isEmpty, err := fo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, isEmpty)
	assert.Equal(t, 0, backend.calls["ListDir"])
}

func TestAttributesIsEmptyEncodingError(t *testing.T) {
	ctx := context.Background()
	backend := newFakeFileSystem()
	backend.isDir["/media/img"] = true
	backend.listErr = &fs.FileSystemEncodingChangedError{Path: "/media/img"}
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/media/img",
		FileSystem: backend,
	})

	_, err := fo.IsEmpty(ctx)
	require.Error(t, err)
	encodingError := &fs.FileSystemEncodingChangedError{}
	require.True(t, errors.As(err, &encodingError))
	assert.Equal(t, "/media/img", encodingError.Path)
}

func TestAttributesDirectoryOutsideBase(t *testing.T) {
	backend := newFakeFileSystem()
	fo := NewFileObject(&NewFileObjectInput{
		Path:       "/other/x.jpg",
		FileSystem: backend,
		Directory:  "/media/uploads",
	})
	assert.Equal(t, "/other/x.jpg", fo.Directory())
	assert.Equal(t, "other/x.jpg", fo.PathRelativeDirectory())
}
