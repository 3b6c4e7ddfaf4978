// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/navwar/gobrowse/pkg/fs"
)

// LocalFileSystem serves the storage contract from a directory on the local
// filesystem.  Paths are relative to the root and URLs are resolved against
// the configured base URL, falling back on a file:// URL for the root.
type LocalFileSystem struct {
	fs      afero.Fs
	iofs    afero.IOFS
	root    string
	baseURL string
}

func (lfs *LocalFileSystem) Dir(name string) string {
	return Dir(name)
}

func (lfs *LocalFileSystem) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := afero.Exists(lfs.fs, name)
	if err != nil {
		return false, fmt.Errorf("error checking existence of %q: %w", name, err)
	}
	return exists, nil
}

func (lfs *LocalFileSystem) IsDir(ctx context.Context, name string) (bool, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		if lfs.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("error stating %q: %w", name, err)
	}
	return fi.IsDir(), nil
}

func (lfs *LocalFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func (lfs *LocalFileSystem) Join(name ...string) string {
	return filepath.Join(name...)
}

func (lfs *LocalFileSystem) ListDir(ctx context.Context, name string) ([]fs.DirectoryEntryInterface, []fs.DirectoryEntryInterface, error) {
	// io/fs paths are unrooted
	p := strings.TrimPrefix(name, "/")
	if len(p) == 0 {
		p = "."
	}
	readDirOutput, err := lfs.iofs.ReadDir(p)
	if err != nil {
		return nil, nil, err
	}
	directories := []fs.DirectoryEntryInterface{}
	files := []fs.DirectoryEntryInterface{}
	for _, directoryEntry := range readDirOutput {
		if !utf8.ValidString(directoryEntry.Name()) {
			return nil, nil, &fs.FileSystemEncodingChangedError{Path: name}
		}
		if directoryEntry.IsDir() {
			directories = append(directories, &LocalDirectoryEntry{de: directoryEntry})
		} else {
			files = append(files, &LocalDirectoryEntry{de: directoryEntry})
		}
	}
	return directories, files, nil
}

func (lfs *LocalFileSystem) ModifiedTime(ctx context.Context, name string) (time.Time, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

func (lfs *LocalFileSystem) Remove(ctx context.Context, name string) error {
	return lfs.fs.Remove(name)
}

func (lfs *LocalFileSystem) RemoveTree(ctx context.Context, name string) error {
	return lfs.fs.RemoveAll(name)
}

func (lfs *LocalFileSystem) Root() string {
	return lfs.root
}

func (lfs *LocalFileSystem) Size(ctx context.Context, name string) (int64, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		return int64(0), err
	}
	return fi.Size(), nil
}

func (lfs *LocalFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	return NewLocalFileInfo(fi.Name(), fi.ModTime(), fi.IsDir(), fi.Size()), nil
}

func (lfs *LocalFileSystem) URL(ctx context.Context, name string) (string, error) {
	if len(lfs.baseURL) > 0 {
		return strings.TrimSuffix(lfs.baseURL, "/") + "/" + strings.TrimPrefix(filepath.ToSlash(name), "/"), nil
	}
	return "file://" + filepath.ToSlash(filepath.Join(lfs.root, name)), nil
}

func NewLocalFileSystem(rootPath string, baseURL string) *LocalFileSystem {
	lfs := afero.NewBasePathFs(afero.NewOsFs(), rootPath)
	return &LocalFileSystem{
		fs:      lfs,
		iofs:    afero.NewIOFS(lfs),
		root:    rootPath,
		baseURL: baseURL,
	}
}

func NewReadOnlyLocalFileSystem(rootPath string, baseURL string) *LocalFileSystem {
	lfs := afero.NewBasePathFs(afero.NewReadOnlyFs(afero.NewOsFs()), rootPath)
	return &LocalFileSystem{
		fs:      lfs,
		iofs:    afero.NewIOFS(lfs),
		root:    rootPath,
		baseURL: baseURL,
	}
}
