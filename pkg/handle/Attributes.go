// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package handle

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/navwar/gobrowse/pkg/filetype"
	"github.com/navwar/gobrowse/pkg/fs"
)

// Attributes caches metadata for a single path within a storage namespace.
// Path-derived attributes are computed at construction.  Attributes that
// require the backend are resolved on first access and then frozen for the
// lifetime of the object, so a handle is a snapshot, not a live view.
//
// Size and date are the exception: while the entity does not exist they
// resolve to nil without writing the cache slot, so "not found yet" stays
// retryable.  A resolved value is permanent.
type Attributes struct {
	path       string
	fileSystem fs.FileSystem
	directory  string
	classify   func(name string) string

	// computed at construction
	Head          string
	Filename      string
	FilenameLower string
	FilenameRoot  string
	Extension     string
	Mimetype      string

	// resolved at most once
	fileTypeStored *string
	fileSizeStored *int64
	dateStored     *int64
	existsStored   *bool
	isFolderStored *bool
}

func newAttributes(name string, fileSystem fs.FileSystem, directory string, classify func(name string) string) Attributes {
	if classify == nil {
		classify = filetype.GetFileType
	}
	head := path.Dir(name)
	filename := path.Base(name)
	if len(name) == 0 {
		head = ""
		filename = ""
	}
	extension := path.Ext(filename)
	return Attributes{
		path:          name,
		fileSystem:    fileSystem,
		directory:     directory,
		classify:      classify,
		Head:          head,
		Filename:      filename,
		FilenameLower: strings.ToLower(filename),
		FilenameRoot:  strings.TrimSuffix(filename, extension),
		Extension:     extension,
		Mimetype:      filetype.GuessMimetype(filename),
	}
}

// Path returns the path the handle was constructed with.
func (a *Attributes) Path() string {
	return a.path
}

// FileType returns the classification for the handle.  Folders always
// classify as Folder, regardless of extension.
func (a *Attributes) FileType(ctx context.Context) (string, error) {
	if a.fileTypeStored != nil {
		return *a.fileTypeStored, nil
	}
	isFolder, err := a.IsFolder(ctx)
	if err != nil {
		return "", err
	}
	fileType := filetype.Folder
	if !isFolder {
		fileType = a.classify(a.Filename)
	}
	a.fileTypeStored = &fileType
	return fileType, nil
}

// FileSize returns the size of the file in bytes, or nil if the entity does
// not exist.  The existence probe goes to the backend directly so that an
// absent result does not freeze the exists cache.
func (a *Attributes) FileSize(ctx context.Context) (*int64, error) {
	if a.fileSizeStored != nil {
		return a.fileSizeStored, nil
	}
	exists, err := a.probeExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	size, err := a.fileSystem.Size(ctx, a.path)
	if err != nil {
		return nil, err
	}
	a.fileSizeStored = &size
	return a.fileSizeStored, nil
}

// Date returns the last-modified time as unix seconds, or nil if the entity
// does not exist.  Same caching rules as FileSize.
func (a *Attributes) Date(ctx context.Context) (*int64, error) {
	if a.dateStored != nil {
		return a.dateStored, nil
	}
	exists, err := a.probeExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	modifiedTime, err := a.fileSystem.ModifiedTime(ctx, a.path)
	if err != nil {
		return nil, err
	}
	date := modifiedTime.Unix()
	a.dateStored = &date
	return a.dateStored, nil
}

// DateTime converts Date to a time.Time.  It is recomputed on every access.
func (a *Attributes) DateTime(ctx context.Context) (*time.Time, error) {
	date, err := a.Date(ctx)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, nil
	}
	t := time.Unix(*date, 0)
	return &t, nil
}

// Exists reports whether the entity exists.  The first result is cached
// permanently, including a false result.
func (a *Attributes) Exists(ctx context.Context) (bool, error) {
	if a.existsStored != nil {
		return *a.existsStored, nil
	}
	exists, err := a.fileSystem.Exists(ctx, a.path)
	if err != nil {
		return false, err
	}
	a.existsStored = &exists
	return exists, nil
}

// probeExists consults a resolved or pre-seeded exists value if there is
// one, and otherwise asks the backend without writing the cache.
func (a *Attributes) probeExists(ctx context.Context) (bool, error) {
	if a.existsStored != nil {
		return *a.existsStored, nil
	}
	return a.fileSystem.Exists(ctx, a.path)
}

// IsFolder reports whether the entity is a directory, cached permanently.
func (a *Attributes) IsFolder(ctx context.Context) (bool, error) {
	if a.isFolderStored != nil {
		return *a.isFolderStored, nil
	}
	isFolder, err := a.fileSystem.IsDir(ctx, a.path)
	if err != nil {
		return false, err
	}
	a.isFolderStored = &isFolder
	return isFolder, nil
}

// IsEmpty reports whether a folder has no children.  Non-folders are never
// empty.  A FileSystemEncodingChangedError from the backend listing
// propagates unchanged.
func (a *Attributes) IsEmpty(ctx context.Context) (bool, error) {
	isFolder, err := a.IsFolder(ctx)
	if err != nil {
		return false, err
	}
	if !isFolder {
		return false, nil
	}
	directories, files, err := a.fileSystem.ListDir(ctx, a.path)
	if err != nil {
		return false, err
	}
	return len(directories) == 0 && len(files) == 0, nil
}

// PathRelativeDirectory returns the path relative to the configured base
// directory, with any leading separator stripped.
func (a *Attributes) PathRelativeDirectory() string {
	return strings.TrimLeft(pathStrip(a.path, a.directory), "/")
}

// Directory returns the path with the configured base directory stripped.
func (a *Attributes) Directory() string {
	return pathStrip(a.path, a.directory)
}

// Folder returns the parent directory of Directory.
func (a *Attributes) Folder() string {
	return path.Dir(pathStrip(a.Head+"/", a.directory))
}

func (a *Attributes) String() string {
	return a.path
}

// Len returns the character length of the path.  It is a compatibility
// convenience and is unrelated to FileSize.
func (a *Attributes) Len() int {
	return len(a.path)
}

// pathStrip removes the root prefix from p.
func pathStrip(p string, root string) string {
	if len(root) > 0 && strings.HasPrefix(p, root) {
		return p[len(root):]
	}
	return p
}

// repr formats the debug representation shared by the handle types.
func repr(typeName string, p string) string {
	if len(p) == 0 {
		return fmt.Sprintf("<%s: None>", typeName)
	}
	return fmt.Sprintf("<%s: %s>", typeName, p)
}
