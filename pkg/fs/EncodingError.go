// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"fmt"
)

// FileSystemEncodingChangedError is returned when a backend cannot decode
// the names of a directory's children, which indicates the filesystem text
// encoding no longer matches the encoding the storage was written with.
// It is a configuration drift signal, not a transient I/O failure.
type FileSystemEncodingChangedError struct {
	Path string
}

func (e *FileSystemEncodingChangedError) Error() string {
	return fmt.Sprintf("filesystem encoding changed: cannot decode child names of %q", e.Path)
}
