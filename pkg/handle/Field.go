// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package handle

import (
	"github.com/navwar/gobrowse/pkg/fs"
)

// Field describes the record field a bound handle belongs to: the attribute
// it is stored under, the storage backend its paths resolve against, and
// the base directory used for relative path attributes.
type Field interface {
	AttributeName() string
	Storage() fs.FileSystem
	Directory() string
}
