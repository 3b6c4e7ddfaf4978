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
	"os"

	"github.com/navwar/gobrowse/pkg/fs"
	"github.com/navwar/gobrowse/pkg/log"
)

// deprecationLogger receives forward-compatibility warnings from legacy
// accessors.  Replace it with SetDeprecationLogger to capture warnings.
var deprecationLogger fs.Logger = log.NewSimpleLogger(os.Stderr)

func SetDeprecationLogger(logger fs.Logger) {
	deprecationLogger = logger
}

// FieldFileObject is the value of a record's file-browse field.  It
// satisfies the field-file contract (construction from record, field, and
// path, a settable name, and delete) while also exposing the shared
// metadata accessors.  The record and field are back-references only; the
// handle does not outlive or control the record.
type FieldFileObject struct {
	Attributes
	instance interface{}
	field    Field
}

func NewFieldFileObject(instance interface{}, field Field, name string) *FieldFileObject {
	return &FieldFileObject{
		Attributes: newAttributes(name, field.Storage(), field.Directory(), nil),
		instance:   instance,
		field:      field,
	}
}

// Instance returns the owning record.
func (f *FieldFileObject) Instance() interface{} {
	return f.instance
}

// Field returns the owning field definition.
func (f *FieldFileObject) Field() Field {
	return f.field
}

// Name returns the stored path.
func (f *FieldFileObject) Name() string {
	return f.path
}

// SetName replaces the stored path and recomputes the path-derived
// attributes.  Cached backend attributes are discarded with the old path.
func (f *FieldFileObject) SetName(name string) {
	f.Attributes = newAttributes(name, f.field.Storage(), f.field.Directory(), nil)
}

// Delete removes the entity from the backend: folders are removed
// recursively, files through the single-file contract.
func (f *FieldFileObject) Delete(ctx context.Context) error {
	isFolder, err := f.IsFolder(ctx)
	if err != nil {
		return fmt.Errorf("error checking folder status of %q before delete: %w", f.path, err)
	}
	if isFolder {
		return f.fileSystem.RemoveTree(ctx, f.path)
	}
	return f.fileSystem.Remove(ctx, f.path)
}

// Path returns the stored path.
//
// Deprecated: Path will become absolute in a future version.  Use Name to
// keep the current behavior.
func (f *FieldFileObject) Path() string {
	_ = deprecationLogger.Log("FutureWarning", map[string]interface{}{
		"msg": "the Path accessor will be absolute in a future version, use Name instead",
	})
	return f.Name()
}

func (f *FieldFileObject) GoString() string {
	return repr("FieldFileObject", f.path)
}
