// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package fs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemEncodingChangedError(t *testing.T) {
	err := &FileSystemEncodingChangedError{Path: "/media/img"}
	assert.Equal(t, "filesystem encoding changed: cannot decode child names of \"/media/img\"", err.Error())

	wrapped := fmt.Errorf("error listing: %w", err)
	target := &FileSystemEncodingChangedError{}
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "/media/img", target.Path)
}
