// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocationLocal(t *testing.T) {
	location, err := ParseLocation("Local")
	require.NoError(t, err)
	assert.Equal(t, time.Local, location)
}

func TestParseLocationUTC(t *testing.T) {
	location, err := ParseLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, location)
}

func TestParseLocationOffset(t *testing.T) {
	location, err := ParseLocation("-7")
	require.NoError(t, err)
	_, offset := time.Date(2024, time.March, 1, 12, 0, 0, 0, location).Zone()
	assert.Equal(t, -7*60*60, offset)
}

func TestParseLocationEmpty(t *testing.T) {
	_, err := ParseLocation("")
	assert.Error(t, err)
}
