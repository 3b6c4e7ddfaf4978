// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import "time"

// Layout is a string that describes the text representation of a time
type Layout string

func (l Layout) Format(t time.Time) string {
	return t.Format(string(l))
}

// FormatUnix formats a timestamp given as seconds since the unix epoch.
func (l Layout) FormatUnix(seconds int64, location *time.Location) string {
	return time.Unix(seconds, 0).In(location).Format(string(l))
}

// Width returns the column width of the formatted representation.
func (l Layout) Width() int {
	return len(l)
}

// NamedLayouts includes a map of layouts that can be referenced by name
var NamedLayouts = map[string]Layout{
	"Kitchen":     time.Kitchen,
	"RFC822":      time.RFC822,
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"DateTime":    time.DateTime,
	"DateOnly":    time.DateOnly,
	"TimeOnly":    time.TimeOnly,
	"Default":     "Jan 02 15:04",
	"Full":        "Jan 02 15:04:05 2006",
}

// ParseLayout returns a layout.
// If layout is the name of a known layout, then returns the referenced layout.
// Otherwise, returns the input layout.
func ParseLayout(layout string) Layout {
	format, ok := NamedLayouts[layout]
	if ok {
		return format
	}
	return Layout(layout)
}
