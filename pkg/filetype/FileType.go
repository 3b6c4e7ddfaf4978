// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package filetype

import (
	"mime"
	"path"
	"strings"
)

// File type classifications.  Folder is assigned by the handle layer for
// directories and always wins over any extension-based classification.
const (
	Folder   = "Folder"
	Image    = "Image"
	Document = "Document"
	Audio    = "Audio"
	Video    = "Video"
	Archive  = "Archive"
	Code     = "Code"
	Unknown  = "Unknown"
)

var extensionTypes = map[string]string{
	// Image
	".jpg":  Image,
	".jpeg": Image,
	".gif":  Image,
	".png":  Image,
	".tif":  Image,
	".tiff": Image,
	".bmp":  Image,
	".svg":  Image,
	".webp": Image,
	".ico":  Image,
	// Document
	".pdf":  Document,
	".doc":  Document,
	".docx": Document,
	".rtf":  Document,
	".txt":  Document,
	".md":   Document,
	".csv":  Document,
	".xls":  Document,
	".xlsx": Document,
	".ppt":  Document,
	".pptx": Document,
	// Audio
	".mp3":  Audio,
	".wav":  Audio,
	".aiff": Audio,
	".midi": Audio,
	".m4p":  Audio,
	".ogg":  Audio,
	".flac": Audio,
	// Video
	".mov":  Video,
	".wmv":  Video,
	".mpeg": Video,
	".mpg":  Video,
	".avi":  Video,
	".rm":   Video,
	".mp4":  Video,
	".mkv":  Video,
	".webm": Video,
	// Archive
	".zip": Archive,
	".tar": Archive,
	".gz":  Archive,
	".tgz": Archive,
	".bz2": Archive,
	".xz":  Archive,
	".rar": Archive,
	".7z":  Archive,
	// Code
	".html": Code,
	".htm":  Code,
	".css":  Code,
	".js":   Code,
	".py":   Code,
	".go":   Code,
	".json": Code,
	".xml":  Code,
	".yaml": Code,
	".yml":  Code,
	".sql":  Code,
	".sh":   Code,
}

// GetFileType classifies a file by its extension.  Extensions outside the
// fixed taxonomy fall back on the major class of the guessed MIME type, and
// anything still unclassified returns Unknown.
func GetFileType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if len(ext) == 0 {
		return Unknown
	}
	if fileType, ok := extensionTypes[ext]; ok {
		return fileType
	}
	mediaType := mime.TypeByExtension(ext)
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return Image
	case strings.HasPrefix(mediaType, "audio/"):
		return Audio
	case strings.HasPrefix(mediaType, "video/"):
		return Video
	case strings.HasPrefix(mediaType, "text/"):
		return Document
	}
	return Unknown
}

// GuessMimetype returns the MIME type guessed from the file extension, or an
// empty string if the extension is not registered.
func GuessMimetype(name string) string {
	return mime.TypeByExtension(strings.ToLower(path.Ext(name)))
}
