package domain

import "regexp"

// DefaultUploadCategory is used when a request names no category.
const DefaultUploadCategory = "general"

var categoryPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// ValidUploadCategory reports whether c can be used as a storage directory.
func ValidUploadCategory(c string) bool {
	return categoryPattern.MatchString(c)
}

// AllowedImageTypes is the MIME allow-list for uploaded attachments.
var AllowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// StoredFile describes one attachment persisted by the upload gate.
type StoredFile struct {
	Category     string `json:"category"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}
