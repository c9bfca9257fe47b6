package constants

import "strings"

const (
	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
	MimeWEBP = "image/webp"
	MimeJPEG = "image/jpeg"
)

// AllowedExtensions maps the accepted document extensions to the MIME type sent to the classifier.
var AllowedExtensions = map[string]string{
	"pdf":  MimePDF,
	"png":  MimePNG,
	"webp": MimeWEBP,
	"jpg":  MimeJPEG,
	"jpeg": MimeJPEG,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MimeForExt returns the classifier MIME type for ext, or "" when unsupported.
func MimeForExt(ext string) string {
	return AllowedExtensions[NormalizeExt(ext)]
}

// IsSupportedMime reports whether the classifier accepts mime.
func IsSupportedMime(mime string) bool {
	for _, m := range AllowedExtensions {
		if m == mime {
			return true
		}
	}
	return false
}
