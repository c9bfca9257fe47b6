package ingest

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/common"
)

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	return constants.MimeForExt(ext) != ""
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

// IsSupported reports whether path would be accepted by ReadDocument: either
// its extension is known or its leading bytes sniff as a supported type.
func IsSupported(path string) bool {
	if AllowedExt(filepath.Ext(path)) {
		return true
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return supportedMime(m) != ""
}

// DetectMIME maps path's extension to a classifier MIME type. When the
// extension is not recognized the content is sniffed instead.
func DetectMIME(path string, content []byte) (string, error) {
	if m := constants.MimeForExt(filepath.Ext(path)); m != "" {
		return m, nil
	}
	if len(content) > 0 {
		sniffed := mimetype.Detect(content)
		if m := supportedMime(sniffed); m != "" {
			return m, nil
		}
		return "", common.UnsupportedFormatf("%s: detected %s", filepath.Base(path), sniffed.String())
	}
	return "", common.UnsupportedFormatf("%s: unknown extension %q", filepath.Base(path), filepath.Ext(path))
}

// supportedMime walks up the detected type's parents to a classifier MIME type.
func supportedMime(m *mimetype.MIME) string {
	for ; m != nil; m = m.Parent() {
		if constants.IsSupportedMime(m.String()) {
			return m.String()
		}
	}
	return ""
}
