package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// ReadDocument loads path and determines the MIME type to send to the classifier.
func ReadDocument(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("abs path: %w", err)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", abs, err)
	}

	mime, err := DetectMIME(abs, content)
	if err != nil {
		return Source{}, err
	}

	sum := sha256.Sum256(content)
	return Source{
		Path:     abs,
		MimeType: mime,
		Content:  content,
		HashHex:  hex.EncodeToString(sum[:]),
	}, nil
}
