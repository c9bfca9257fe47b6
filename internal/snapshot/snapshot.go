// Package snapshot writes and reads the JSON audit copy of an extraction record.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
)

const indent = "    "

// Marshal renders rec as the snapshot document.
func Marshal(rec extract.ExtractionRecord) ([]byte, error) {
	// nil collections would encode as null, which the schema rejects
	ents := make([]extract.FlatEntity, len(rec.Entities))
	copy(ents, rec.Entities)
	for i := range ents {
		if ents[i].Properties == nil {
			ents[i].Properties = []extract.FlatProperty{}
		}
	}
	rec.Entities = ents
	if rec.FormFields == nil {
		rec.FormFields = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes rec to path, creating parent directories.
func Save(path string, rec extract.ExtractionRecord) error {
	data, err := Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// Load reads and validates a snapshot written by Save.
func Load(path string) (extract.ExtractionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.ExtractionRecord{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes a snapshot document.
func Parse(data []byte) (extract.ExtractionRecord, error) {
	if err := Validate(data); err != nil {
		return extract.ExtractionRecord{}, common.NewAppError(common.CodeMalformedInput, "invalid snapshot", errors.Join(common.ErrMalformedInput, err))
	}
	rec := extract.NewExtractionRecord()
	if err := json.Unmarshal(data, &rec); err != nil {
		return extract.ExtractionRecord{}, common.NewAppError(common.CodeMalformedInput, "decode snapshot", errors.Join(common.ErrMalformedInput, err))
	}
	return rec, nil
}

// PathFor names the snapshot of sourcePath inside dir: <dir>/<base>.json.
func PathFor(dir, sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".json")
}
