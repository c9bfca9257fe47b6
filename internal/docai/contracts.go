// Package docai is the boundary to the remote document-understanding service.
package docai

import (
	"context"

	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
)

// Classifier turns raw document bytes into entities, pages and text spans.
type Classifier interface {
	Process(ctx context.Context, content []byte, mimeType string) (*extract.Document, error)
}
