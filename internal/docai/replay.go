package docai

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
)

// DecodeDocument parses a Document AI document saved in its JSON form.
func DecodeDocument(data []byte) (*documentaipb.Document, error) {
	var d documentaipb.Document
	opts := protojson.UnmarshalOptions{DiscardUnknown: true}
	if err := opts.Unmarshal(data, &d); err != nil {
		return nil, common.MalformedInputf("decode document json: %v", err)
	}
	return &d, nil
}

// ReplayClassifier answers every request with a previously saved response,
// so documents can be reprocessed without calling the service.
type ReplayClassifier struct {
	Path string
}

func NewReplayClassifier(path string) *ReplayClassifier {
	return &ReplayClassifier{Path: path}
}

func (r *ReplayClassifier) Process(_ context.Context, _ []byte, mimeType string) (*extract.Document, error) {
	if !constants.IsSupportedMime(mimeType) {
		return nil, common.UnsupportedFormatf("mime type %q", mimeType)
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read saved document %s: %w", r.Path, err)
	}
	d, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return ToDocument(d), nil
}
