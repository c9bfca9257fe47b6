package docai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
)

const savedDocument = `{
  "text": "Invoice # INV-001\nTotal: $10\n",
  "entities": [
    {"type": "invoice_id", "mentionText": "INV-001"},
    {"type": "line_item", "mentionText": "Widget 3", "properties": [
      {"type": "line_item/description", "mentionText": "Widget"},
      {"type": "line_item/quantity", "mentionText": "3"}
    ]}
  ],
  "pages": [
    {"pageNumber": 1, "formFields": [
      {
        "fieldName": {"textAnchor": {"textSegments": [{"startIndex": "18", "endIndex": "24"}]}},
        "fieldValue": {"textAnchor": {"textSegments": [{"startIndex": "25", "endIndex": "28"}]}}
      },
      {
        "fieldName": {"textAnchor": {"textSegments": [{"endIndex": "7"}]}}
      }
    ]}
  ],
  "uri": "gs://ignored"
}`

func TestToDocument(t *testing.T) {
	pb := &documentaipb.Document{
		Text: "Total 10",
		Entities: []*documentaipb.Document_Entity{
			{Type: "total_amount", MentionText: "10"},
			{Type: "line_item", Properties: []*documentaipb.Document_Entity{
				{Type: "line_item/amount", MentionText: "10"},
			}},
		},
		Pages: []*documentaipb.Document_Page{{
			PageNumber: 1,
			FormFields: []*documentaipb.Document_Page_FormField{{
				FieldName: &documentaipb.Document_Page_Layout{TextAnchor: &documentaipb.Document_TextAnchor{
					TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{{StartIndex: 0, EndIndex: 5}},
				}},
				FieldValue: &documentaipb.Document_Page_Layout{},
			}},
		}},
	}

	doc := ToDocument(pb)

	assert.Equal(t, "Total 10", doc.Text)
	require.Len(t, doc.Entities, 2)
	assert.Equal(t, extract.Entity{Type: "total_amount", MentionText: "10"}, doc.Entities[0])
	assert.Equal(t, []extract.Entity{{Type: "line_item/amount", MentionText: "10"}}, doc.Entities[1].Properties)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, 1, doc.Pages[0].Number)
	ff := doc.Pages[0].FormFields[0]
	assert.Equal(t, extract.Anchor(extract.Seg(0, 5)), ff.FieldName)
	assert.Nil(t, ff.FieldValue)
}

func TestToDocumentNil(t *testing.T) {
	doc := ToDocument(nil)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Entities)
}

func TestDecodeDocumentFlattens(t *testing.T) {
	pb, err := DecodeDocument([]byte(savedDocument))
	require.NoError(t, err)

	rec, err := extract.Flatten(ToDocument(pb))
	require.NoError(t, err)

	require.Len(t, rec.Entities, 2)
	assert.Equal(t, "INV-001", rec.Entities[0].MentionText)
	assert.Len(t, rec.Entities[1].Properties, 2)
	assert.Equal(t, map[string]string{"Total:": "$10", "Invoice": ""}, rec.FormFields)
}

func TestDecodeDocumentInvalid(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"text": 5}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMalformedInput)
}

func TestReplayClassifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(savedDocument), 0o644))
	rc := NewReplayClassifier(path)

	doc, err := rc.Process(context.Background(), nil, "application/pdf")
	require.NoError(t, err)
	assert.Len(t, doc.Entities, 2)

	_, err = rc.Process(context.Background(), nil, "text/plain")
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)

	_, err = NewReplayClassifier(filepath.Join(t.TempDir(), "missing.json")).Process(context.Background(), nil, "image/png")
	assert.Error(t, err)
}

func TestClientRejectsUnsupportedMimeBeforeRequest(t *testing.T) {
	c := &Client{}
	_, err := c.Process(context.Background(), []byte("hello"), "text/plain")
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestProcessorNameAndEndpoint(t *testing.T) {
	assert.Equal(t, "projects/p/locations/eu/processors/123", ProcessorName("p", "eu", "123"))
	assert.Equal(t, "eu-documentai.googleapis.com:443", Endpoint("eu"))
}
