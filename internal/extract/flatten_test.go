package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
)

func TestFlattenEntitiesPreserveOrderAndText(t *testing.T) {
	doc := &Document{
		Entities: []Entity{
			{Type: "invoice_id", MentionText: " INV-001 "},
			{Type: "line_item", MentionText: "Widget 3", Properties: []Entity{
				{Type: "line_item/description", MentionText: "Widget"},
				{Type: "line_item/quantity", MentionText: "3"},
			}},
			{Type: "supplier_name", MentionText: "ACME"},
		},
	}

	rec, err := Flatten(doc)
	require.NoError(t, err)
	require.Len(t, rec.Entities, 3)

	assert.Equal(t, FlatEntity{Type: "invoice_id", MentionText: " INV-001 ", Properties: []FlatProperty{}}, rec.Entities[0])
	assert.Equal(t, "line_item", rec.Entities[1].Type)
	assert.Equal(t, []FlatProperty{
		{Type: "line_item/description", MentionText: "Widget"},
		{Type: "line_item/quantity", MentionText: "3"},
	}, rec.Entities[1].Properties)
	assert.Equal(t, "supplier_name", rec.Entities[2].Type)
	assert.Empty(t, rec.FormFields)
	assert.NotNil(t, rec.FormFields)
}

func TestFlattenFormFieldSegmentsConcatenatedBeforeTrim(t *testing.T) {
	// " Total " at [0,7), "$10 " split across [7,9) and [9,11)
	doc := &Document{
		Text: " Total $10 ",
		Pages: []Page{{FormFields: []FormField{{
			FieldName:  Anchor(Seg(0, 7)),
			FieldValue: Anchor(Seg(7, 9), Seg(9, 11)),
		}}}},
	}

	rec, err := Flatten(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Total": "$10"}, rec.FormFields)
}

func TestFlattenFormFieldsLastPageWins(t *testing.T) {
	doc := &Document{
		Text: "Total: 10\nTotal: 20",
		Pages: []Page{
			{Number: 1, FormFields: []FormField{{FieldName: Anchor(Seg(0, 6)), FieldValue: Anchor(Seg(7, 9))}}},
			{Number: 2, FormFields: []FormField{{FieldName: Anchor(Seg(10, 16)), FieldValue: Anchor(Seg(17, 19))}}},
		},
	}

	rec, err := Flatten(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Total:": "20"}, rec.FormFields)
}

func TestFlattenDropsUnnamedFields(t *testing.T) {
	doc := &Document{
		Text: "   value",
		Pages: []Page{{FormFields: []FormField{
			{FieldName: Anchor(Seg(0, 3)), FieldValue: Anchor(Seg(3, 8))},
			{FieldName: nil, FieldValue: Anchor(Seg(3, 8))},
		}}},
	}

	rec, err := Flatten(doc)
	require.NoError(t, err)
	assert.Empty(t, rec.FormFields)
}

func TestFlattenMissingValueIsEmpty(t *testing.T) {
	doc := &Document{
		Text:  "Due Date",
		Pages: []Page{{FormFields: []FormField{{FieldName: Anchor(Seg(0, 8))}}}},
	}

	rec, err := Flatten(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Due Date": ""}, rec.FormFields)
}

func TestFlattenMalformedSpanAborts(t *testing.T) {
	doc := &Document{
		Text:  "abc",
		Pages: []Page{{FormFields: []FormField{{FieldName: Anchor(Seg(0, 10))}}}},
	}

	_, err := Flatten(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMalformedInput)
	assert.Contains(t, err.Error(), "page 1 field 0 name")
}

func TestFlattenNilDocument(t *testing.T) {
	rec, err := Flatten(nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Entities)
	assert.NotNil(t, rec.Entities)
}
