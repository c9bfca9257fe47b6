// Package mapping projects flattened classifier entities onto the invoice schema.
package mapping

import (
	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
)

// Project maps rec onto one invoice header and its line items.
//
// Each header column takes the mention text of the first entity of its type;
// a missing type leaves the column "". Every line_item entity becomes one
// item in source order, its columns filled the same way from its own
// properties. Entities of any other type are ignored.
func Project(rec extract.ExtractionRecord) (entity.InvoiceHeader, []entity.LineItem) {
	first := make(map[string]string, len(rec.Entities))
	items := make([]entity.LineItem, 0)

	for _, ent := range rec.Entities {
		if _, seen := first[ent.Type]; !seen {
			first[ent.Type] = ent.MentionText
		}
		if ent.Type == string(constants.LineItem) {
			items = append(items, projectItem(ent.Properties))
		}
	}

	var header entity.InvoiceHeader
	fields := header.Fields()
	for i, t := range constants.HeaderTypes() {
		*fields[i] = first[string(t)]
	}
	return header, items
}

func projectItem(props []extract.FlatProperty) entity.LineItem {
	return entity.LineItem{
		Description: firstProperty(props, constants.LineItemDescription),
		Quantity:    firstProperty(props, constants.LineItemQuantity),
		UnitPrice:   firstProperty(props, constants.LineItemUnitPrice),
		Total:       firstProperty(props, constants.LineItemAmount),
	}
}

func firstProperty(props []extract.FlatProperty, t constants.EntityType) string {
	for _, p := range props {
		if p.Type == string(t) {
			return p.MentionText
		}
	}
	return ""
}

// Duplicates returns the header types that occur more than once in rec, in
// first-occurrence order. Project keeps only the first of each; callers log
// these so discarded values stay visible.
func Duplicates(rec extract.ExtractionRecord) []string {
	counts := map[string]int{}
	var order []string
	for _, ent := range rec.Entities {
		if !constants.IsHeaderType(ent.Type) {
			continue
		}
		counts[ent.Type]++
		if counts[ent.Type] == 2 {
			order = append(order, ent.Type)
		}
	}
	return order
}
