package extract

import (
	"fmt"
	"strings"
)

// Flatten turns a classified document into an ExtractionRecord.
//
// Entities keep their source order and raw mention text; properties are
// captured one level deep and are not revisited as top-level entities.
// Form field names and values are span-resolved and trimmed; unnamed fields
// are dropped and a repeated name keeps the last value seen (page order,
// then field order).
func Flatten(doc *Document) (ExtractionRecord, error) {
	rec := NewExtractionRecord()
	if doc == nil {
		return rec, nil
	}

	for _, ent := range doc.Entities {
		rec.Entities = append(rec.Entities, flattenEntity(ent))
	}

	resolver := NewResolver(doc.Text)
	for pi, page := range doc.Pages {
		for fi, field := range page.FormFields {
			name, err := resolver.ResolveLayout(field.FieldName)
			if err != nil {
				return ExtractionRecord{}, fmt.Errorf("page %d field %d name: %w", pi+1, fi, err)
			}
			value, err := resolver.ResolveLayout(field.FieldValue)
			if err != nil {
				return ExtractionRecord{}, fmt.Errorf("page %d field %d value: %w", pi+1, fi, err)
			}
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			rec.FormFields[name] = strings.TrimSpace(value)
		}
	}
	return rec, nil
}

func flattenEntity(ent Entity) FlatEntity {
	props := make([]FlatProperty, 0, len(ent.Properties))
	for _, p := range ent.Properties {
		props = append(props, FlatProperty{Type: p.Type, MentionText: p.MentionText})
	}
	return FlatEntity{
		Type:        ent.Type,
		MentionText: ent.MentionText,
		Properties:  props,
	}
}
