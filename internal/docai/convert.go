package docai

import (
	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
)

// ToDocument converts a Document AI response into the extraction model.
// Only the fields the flattener reads are carried over.
func ToDocument(d *documentaipb.Document) *extract.Document {
	if d == nil {
		return &extract.Document{}
	}
	out := &extract.Document{
		Text:     d.GetText(),
		Entities: make([]extract.Entity, 0, len(d.GetEntities())),
		Pages:    make([]extract.Page, 0, len(d.GetPages())),
	}
	for _, e := range d.GetEntities() {
		out.Entities = append(out.Entities, toEntity(e))
	}
	for _, p := range d.GetPages() {
		page := extract.Page{
			Number:     int(p.GetPageNumber()),
			FormFields: make([]extract.FormField, 0, len(p.GetFormFields())),
		}
		for _, f := range p.GetFormFields() {
			page.FormFields = append(page.FormFields, extract.FormField{
				FieldName:  toLayout(f.GetFieldName()),
				FieldValue: toLayout(f.GetFieldValue()),
			})
		}
		out.Pages = append(out.Pages, page)
	}
	return out
}

func toEntity(e *documentaipb.Document_Entity) extract.Entity {
	ent := extract.Entity{
		Type:        e.GetType(),
		MentionText: e.GetMentionText(),
	}
	for _, p := range e.GetProperties() {
		ent.Properties = append(ent.Properties, extract.Entity{
			Type:        p.GetType(),
			MentionText: p.GetMentionText(),
		})
	}
	return ent
}

func toLayout(l *documentaipb.Document_Page_Layout) *extract.Layout {
	if l == nil || l.GetTextAnchor() == nil {
		return nil
	}
	anchor := &extract.TextAnchor{}
	for _, s := range l.GetTextAnchor().GetTextSegments() {
		// proto3 has no presence for these scalars; an unset start reads as 0
		anchor.Segments = append(anchor.Segments, extract.Seg(s.GetStartIndex(), s.GetEndIndex()))
	}
	return &extract.Layout{TextAnchor: anchor}
}
