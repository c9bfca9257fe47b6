package extract

// Document is the classifier output the flattener reads. It is never mutated.
type Document struct {
	Text     string
	Entities []Entity
	Pages    []Page
}

// Entity is a typed mention; Properties holds one nested level (e.g. line_item/description).
type Entity struct {
	Type        string
	MentionText string
	Properties  []Entity
}

// Page groups the form fields detected on one page.
type Page struct {
	Number     int
	FormFields []FormField
}

// FormField is a key/value pair detected on a page.
type FormField struct {
	FieldName  *Layout
	FieldValue *Layout
}

// Layout is any page element that points back into Document.Text.
type Layout struct {
	TextAnchor *TextAnchor
}

// TextAnchor locates an element's text as ordered half-open ranges of Document.Text.
type TextAnchor struct {
	Segments []TextSegment
}

// TextSegment is one [Start, End) range in code points. A nil Start means 0.
type TextSegment struct {
	Start *int64
	End   *int64
}

// Seg builds a segment with both offsets set.
func Seg(start, end int64) TextSegment {
	return TextSegment{Start: &start, End: &end}
}

// Anchor builds a layout covering the given segments.
func Anchor(segs ...TextSegment) *Layout {
	return &Layout{TextAnchor: &TextAnchor{Segments: segs}}
}
