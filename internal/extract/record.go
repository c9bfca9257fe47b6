package extract

// ExtractionRecord is the flat, serializable view of one classified document.
type ExtractionRecord struct {
	Entities   []FlatEntity      `json:"entities"`
	FormFields map[string]string `json:"form_fields"`
}

// FlatEntity is a top-level entity with its properties inlined.
type FlatEntity struct {
	Type        string         `json:"type"`
	MentionText string         `json:"mention_text"`
	Properties  []FlatProperty `json:"properties"`
}

// FlatProperty is a nested property; Type is conventionally "<parent>/<field>".
type FlatProperty struct {
	Type        string `json:"type"`
	MentionText string `json:"mention_text"`
}

// NewExtractionRecord returns a record with non-nil collections.
func NewExtractionRecord() ExtractionRecord {
	return ExtractionRecord{
		Entities:   []FlatEntity{},
		FormFields: map[string]string{},
	}
}
