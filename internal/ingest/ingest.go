package ingest

// Source is a document read from disk, ready for classification.
type Source struct {
	Path     string
	MimeType string
	Content  []byte
	HashHex  string
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}
