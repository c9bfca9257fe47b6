package extract

import (
	"strings"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
)

// Resolver reconstructs anchored text from one document's text buffer.
// Offsets count code points, so the buffer is decoded once up front.
type Resolver struct {
	runes []rune
}

func NewResolver(text string) *Resolver {
	return &Resolver{runes: []rune(text)}
}

// Len returns the buffer length in code points.
func (r *Resolver) Len() int {
	return len(r.runes)
}

// Resolve concatenates every segment of anchor in the order given.
// A nil anchor or one without segments yields "".
func (r *Resolver) Resolve(anchor *TextAnchor) (string, error) {
	if anchor == nil || len(anchor.Segments) == 0 {
		return "", nil
	}

	var b strings.Builder
	for i, seg := range anchor.Segments {
		var start int64
		if seg.Start != nil {
			start = *seg.Start
		}
		if seg.End == nil {
			return "", common.MalformedInputf("text segment %d: end offset missing", i)
		}
		end := *seg.End
		if start < 0 || end > int64(len(r.runes)) || start > end {
			return "", common.MalformedInputf("text segment %d: range [%d:%d] outside text of length %d",
				i, start, end, len(r.runes))
		}
		for _, c := range r.runes[start:end] {
			b.WriteRune(c)
		}
	}
	return b.String(), nil
}

// ResolveLayout resolves the anchor of layout; a nil layout yields "".
func (r *Resolver) ResolveLayout(layout *Layout) (string, error) {
	if layout == nil {
		return "", nil
	}
	return r.Resolve(layout.TextAnchor)
}

// ResolveText is the one-shot form of Resolver.Resolve.
func ResolveText(anchor *TextAnchor, text string) (string, error) {
	if anchor == nil || len(anchor.Segments) == 0 {
		return "", nil
	}
	return NewResolver(text).Resolve(anchor)
}
