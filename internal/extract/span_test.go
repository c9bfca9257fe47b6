package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
)

func int64p(v int64) *int64 { return &v }

func TestResolveTextEmpty(t *testing.T) {
	got, err := ResolveText(nil, "anything")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = ResolveText(&TextAnchor{}, "anything")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestResolveTextConcatenatesInOrder(t *testing.T) {
	text := "Invoice Total: $10.00 due"
	anchor := &TextAnchor{Segments: []TextSegment{Seg(15, 21), Seg(0, 7)}}

	got, err := ResolveText(anchor, text)
	require.NoError(t, err)
	assert.Equal(t, "$10.00Invoice", got)
}

func TestResolveTextMissingStartMeansZero(t *testing.T) {
	anchor := &TextAnchor{Segments: []TextSegment{{End: int64p(4)}}}

	got, err := ResolveText(anchor, "ACME Corp")
	require.NoError(t, err)
	assert.Equal(t, "ACME", got)
}

func TestResolveTextOverlappingSegmentsPassThrough(t *testing.T) {
	anchor := &TextAnchor{Segments: []TextSegment{Seg(0, 3), Seg(1, 3), Seg(0, 3)}}

	got, err := ResolveText(anchor, "abcdef")
	require.NoError(t, err)
	assert.Equal(t, "abcbcabc", got)
}

func TestResolveTextLengthIsSumOfSegments(t *testing.T) {
	text := "0123456789abcdefghij"
	cases := [][]TextSegment{
		{Seg(0, 0)},
		{Seg(0, 20)},
		{Seg(3, 7), Seg(10, 11)},
		{Seg(5, 6), Seg(5, 6), Seg(19, 20), Seg(0, 2)},
	}
	for _, segs := range cases {
		var want int64
		for _, s := range segs {
			want += *s.End - *s.Start
		}
		got, err := ResolveText(&TextAnchor{Segments: segs}, text)
		require.NoError(t, err)
		assert.Equal(t, int(want), len([]rune(got)))
	}
}

func TestResolveTextCountsCodePoints(t *testing.T) {
	text := "Café €12"
	got, err := ResolveText(&TextAnchor{Segments: []TextSegment{Seg(5, 8)}}, text)
	require.NoError(t, err)
	assert.Equal(t, "€12", got)
}

func TestResolveTextMalformed(t *testing.T) {
	text := "short"
	cases := map[string]TextSegment{
		"missing end":   {Start: int64p(0)},
		"end past text": Seg(0, 6),
		"negative":      Seg(-1, 2),
		"start > end":   Seg(4, 2),
	}
	for name, seg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveText(&TextAnchor{Segments: []TextSegment{seg}}, text)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrMalformedInput)
		})
	}
}

func TestResolverResolveLayoutNil(t *testing.T) {
	r := NewResolver("abc")
	got, err := r.ResolveLayout(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = r.ResolveLayout(&Layout{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.Equal(t, 3, r.Len())
}
