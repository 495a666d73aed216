package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
	"github.com/mediaunmasked/media-unmasked/internal/score"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Nothing to see here.", "Nothing to see here."},
		{"double escaped quotes", "&amp;quot;test&amp;quot;", `"test"`},
		{"ampersand", "Fish &amp; chips", "Fish & chips"},
		{"quote entity", "&quot;quoted&quot;", `"quoted"`},
		{"apostrophe", "It&#39;s fine", "It's fine"},
		{"tags stripped", "<p>Hello <b>world</b></p>", "Hello world"},
		{"tag with attributes", `<a href="https://x.test" class='l'>link</a> text`, "link text"},
		{"self closing tag", "one<br/>two", "onetwo"},
		{"comparison kept", "Scores: a<b and c>d", "Scores: a<b and c>d"},
		{"less than number", "rates<5 and <3", "rates<5 and <3"},
		{"escaped brackets", "&lt;b&gt; is bold", "<b> is bold"},
		{"malformed dollar bold", "costs **$****5 million", "costs **$5 million"},
		{"quadruple stars", "a ****b** c", "a **b** c"},
		{"crlf", "one\r\ntwo", "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestAnnotateAcrossAngleBrackets(t *testing.T) {
	text := Clean("Turnout was a<b and c>d in most wards.")

	spans := Annotate(text, score.LensBias, Sources{Phrases: []string{"a<b and c>d"}})
	require.Len(t, spans, 1)
	assert.Equal(t, "a<b and c>d", text[spans[0].Offset:spans[0].End()])
}

func TestNoLensNoPhrasesIsNoop(t *testing.T) {
	text := Clean("The council &amp; the mayor met on Tuesday.\n\nThey &quot;agreed&quot;.")

	spans := Annotate(text, score.LensNone, Sources{})
	assert.Empty(t, spans)

	segs := Segments(text, spans)
	require.Len(t, segs, 1)
	assert.Equal(t, text, segs[0].Text)
	assert.False(t, segs[0].Highlighted())
}

func TestAnnotateFlaggedPhrases(t *testing.T) {
	text := "Critics say the Radical plan is radical. A radical PLAN indeed."

	spans := Annotate(text, score.LensBias, Sources{Phrases: []string{"radical plan", "", "Radical Plan"}})
	require.Len(t, spans, 2)
	for _, sp := range spans {
		assert.Equal(t, ReasonFlagged, sp.Reason)
		assert.True(t, strings.EqualFold("radical plan", text[sp.Offset:sp.End()]))
	}
	assert.Less(t, spans[0].Offset, spans[1].Offset)
}

func TestRepeatedPhraseIsNotDoubleMarked(t *testing.T) {
	text := "A radical plan, then another radical plan."

	spans := Annotate(text, score.LensBias, Sources{Phrases: []string{"radical plan", "RADICAL PLAN"}})
	for _, seg := range Segments(text, spans) {
		if seg.Highlighted() {
			assert.Equal(t, 1, seg.Depth, "segment %q", seg.Text)
		}
	}
	assert.Len(t, spans, 2)
}

func TestAnnotateEscapesMetacharacters(t *testing.T) {
	text := "Prices rose (again) by $5+ today"

	spans := Annotate(text, score.LensManipulation, Sources{Phrases: []string{"(again)", "$5+"}})
	require.Len(t, spans, 2)
	assert.Equal(t, "(again)", text[spans[0].Offset:spans[0].End()])
	assert.Equal(t, "$5+", text[spans[1].Offset:spans[1].End()])
}

func TestAnnotateHeadline(t *testing.T) {
	text := "Storm hits coast. Officials say the storm hits coast towns hardest."

	spans := Annotate(text, score.LensHeadline, Sources{Headline: "Storm Hits Coast", Phrases: []string{"hardest"}})
	require.Len(t, spans, 3)
	assert.Equal(t, ReasonFlagged, spans[0].Reason)
	assert.Equal(t, ReasonHeadline, spans[1].Reason)
	assert.Equal(t, ReasonHeadline, spans[2].Reason)

	// the headline rule only applies to the headline lens
	assert.Empty(t, Annotate(text, score.LensBias, Sources{Headline: "Storm hits coast"}))
}

func TestAnnotateEvidence(t *testing.T) {
	text := `According to a survey, 42% of voters said "no change" while 1,200 agreed.`

	spans := Annotate(text, score.LensEvidence, Sources{})

	got := map[Reason][]string{}
	for _, sp := range spans {
		got[sp.Reason] = append(got[sp.Reason], text[sp.Offset:sp.End()])
	}
	assert.Equal(t, []string{"42%", "1,200"}, got[ReasonNumber])
	assert.Equal(t, []string{`"no change"`}, got[ReasonQuote])
	assert.Equal(t, []string{"According to", "survey"}, got[ReasonCitation])
}

func TestAnnotateCitationPrefersLongerWords(t *testing.T) {
	text := "Two studies reported the sources."

	var words []string
	for _, sp := range Annotate(text, score.LensEvidence, Sources{}) {
		words = append(words, text[sp.Offset:sp.End()])
	}
	assert.Equal(t, []string{"studies", "reported", "sources"}, words)
}

func TestAnnotateOrderFlaggedBeforeRules(t *testing.T) {
	text := "Data shows 12 cases."
	spans := Annotate(text, score.LensEvidence, Sources{Phrases: []string{"12 cases"}})
	require.NotEmpty(t, spans)
	assert.Equal(t, ReasonFlagged, spans[0].Reason)
}

func TestSegmentsOverlap(t *testing.T) {
	text := "alpha beta gamma"
	spans := []Span{
		{Offset: 0, Length: 10, Reason: ReasonFlagged}, // "alpha beta"
		{Offset: 6, Length: 10, Reason: ReasonNumber},  // "beta gamma"
	}

	segs := Segments(text, spans)
	require.Len(t, segs, 3)

	assert.Equal(t, "alpha ", segs[0].Text)
	assert.Equal(t, 1, segs[0].Depth)
	assert.Equal(t, []Reason{ReasonFlagged}, segs[0].Reasons)

	assert.Equal(t, "beta", segs[1].Text)
	assert.Equal(t, 2, segs[1].Depth)
	assert.Equal(t, []Reason{ReasonFlagged, ReasonNumber}, segs[1].Reasons)

	assert.Equal(t, " gamma", segs[2].Text)
	assert.Equal(t, []Reason{ReasonNumber}, segs[2].Reasons)
}

func TestSegmentsReassembleText(t *testing.T) {
	text := `The "official" report cited 3 studies and 45% growth, according to data.`
	spans := Annotate(text, score.LensEvidence, Sources{Phrases: []string{"official report", "cited 3"}})

	var b strings.Builder
	offset := 0
	for _, seg := range Segments(text, spans) {
		assert.Equal(t, offset, seg.Offset)
		b.WriteString(seg.Text)
		offset += len(seg.Text)
	}
	assert.Equal(t, text, b.String())
}

func TestSegmentsClipInvalidSpans(t *testing.T) {
	text := "short"
	segs := Segments(text, []Span{
		{Offset: -3, Length: 5, Reason: ReasonFlagged},
		{Offset: 4, Length: 50, Reason: ReasonQuote},
		{Offset: 2, Length: 0, Reason: ReasonNumber},
	})

	require.Len(t, segs, 3)
	assert.Equal(t, "sh", segs[0].Text)
	assert.Equal(t, "or", segs[1].Text)
	assert.False(t, segs[1].Highlighted())
	assert.Equal(t, "t", segs[2].Text)
	assert.Equal(t, []Reason{ReasonQuote}, segs[2].Reasons)

	assert.Nil(t, Segments("", []Span{{Offset: 0, Length: 1}}))
}

func TestPhrasesFor(t *testing.T) {
	resp := &analysis.Response{
		Headline:       "Headline",
		FlaggedPhrases: []string{"bias phrase"},
		MediaScore: &analysis.MediaScore{
			Details: analysis.Details{
				HeadlineAnalysis:  analysis.HeadlineAnalysis{ContradictoryPhrases: []string{"contradiction"}},
				EvidenceAnalysis:  analysis.EvidenceAnalysis{FlaggedPhrases: []string{"unsourced claim"}},
				SentimentAnalysis: analysis.SentimentAnalysis{FlaggedPhrases: []string{"outrageous"}},
			},
		},
	}

	assert.Equal(t, []string{"contradiction"}, PhrasesFor(resp, score.LensHeadline))
	assert.Equal(t, []string{"unsourced claim"}, PhrasesFor(resp, score.LensEvidence))
	assert.Equal(t, []string{"outrageous"}, PhrasesFor(resp, score.LensManipulation))
	assert.Equal(t, []string{"bias phrase"}, PhrasesFor(resp, score.LensBias))
	assert.Nil(t, PhrasesFor(resp, score.LensNone))
	assert.Nil(t, PhrasesFor(nil, score.LensBias))

	src := SourcesFor(resp, score.LensHeadline)
	assert.Equal(t, "Headline", src.Headline)
	assert.Empty(t, SourcesFor(resp, score.LensEvidence).Headline)

	noScore := &analysis.Response{FlaggedPhrases: []string{"x"}}
	assert.Equal(t, []string{"x"}, PhrasesFor(noScore, score.LensBias))
	assert.Nil(t, PhrasesFor(noScore, score.LensManipulation))
}
