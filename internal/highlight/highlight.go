// Package highlight finds the parts of an article body that relate to the
// sub-analysis the user is inspecting. Matches are reported as byte spans
// over the cleaned text; the text itself is never rewritten, so renderers
// are free to style each segment however they like.
package highlight

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
	"github.com/mediaunmasked/media-unmasked/internal/score"
)

// Reason says why a span was highlighted
type Reason int

const (
	ReasonFlagged Reason = iota
	ReasonHeadline
	ReasonNumber
	ReasonQuote
	ReasonCitation
)

func (r Reason) String() string {
	switch r {
	case ReasonFlagged:
		return "flagged"
	case ReasonHeadline:
		return "headline"
	case ReasonNumber:
		return "number"
	case ReasonQuote:
		return "quote"
	case ReasonCitation:
		return "citation"
	default:
		return "unknown"
	}
}

// Span is a highlighted byte range of the text
type Span struct {
	Offset int
	Length int
	Reason Reason
}

// End is the offset just past the span
func (s Span) End() int {
	return s.Offset + s.Length
}

// Sources is what a lens highlights besides its fixed rules
type Sources struct {
	Headline string
	Phrases  []string
}

var (
	numberPattern   = regexp.MustCompile(`\b\d+(?:[.,]\d+)*(?:%|\s?percent\b)?`)
	quotePattern    = regexp.MustCompile(`"[^"\n]+"|“[^”\n]+”`)
	citationPattern = regexp.MustCompile(`(?i)\b(?:according to|studies|study|research|reported|report|survey|data|evidence|sources|source|cited)\b`)
)

// PhrasesFor returns the service's flagged phrases for a lens
func PhrasesFor(resp *analysis.Response, lens score.Lens) []string {
	if resp == nil {
		return nil
	}
	if lens == score.LensBias {
		return resp.FlaggedPhrases
	}
	if !resp.HasMediaScore() {
		return nil
	}

	d := resp.MediaScore.Details
	switch lens {
	case score.LensHeadline:
		return d.HeadlineAnalysis.ContradictoryPhrases
	case score.LensEvidence:
		return d.EvidenceAnalysis.FlaggedPhrases
	case score.LensManipulation:
		return d.SentimentAnalysis.FlaggedPhrases
	default:
		return nil
	}
}

// SourcesFor collects the highlight sources of a lens from a response
func SourcesFor(resp *analysis.Response, lens score.Lens) Sources {
	src := Sources{Phrases: PhrasesFor(resp, lens)}
	if resp != nil && lens == score.LensHeadline {
		src.Headline = resp.Headline
	}
	return src
}

// Annotate returns the spans to highlight in text for the given lens.
// Flagged phrases come first, in list order, followed by the lens rules.
// Overlapping spans are kept; Segments resolves them. A phrase listed twice
// (ignoring case) is matched once, so its occurrences stay at depth 1.
func Annotate(text string, lens score.Lens, src Sources) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	seen := make(map[string]bool, len(src.Phrases))
	for _, phrase := range src.Phrases {
		phrase = strings.TrimSpace(phrase)
		key := strings.ToLower(phrase)
		if phrase == "" || seen[key] {
			continue
		}
		seen[key] = true
		spans = appendLiteral(spans, text, phrase, ReasonFlagged)
	}

	switch lens {
	case score.LensHeadline:
		if h := strings.TrimSpace(src.Headline); h != "" {
			spans = appendLiteral(spans, text, h, ReasonHeadline)
		}
	case score.LensEvidence:
		spans = appendPattern(spans, text, numberPattern, ReasonNumber)
		spans = appendPattern(spans, text, quotePattern, ReasonQuote)
		spans = appendPattern(spans, text, citationPattern, ReasonCitation)
	}

	return spans
}

func appendLiteral(spans []Span, text, literal string, reason Reason) []Span {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(literal))
	if err != nil {
		return spans
	}
	return appendPattern(spans, text, re, reason)
}

func appendPattern(spans []Span, text string, re *regexp.Regexp, reason Reason) []Span {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[1] <= loc[0] {
			continue
		}
		spans = append(spans, Span{Offset: loc[0], Length: loc[1] - loc[0], Reason: reason})
	}
	return spans
}

// Segment is a contiguous piece of text covered by the same set of spans.
// Depth counts the covering spans; zero means plain text.
type Segment struct {
	Text    string
	Offset  int
	Reasons []Reason
	Depth   int
}

// Highlighted reports whether any span covers the segment
func (s Segment) Highlighted() bool {
	return s.Depth > 0
}

// Segments splits text at every span boundary. Concatenating the segment
// texts yields text unchanged. Spans outside the text are clipped.
func Segments(text string, spans []Span) []Segment {
	if text == "" {
		return nil
	}

	valid := make([]Span, 0, len(spans))
	cuts := []int{0, len(text)}
	for _, sp := range spans {
		start := max(sp.Offset, 0)
		end := min(sp.End(), len(text))
		if end <= start {
			continue
		}
		valid = append(valid, Span{Offset: start, Length: end - start, Reason: sp.Reason})
		cuts = append(cuts, start, end)
	}
	sort.Ints(cuts)

	var out []Segment
	for i := 1; i < len(cuts); i++ {
		a, b := cuts[i-1], cuts[i]
		if a == b {
			continue
		}

		seg := Segment{Text: text[a:b], Offset: a}
		for _, sp := range valid {
			if sp.Offset <= a && sp.End() >= b {
				seg.Depth++
				if !containsReason(seg.Reasons, sp.Reason) {
					seg.Reasons = append(seg.Reasons, sp.Reason)
				}
			}
		}

		if n := len(out); n > 0 && sameCoverage(out[n-1], seg) {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}

func containsReason(rs []Reason, r Reason) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

func sameCoverage(a, b Segment) bool {
	if a.Depth != b.Depth || len(a.Reasons) != len(b.Reasons) {
		return false
	}
	for i := range a.Reasons {
		if a.Reasons[i] != b.Reasons[i] {
			return false
		}
	}
	return true
}
