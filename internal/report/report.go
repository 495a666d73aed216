package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
	"github.com/mediaunmasked/media-unmasked/internal/highlight"
	"github.com/mediaunmasked/media-unmasked/internal/score"
)

// Options controls what Write includes
type Options struct {
	// Lens selects the article highlighting; LensNone omits the article
	Lens score.Lens
	// ShowArticle prints the article body even without a lens
	ShowArticle bool
}

// Write renders a result: headline, composite, per-lens breakdown, flagged
// phrases and optionally the highlighted article.
func Write(p *Printer, articleURL string, resp *analysis.Response, opts Options) error {
	if resp == nil {
		return fmt.Errorf("no analysis to report")
	}

	p.Header(headlineOrURL(resp, articleURL))
	fmt.Fprintf(p.out, "%s\n", articleURL)

	if !resp.HasMediaScore() {
		p.Warning("The service returned no media score for this article")
	} else {
		scores := score.FromMediaScore(resp.MediaScore)
		composite := scores.Composite()
		tone := score.ToneFor(composite)
		fmt.Fprintf(p.out, "\nMedia Unmasked Score: %s %s\n",
			p.paint(fmt.Sprintf("%.0f%%", composite), toneAttrs(tone)...),
			p.Bold(score.Rating(composite)))
		if reported, ok := score.ReportedFor(resp.MediaScore); ok {
			fmt.Fprintf(p.out, "Service score: %s\n", reported)
		}

		p.Header("Score Breakdown")
		table := NewTable(p.out, []string{"Lens", "Raw", "Quality", "Weight", "Contribution", "Band"})
		for _, line := range score.Breakdown(scores) {
			table.AddRow([]string{
				line.Lens.Title(),
				fmt.Sprintf("%.1f", line.Raw),
				fmt.Sprintf("%.1f", line.Quality),
				fmt.Sprintf("%.0f%%", line.Weight*100),
				fmt.Sprintf("%.2f", line.Contribution),
				p.paint(line.Band.Label, toneAttrs(line.Tone)...),
			})
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("render breakdown: %w", err)
		}
	}

	if resp.Bias != "" || resp.Sentiment != "" {
		p.Header("Overview")
		if resp.Bias != "" {
			fmt.Fprintf(p.out, "Bias: %s\n", resp.Bias)
		}
		if resp.Sentiment != "" {
			fmt.Fprintf(p.out, "Sentiment: %s\n", resp.Sentiment)
		}
	}

	for _, lens := range score.Lenses {
		phrases := highlight.PhrasesFor(resp, lens)
		if len(phrases) == 0 {
			continue
		}
		p.Header("Flagged: " + lens.Title())
		for _, phrase := range phrases {
			fmt.Fprintf(p.out, "  • %s\n", phrase)
		}
	}

	if opts.Lens != score.LensNone || opts.ShowArticle {
		text := highlight.Clean(resp.Content)
		if text != "" {
			title := "Article"
			if opts.Lens != score.LensNone {
				title += " (" + opts.Lens.Title() + ")"
			}
			p.Header(title)
			spans := highlight.Annotate(text, opts.Lens, highlight.SourcesFor(resp, opts.Lens))
			writeSegments(p, highlight.Segments(text, spans))
			fmt.Fprintln(p.out)
		}
	}

	return nil
}

// writeSegments prints highlighted segments in color, or bracketed when
// colors are off
func writeSegments(p *Printer, segs []highlight.Segment) {
	for _, seg := range segs {
		switch {
		case !seg.Highlighted():
			fmt.Fprint(p.out, seg.Text)
		case p.useColors:
			attrs := []color.Attribute{color.BgYellow, color.FgBlack}
			if seg.Depth > 1 {
				attrs = append(attrs, color.Bold)
			}
			fmt.Fprint(p.out, color.New(attrs...).Sprint(seg.Text))
		default:
			fmt.Fprint(p.out, "["+seg.Text+"]")
		}
	}
}

func toneAttrs(t score.Tone) []color.Attribute {
	switch t {
	case score.ToneGood:
		return []color.Attribute{color.FgGreen}
	case score.ToneFair:
		return []color.Attribute{color.FgYellow}
	default:
		return []color.Attribute{color.FgRed}
	}
}

func headlineOrURL(resp *analysis.Response, articleURL string) string {
	if h := strings.TrimSpace(resp.Headline); h != "" {
		return h
	}
	return articleURL
}

// WriteJSON writes the raw response as indented JSON
func WriteJSON(w io.Writer, resp *analysis.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Summary is the plain-text digest copied to the clipboard
func Summary(articleURL string, resp *analysis.Response) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Media Unmasked analysis: %s\n", headlineOrURL(resp, articleURL))
	if articleURL != "" {
		fmt.Fprintf(&b, "%s\n", articleURL)
	}

	if resp.HasMediaScore() {
		scores := score.FromMediaScore(resp.MediaScore)
		composite := scores.Composite()
		fmt.Fprintf(&b, "\nScore: %.0f%% (%s)\n", composite, score.Rating(composite))
		if reported, ok := score.ReportedFor(resp.MediaScore); ok {
			fmt.Fprintf(&b, "Service score: %s\n", reported)
		}
		for _, line := range score.Breakdown(scores) {
			fmt.Fprintf(&b, "- %s: %.0f%% %s\n", line.Lens.Title(), line.Quality, line.Band.Label)
		}
	} else {
		b.WriteString("\nNo media score available.\n")
	}

	if resp.Bias != "" {
		fmt.Fprintf(&b, "\nBias: %s\n", resp.Bias)
	}
	if len(resp.FlaggedPhrases) > 0 {
		fmt.Fprintf(&b, "Flagged phrases: %s\n", strings.Join(resp.FlaggedPhrases, "; "))
	}

	return strings.TrimRight(b.String(), "\n")
}
