// Package score turns the four sub-analysis scores of a media score into
// the composite value and the qualitative labels shown to the user.
//
// Headline and evidence scores are "higher is better"; manipulation and bias
// are "lower is better". Every band and tone is computed on the quality
// value, which flips the lower-is-better lenses to 100-raw. That is the same
// inversion the composite applies, so raw bias 0 is good and raw bias 100 is
// poor everywhere in the UI.
package score

import (
	"fmt"
	"strings"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
)

// Weight is the share each sub-analysis contributes to the composite
const Weight = 0.25

// Lens identifies one sub-analysis, or none
type Lens int

const (
	LensNone Lens = iota
	LensHeadline
	LensEvidence
	LensManipulation
	LensBias
)

// Lenses lists the four sub-analyses in display order
var Lenses = []Lens{LensHeadline, LensEvidence, LensManipulation, LensBias}

func (l Lens) String() string {
	switch l {
	case LensHeadline:
		return "headline"
	case LensEvidence:
		return "evidence"
	case LensManipulation:
		return "manipulation"
	case LensBias:
		return "bias"
	default:
		return "none"
	}
}

// Title is the heading used on score cards
func (l Lens) Title() string {
	switch l {
	case LensHeadline:
		return "Headline Analysis"
	case LensEvidence:
		return "Evidence-Based Reporting"
	case LensManipulation:
		return "Manipulation Detection"
	case LensBias:
		return "Bias Analysis"
	default:
		return "No Lens"
	}
}

// ParseLens parses the name returned by String
func ParseLens(s string) (Lens, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LensNone, nil
	case "headline":
		return LensHeadline, nil
	case "evidence":
		return LensEvidence, nil
	case "manipulation":
		return LensManipulation, nil
	case "bias":
		return LensBias, nil
	}
	return LensNone, fmt.Errorf("unknown lens %q", s)
}

// Direction says which end of a raw score is good
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Direction returns how raw values of this lens are read
func (l Lens) Direction() Direction {
	switch l {
	case LensManipulation, LensBias:
		return LowerIsBetter
	default:
		return HigherIsBetter
	}
}

// Quality maps a raw score to the higher-is-better scale. Values are not
// clamped.
func Quality(l Lens, raw float64) float64 {
	if l.Direction() == LowerIsBetter {
		return 100 - raw
	}
	return raw
}

// Scores holds the four raw sub-scores as sent by the service
type Scores struct {
	Headline     float64
	Evidence     float64
	Manipulation float64
	Bias         float64
}

// FromMediaScore extracts the four raw sub-scores
func FromMediaScore(ms *analysis.MediaScore) Scores {
	if ms == nil {
		return Scores{}
	}
	d := ms.Details
	return Scores{
		Headline:     d.HeadlineAnalysis.HeadlineVsContentScore.Float(),
		Evidence:     d.EvidenceAnalysis.EvidenceBasedScore.Float(),
		Manipulation: d.SentimentAnalysis.ManipulationScore.Float(),
		Bias:         d.BiasAnalysis.Percentage(),
	}
}

// Raw returns the raw score for a lens
func (s Scores) Raw(l Lens) float64 {
	switch l {
	case LensHeadline:
		return s.Headline
	case LensEvidence:
		return s.Evidence
	case LensManipulation:
		return s.Manipulation
	case LensBias:
		return s.Bias
	default:
		return 0
	}
}

// Composite is the equally weighted mean of the four quality values
func (s Scores) Composite() float64 {
	return Composite(s.Headline, s.Evidence, s.Manipulation, s.Bias)
}

// Composite computes 0.25*h + 0.25*e + 0.25*(100-m) + 0.25*(100-b).
// Out-of-range inputs pass straight through.
func Composite(headline, evidence, manipulation, bias float64) float64 {
	return Weight*headline + Weight*evidence + Weight*(100-manipulation) + Weight*(100-bias)
}

// Rating labels a composite score
func Rating(composite float64) string {
	switch {
	case composite >= 80:
		return "Highly Trustworthy"
	case composite >= 50:
		return "Some Bias Present"
	default:
		return "Potentially Misleading"
	}
}

// Reported is the overall score and rating as the service sent them. The
// service weighs the sub-analyses differently from Composite, so its rating
// only ever labels its own score.
type Reported struct {
	Score  float64
	Rating string
}

// ReportedFor extracts the service's overall score; ok is false when the
// service sent neither a score nor a rating
func ReportedFor(ms *analysis.MediaScore) (Reported, bool) {
	if ms == nil {
		return Reported{}, false
	}
	rating := strings.TrimSpace(ms.Rating)
	if rating == "" && ms.MediaUnmaskedScore == 0 {
		return Reported{}, false
	}
	return Reported{Score: ms.MediaUnmaskedScore.Float(), Rating: rating}, true
}

func (r Reported) String() string {
	if r.Rating == "" {
		return fmt.Sprintf("%.0f%%", r.Score)
	}
	return fmt.Sprintf("%.0f%% %s", r.Score, r.Rating)
}
