package score

// Band is one of five ordinal labels. Rank 0 is the best band.
type Band struct {
	Label string
	Rank  int
}

// bandLabels are ordered best to worst for thresholds 80/60/40/20
var bandLabels = map[Lens][5]string{
	LensHeadline:     {"Excellent Match", "Fair Match", "Partial Match", "Poor Match", "Misleading"},
	LensEvidence:     {"Strong Evidence", "Good Evidence", "Moderate Evidence", "Weak Evidence", "Unsupported"},
	LensManipulation: {"Minimal Manipulation", "Low Manipulation", "Moderate Manipulation", "High Manipulation", "Extreme Manipulation"},
	LensBias:         {"Minimal Bias", "Slight Bias", "Moderate Bias", "Strong Bias", "Extreme Bias"},
}

func bandRank(quality float64) int {
	switch {
	case quality >= 80:
		return 0
	case quality >= 60:
		return 1
	case quality >= 40:
		return 2
	case quality >= 20:
		return 3
	default:
		return 4
	}
}

// BandFor labels a raw score of the given lens. Lower bounds are inclusive.
func BandFor(l Lens, raw float64) Band {
	rank := bandRank(Quality(l, raw))
	labels, ok := bandLabels[l]
	if !ok {
		return Band{Rank: rank}
	}
	return Band{Label: labels[rank], Rank: rank}
}

// Tone is the color class of a quality value
type Tone int

const (
	ToneGood Tone = iota
	ToneFair
	TonePoor
)

func (t Tone) String() string {
	switch t {
	case ToneGood:
		return "good"
	case ToneFair:
		return "fair"
	default:
		return "poor"
	}
}

// ToneFor classifies a quality value
func ToneFor(quality float64) Tone {
	switch {
	case quality >= 80:
		return ToneGood
	case quality >= 50:
		return ToneFair
	default:
		return TonePoor
	}
}

// Line is one row of the score breakdown
type Line struct {
	Lens         Lens
	Raw          float64
	Quality      float64
	Weight       float64
	Contribution float64
	Band         Band
	Tone         Tone
}

// Breakdown explains the composite per lens. The contributions sum to
// Scores.Composite.
func Breakdown(s Scores) []Line {
	lines := make([]Line, 0, len(Lenses))
	for _, l := range Lenses {
		raw := s.Raw(l)
		q := Quality(l, raw)
		lines = append(lines, Line{
			Lens:         l,
			Raw:          raw,
			Quality:      q,
			Weight:       Weight,
			Contribution: Weight * q,
			Band:         BandFor(l, raw),
			Tone:         ToneFor(q),
		})
	}
	return lines
}
