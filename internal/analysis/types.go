package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Score is a numeric sub-score that tolerates the shapes the analysis
// service has emitted over time: plain numbers, numeric strings, and
// percentage strings such as "85%".
type Score float64

// UnmarshalJSON implements custom JSON unmarshaling for Score
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Score(f)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("unable to parse score: %s", string(data))
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	if str == "" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return fmt.Errorf("unable to parse score: %s", string(data))
	}
	*s = Score(f)
	return nil
}

// Float returns the score as a float64
func (s Score) Float() float64 {
	return float64(s)
}

// Request is the body sent to the analyze endpoint
type Request struct {
	URL   string `json:"url" validate:"required,url"`
	UseAI bool   `json:"use_ai,omitempty"`
}

// Response is the analysis of a single article as returned by the service.
// MediaScore is nil when the service has not produced a score yet.
type Response struct {
	Headline       string      `json:"headline"`
	Content        string      `json:"content"`
	Sentiment      string      `json:"sentiment"`
	Bias           string      `json:"bias"`
	FlaggedPhrases []string    `json:"flagged_phrases"`
	MediaScore     *MediaScore `json:"media_score,omitempty"`
}

// HasMediaScore reports whether the response carries a usable media score
func (r *Response) HasMediaScore() bool {
	return r != nil && r.MediaScore != nil
}

// MediaScore is the composite rating plus the four sub-analyses
type MediaScore struct {
	MediaUnmaskedScore Score   `json:"media_unmasked_score"`
	Rating             string  `json:"rating"`
	Details            Details `json:"details"`
}

// Details groups the four sub-analyses
type Details struct {
	HeadlineAnalysis  HeadlineAnalysis  `json:"headline_analysis"`
	EvidenceAnalysis  EvidenceAnalysis  `json:"evidence_analysis"`
	SentimentAnalysis SentimentAnalysis `json:"sentiment_analysis"`
	BiasAnalysis      BiasAnalysis      `json:"bias_analysis"`
}

// HeadlineAnalysis compares the headline against the article body
type HeadlineAnalysis struct {
	HeadlineVsContentScore Score    `json:"headline_vs_content_score"`
	ContradictoryPhrases   []string `json:"contradictory_phrases"`
}

// EvidenceAnalysis rates how well the article backs its claims
type EvidenceAnalysis struct {
	EvidenceBasedScore Score    `json:"evidence_based_score"`
	FlaggedPhrases     []string `json:"flagged_phrases,omitempty"`
}

// SentimentAnalysis rates manipulative language
type SentimentAnalysis struct {
	ManipulationScore Score    `json:"manipulation_score"`
	FlaggedPhrases    []string `json:"flagged_phrases"`
}

// BiasAnalysis carries the detected lean. Older service versions sent a
// fractional confidence_score instead of bias_percentage.
type BiasAnalysis struct {
	Bias            string `json:"bias"`
	BiasPercentage  *Score `json:"bias_percentage,omitempty"`
	ConfidenceScore *Score `json:"confidence_score,omitempty"`
}

// Percentage returns the bias strength on a 0-100 scale. bias_percentage
// wins when present; a confidence_score within [0,1] is scaled by 100.
// Values are never clamped.
func (b BiasAnalysis) Percentage() float64 {
	if b.BiasPercentage != nil {
		return b.BiasPercentage.Float()
	}
	if b.ConfidenceScore != nil {
		c := b.ConfidenceScore.Float()
		if c >= 0 && c <= 1 {
			return c * 100
		}
		return c
	}
	return 0
}
