package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
	"github.com/mediaunmasked/media-unmasked/internal/score"
)

const articleURL = "https://www.bbc.com/news/articles/example"

func sampleResponse(t *testing.T) *analysis.Response {
	t.Helper()
	body := `{
	  "headline": "Council approves budget",
	  "content": "The council &amp; mayor approved the budget. According to officials, 40% goes to schools.",
	  "sentiment": "Neutral",
	  "bias": "Center",
	  "flagged_phrases": ["approved the budget"],
	  "media_score": {
	    "media_unmasked_score": 80,
	    "rating": "Highly Trustworthy",
	    "details": {
	      "headline_analysis": {"headline_vs_content_score": 90, "contradictory_phrases": []},
	      "evidence_analysis": {"evidence_based_score": 60, "flagged_phrases": ["officials"]},
	      "sentiment_analysis": {"manipulation_score": 20, "flagged_phrases": []},
	      "bias_analysis": {"bias": "Center", "bias_percentage": 10}
	    }
	  }
	}`
	var resp analysis.Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestWrite(t *testing.T) {
	var out, errw bytes.Buffer
	p := NewPrinter(&out, &errw, false)

	require.NoError(t, Write(p, articleURL, sampleResponse(t), Options{}))

	got := out.String()
	assert.Contains(t, got, "Council approves budget")
	assert.Contains(t, got, articleURL)
	assert.Contains(t, got, "Media Unmasked Score: 80% Highly Trustworthy")
	assert.Contains(t, got, "Excellent Match")
	assert.Contains(t, got, "Good Evidence")
	assert.Contains(t, got, "Minimal Manipulation")
	assert.Contains(t, got, "Minimal Bias")
	assert.Contains(t, got, "Bias: Center")
	assert.Contains(t, got, "• officials")
	assert.NotContains(t, got, "Article")
	assert.Empty(t, errw.String())
}

func TestWriteHighlightsArticle(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, false)

	require.NoError(t, Write(p, articleURL, sampleResponse(t), Options{Lens: score.LensEvidence}))

	got := out.String()
	assert.Contains(t, got, "Article (Evidence-Based Reporting)")
	assert.Contains(t, got, "The council & mayor")
	assert.Contains(t, got, "[According to] [officials]")
	assert.Contains(t, got, "[40%]")
}

func TestWriteWithoutMediaScore(t *testing.T) {
	var out, errw bytes.Buffer
	p := NewPrinter(&out, &errw, false)

	resp := &analysis.Response{Headline: "Pending", Content: "Body"}
	require.NoError(t, Write(p, articleURL, resp, Options{ShowArticle: true}))

	assert.Contains(t, errw.String(), "[WARN] The service returned no media score")
	assert.NotContains(t, out.String(), "Score Breakdown")
	assert.Contains(t, out.String(), "Body")

	assert.Error(t, Write(p, articleURL, nil, Options{}))
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteJSON(&out, sampleResponse(t)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Council approves budget", decoded["headline"])
	assert.Contains(t, decoded, "media_score")
}

func TestSummary(t *testing.T) {
	got := Summary(articleURL, sampleResponse(t))

	lines := strings.Split(got, "\n")
	assert.Equal(t, "Media Unmasked analysis: Council approves budget", lines[0])
	assert.Contains(t, got, "Score: 80% (Highly Trustworthy)")
	assert.Contains(t, got, "- Headline Analysis: 90% Excellent Match")
	assert.Contains(t, got, "- Bias Analysis: 90% Minimal Bias")
	assert.Contains(t, got, "Flagged phrases: approved the budget")
	assert.False(t, strings.HasSuffix(got, "\n"))

	assert.Empty(t, Summary(articleURL, nil))
	assert.Contains(t, Summary(articleURL, &analysis.Response{}), "No media score available.")
}

// divergingResponse carries a service rating that disagrees with the
// composite of its own sub-scores
func divergingResponse(t *testing.T) *analysis.Response {
	t.Helper()
	body := `{
	  "headline": "Officials deny report",
	  "content": "Officials denied the report.",
	  "media_score": {
	    "media_unmasked_score": 85,
	    "rating": "Highly Trustworthy",
	    "details": {
	      "headline_analysis": {"headline_vs_content_score": 20},
	      "evidence_analysis": {"evidence_based_score": 20},
	      "sentiment_analysis": {"manipulation_score": 80},
	      "bias_analysis": {"bias": "Right", "bias_percentage": 80}
	    }
	  }
	}`
	var resp analysis.Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestWriteLabelsCompositeWithItsOwnRating(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, false)

	require.NoError(t, Write(p, articleURL, divergingResponse(t), Options{}))

	got := out.String()
	assert.Contains(t, got, "Media Unmasked Score: 20% Potentially Misleading")
	assert.Contains(t, got, "Service score: 85% Highly Trustworthy")
	assert.NotContains(t, got, "20% Highly Trustworthy")
}

func TestSummaryLabelsCompositeWithItsOwnRating(t *testing.T) {
	got := Summary(articleURL, divergingResponse(t))

	assert.Contains(t, got, "Score: 20% (Potentially Misleading)")
	assert.Contains(t, got, "Service score: 85% Highly Trustworthy")
	assert.NotContains(t, got, "(Highly Trustworthy)")
}

func TestPrinterInfo(t *testing.T) {
	var out, errw bytes.Buffer
	p := NewPrinter(&out, &errw, false)

	p.Info("Analyzing %s", articleURL)
	assert.Equal(t, "Analyzing "+articleURL+"\n", out.String())
	assert.Empty(t, errw.String())
}

func TestResolveColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColors(true))
}
