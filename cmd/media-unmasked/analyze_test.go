package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestAnalyze_PrintsReport(t *testing.T) {
	fs := setupCLITest(t)

	out, _, err := run(t, "analyze", "www.reuters.com/world/budget")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, want := range []string{
		"Analyzing https://www.reuters.com/world/budget",
		"Council approves budget",
		"https://www.reuters.com/world/budget",
		"Media Unmasked Score: 80% Highly Trustworthy",
		"Score Breakdown",
		"Good Evidence",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	calls := fs.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 request, got %d", len(calls))
	}
	if calls[0]["url"] != "https://www.reuters.com/world/budget" {
		t.Errorf("expected normalized URL, got %v", calls[0]["url"])
	}
	if _, ok := calls[0]["use_ai"]; ok {
		t.Errorf("use_ai is off in the default config, got %v", calls[0]["use_ai"])
	}
}

func TestAnalyze_AIFlagOverridesConfig(t *testing.T) {
	fs := setupCLITest(t)
	t.Setenv("MEDIA_UNMASKED_USE_AI", "true")

	if _, _, err := run(t, "analyze", "--ai=false", "https://www.bbc.com/news/1"); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	resetFlags(analyzeCmd, "ai")
	if _, _, err := run(t, "analyze", "https://www.bbc.com/news/2"); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	calls := fs.calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(calls))
	}
	if _, ok := calls[0]["use_ai"]; ok {
		t.Errorf("--ai=false should win over config, got %v", calls[0]["use_ai"])
	}
	if calls[1]["use_ai"] != true {
		t.Errorf("without --ai the config value applies, got %v", calls[1]["use_ai"])
	}
}

func TestAnalyze_JSON(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "analyze", "--json", "https://apnews.com/article/x")
	if err != nil {
		t.Fatalf("analyze --json failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if decoded["headline"] != "Council approves budget" {
		t.Errorf("unexpected headline %v", decoded["headline"])
	}
}

func TestAnalyze_LensHighlightsArticle(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "analyze", "--lens", "evidence", "https://apnews.com/article/x")
	if err != nil {
		t.Fatalf("analyze --lens failed: %v", err)
	}
	if !strings.Contains(out, "[According to] officials") {
		t.Errorf("expected evidence highlights in article:\n%s", out)
	}
	if !strings.Contains(out, "[40%]") {
		t.Errorf("expected percentage highlighted:\n%s", out)
	}
}

func TestAnalyze_UnknownLens(t *testing.T) {
	fs := setupCLITest(t)

	_, _, err := run(t, "analyze", "--lens", "tone", "https://apnews.com/article/x")
	if err == nil || !strings.Contains(err.Error(), "tone") {
		t.Fatalf("expected unknown lens error, got %v", err)
	}
	if n := len(fs.calls()); n != 0 {
		t.Errorf("no request expected, got %d", n)
	}
}

func TestAnalyze_UnrecognizedSource(t *testing.T) {
	fs := setupCLITest(t)

	_, _, err := run(t, "analyze", "https://blog.example.org/post")
	if err == nil {
		t.Fatal("expected an unrecognized source error")
	}
	if !strings.Contains(err.Error(), "example.org") || !strings.Contains(err.Error(), "--no-validate") {
		t.Errorf("unexpected error: %v", err)
	}
	if n := len(fs.calls()); n != 0 {
		t.Errorf("unrecognized sources must not reach the service, got %d requests", n)
	}

	resetFlags(analyzeCmd, "no-validate")
	if _, _, err := run(t, "analyze", "--no-validate", "https://blog.example.org/post"); err != nil {
		t.Fatalf("--no-validate should allow any URL: %v", err)
	}
	if n := len(fs.calls()); n != 1 {
		t.Errorf("expected 1 request with --no-validate, got %d", n)
	}
}

func TestAnalyze_ServiceError(t *testing.T) {
	fs := setupCLITest(t)
	fs.status = http.StatusUnprocessableEntity
	fs.body = `{"detail":"Could not extract article content"}`

	_, _, err := run(t, "analyze", "https://www.cnn.com/2025/story")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Could not extract article content") {
		t.Errorf("expected the service detail in the error, got %v", err)
	}
}

func TestAnalyze_EmptyURL(t *testing.T) {
	setupCLITest(t)

	if _, _, err := run(t, "analyze", "   "); err == nil {
		t.Fatal("expected an error for a blank URL")
	}
}
