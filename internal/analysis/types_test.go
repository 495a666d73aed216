package analysis

import (
	"encoding/json"
	"testing"
)

func TestScoreUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: `85`, want: 85},
		{name: "float", input: `72.5`, want: 72.5},
		{name: "numeric string", input: `"64"`, want: 64},
		{name: "percentage string", input: `"85%"`, want: 85},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "out of range passes through", input: `140`, want: 140},
		{name: "garbage", input: `"high"`, wantErr: true},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Float() != tt.want {
				t.Errorf("got %v, want %v", s.Float(), tt.want)
			}
		})
	}
}

func TestBiasPercentage(t *testing.T) {
	score := func(f float64) *Score {
		s := Score(f)
		return &s
	}

	tests := []struct {
		name string
		bias BiasAnalysis
		want float64
	}{
		{name: "percentage", bias: BiasAnalysis{BiasPercentage: score(35)}, want: 35},
		{name: "percentage wins", bias: BiasAnalysis{BiasPercentage: score(35), ConfidenceScore: score(0.9)}, want: 35},
		{name: "fractional confidence", bias: BiasAnalysis{ConfidenceScore: score(0.4)}, want: 40},
		{name: "confidence already percent", bias: BiasAnalysis{ConfidenceScore: score(40)}, want: 40},
		{name: "confidence exactly one", bias: BiasAnalysis{ConfidenceScore: score(1)}, want: 100},
		{name: "missing", bias: BiasAnalysis{Bias: "Neutral"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bias.Percentage(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponseWithoutMediaScore(t *testing.T) {
	var resp Response
	body := `{"headline":"h","content":"c","sentiment":"Neutral","bias":"Neutral","flagged_phrases":[]}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.HasMediaScore() {
		t.Error("expected no media score")
	}

	var nilResp *Response
	if nilResp.HasMediaScore() {
		t.Error("nil response should not report a media score")
	}
}
