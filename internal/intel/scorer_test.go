package intel

import (
	"math"
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		resume        string
		job           string
		expected      float64
		wantRationale string
	}{
		{
			name:          "partial overlap",
			resume:        "Worked with Python and SQL on reporting pipelines",
			job:           "Looking for Python, AWS and Docker experience",
			expected:      100.0 / 3,
			wantRationale: "python",
		},
		{
			name:          "empty job description",
			resume:        "Python, SQL",
			job:           "",
			expected:      50.0,
			wantRationale: "No direct skill matches found",
		},
		{
			name:          "job keywords but empty resume",
			resume:        "",
			job:           "Python and Kubernetes required",
			expected:      0.0,
			wantRationale: "Limited technical alignment",
		},
		{
			name:          "full overlap",
			resume:        "Python, AWS, Docker",
			job:           "Python, AWS, Docker",
			expected:      100.0,
			wantRationale: "Strong technical alignment",
		},
		{
			name:          "moderate overlap",
			resume:        "python sql",
			job:           "python sql aws docker",
			expected:      50.0,
			wantRationale: "Moderate technical alignment",
		},
		{
			name:          "no technical content anywhere",
			resume:        "I enjoy gardening",
			job:           "Looking for a friendly team player",
			expected:      50.0,
			wantRationale: "Moderate technical alignment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, rationale := Score(tt.resume, tt.job)
			if math.Abs(score-tt.expected) > 0.1 {
				t.Errorf("got score %.1f, want %.1f", score, tt.expected)
			}
			if score < 0 || score > 100 {
				t.Errorf("score %.1f out of range [0,100]", score)
			}
			if !strings.Contains(rationale, tt.wantRationale) {
				t.Errorf("rationale %q does not contain %q", rationale, tt.wantRationale)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	found := ExtractKeywords("Built REST APIs in Python with PostgreSQL and Docker")
	want := map[string]bool{"python": true, "docker": true, "postgresql": true, "rest": true, "api": true}
	for _, kw := range found {
		delete(want, kw)
	}
	if len(want) > 0 {
		t.Errorf("missing keywords: %v (got %v)", want, found)
	}

	if kws := ExtractKeywords(""); kws != nil {
		t.Errorf("expected no keywords for empty text, got %v", kws)
	}
}

func TestScoreRationaleListsAtMostTen(t *testing.T) {
	text := "python java javascript c++ tensorflow pytorch pandas numpy sql aws gcp azure docker kubernetes"
	_, rationale := Score(text, text)
	if count := strings.Count(rationale, ","); count > 10 {
		t.Errorf("rationale lists too many keywords: %q", rationale)
	}
}
