package intel

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vocabulary is the fixed set of technical keywords used for overlap scoring.
var vocabulary = []string{
	"python", "java", "javascript", "c++", "machine learning", "deep learning",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "sql", "nosql",
	"aws", "gcp", "azure", "docker", "kubernetes", "git", "nlp", "computer vision",
	"data science", "statistics", "algorithms", "distributed systems", "api",
	"rest", "graphql", "react", "node.js", "typescript", "mongodb", "postgresql",
	"neural networks", "transformers", "llm", "bert", "gpt", "reinforcement learning",
	"hadoop", "spark", "kafka", "redis", "elasticsearch", "airflow", "mlops",
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// ExtractKeywords returns the vocabulary terms present in text, in vocabulary
// order. Case-insensitive substring match.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}
	lower := normalizeText(text)
	var found []string
	for _, kw := range vocabulary {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// Score computes the keyword-overlap fit score between a resume and a job
// text. Total function: every input yields a score in [0,100] and a rationale.
//
// No job keywords means insufficient signal, scored neutral at 50. Job
// keywords with no resume keywords scores 0. Otherwise the score is
// 100 * |intersection| / |job keywords|, capped at 100.
func Score(resumeText, jobText string) (float64, string) {
	resumeKeywords := ExtractKeywords(resumeText)
	jobKeywords := ExtractKeywords(jobText)

	var score float64
	var matching []string
	switch {
	case len(jobKeywords) == 0:
		score = 50.0
	case len(resumeKeywords) == 0:
		score = 0.0
	default:
		resumeSet := make(map[string]bool, len(resumeKeywords))
		for _, kw := range resumeKeywords {
			resumeSet[kw] = true
		}
		for _, kw := range jobKeywords {
			if resumeSet[kw] {
				matching = append(matching, kw)
			}
		}
		score = float64(len(matching)) / float64(len(jobKeywords)) * 100
		if score > 100 {
			score = 100
		}
	}

	rationale := fmt.Sprintf("Keyword overlap score: %.1f/100. ", score)
	if len(matching) > 0 {
		shown := matching
		if len(shown) > 10 {
			shown = shown[:10]
		}
		rationale += fmt.Sprintf("Matching skills: %s. ", strings.Join(shown, ", "))
	} else {
		rationale += "No direct skill matches found. "
	}

	switch {
	case score > 70:
		rationale += "Strong technical alignment."
	case score > 40:
		rationale += "Moderate technical alignment."
	default:
		rationale += "Limited technical alignment."
	}

	return score, rationale
}
