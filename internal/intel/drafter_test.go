package intel

import (
	"strings"
	"testing"
	"unicode/utf8"

	"autocareer/internal/models"
)

func TestFallbackLetter(t *testing.T) {
	job := &models.Job{Title: "ML Engineer", Company: "Acme Robotics"}
	profile := &models.Profile{Name: "Jordan Diaz", Skills: "Python, PyTorch, MLOps"}

	letter := FallbackLetter(job, profile)

	for _, want := range []string{"Jordan Diaz", "Acme Robotics", "ML Engineer", "Python, PyTorch, MLOps"} {
		if !strings.Contains(letter, want) {
			t.Errorf("letter missing %q:\n%s", want, letter)
		}
	}
}

func TestFallbackLetterPlaceholders(t *testing.T) {
	letter := FallbackLetter(nil, nil)

	for _, want := range []string{"the company", "the position", "Candidate"} {
		if !strings.Contains(letter, want) {
			t.Errorf("letter missing placeholder %q:\n%s", want, letter)
		}
	}
}

func TestFallbackLetterSkillsKeepRunesIntact(t *testing.T) {
	// A two-byte rune straddles the 100-byte mark; the excerpt must cut on a
	// rune boundary, not mid-byte.
	skills := strings.Repeat("a", 99) + "émbedded systems, c++"
	profile := &models.Profile{Name: "A", Skills: skills}

	letter := FallbackLetter(&models.Job{}, profile)

	if !utf8.ValidString(letter) {
		t.Error("letter contains invalid UTF-8")
	}
	if !strings.Contains(letter, strings.Repeat("a", 99)+"é") {
		t.Error("skills excerpt lost the boundary rune")
	}
}

func TestFallbackLetterTruncatesSkills(t *testing.T) {
	long := strings.Repeat("python, ", 50)
	profile := &models.Profile{Name: "A", Skills: long}

	letter := FallbackLetter(&models.Job{}, profile)

	if strings.Contains(letter, long) {
		t.Error("skills excerpt was not truncated")
	}
	if !strings.Contains(letter, long[:100]) {
		t.Error("letter missing skills excerpt")
	}
}
