package intel

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	scoreRe     = regexp.MustCompile(`SCORE:\s*(\d+(?:\.\d+)?)`)
	rationaleRe = regexp.MustCompile(`(?s)RATIONALE:\s*(.+)`)
)

// parseScoreResponse extracts the SCORE and RATIONALE lines from a model
// response. ok is false when either is missing, which sends the caller to
// the deterministic fallback.
func parseScoreResponse(content string) (score float64, rationale string, ok bool) {
	sm := scoreRe.FindStringSubmatch(content)
	rm := rationaleRe.FindStringSubmatch(content)
	if sm == nil || rm == nil {
		return 0, "", false
	}

	score, err := strconv.ParseFloat(sm[1], 64)
	if err != nil {
		return 0, "", false
	}

	//clamp to [0,100]
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score, strings.TrimSpace(rm[1]), true
}
