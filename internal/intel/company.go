package intel

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const companyContextLimit = 5000

// CompanyFetcher scrapes freeform text from a company site to enrich
// cover-letter generation. Failures never block drafting; the caller treats
// an error as "no context".
type CompanyFetcher struct {
	httpClient *http.Client
}

func NewCompanyFetcher() *CompanyFetcher {
	return &CompanyFetcher{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchForJobURL fetches context from the origin of a job posting URL.
func (f *CompanyFetcher) FetchForJobURL(jobURL string) (string, error) {
	parsed, err := url.Parse(jobURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid job url %q", jobURL)
	}
	return f.Fetch(parsed.Scheme + "://" + parsed.Host)
}

// Fetch downloads the page and extracts visible text, capped at 5000 chars.
func (f *CompanyFetcher) Fetch(siteURL string) (string, error) {
	req, err := http.NewRequest("GET", siteURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", siteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned status %d", siteURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", siteURL, err)
	}

	doc.Find("script, style").Remove()

	var lines []string
	for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return truncate(strings.Join(lines, "\n"), companyContextLimit), nil
}
