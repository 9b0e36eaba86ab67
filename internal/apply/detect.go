package apply

// Category is a semantic form-field class on an application page.
type Category string

const (
	CategoryName        Category = "name"
	CategoryEmail       Category = "email"
	CategoryPhone       Category = "phone"
	CategoryLinkedIn    Category = "linkedin"
	CategoryWebsite     Category = "website"
	CategoryGitHub      Category = "github"
	CategoryCoverLetter Category = "cover_letter"
	CategoryOtherText   Category = "other_text"
)

// fillOrder is the order categories are considered when filling. Detection
// itself is order-independent; this keeps runs deterministic.
var fillOrder = []Category{
	CategoryName,
	CategoryEmail,
	CategoryPhone,
	CategoryLinkedIn,
	CategoryWebsite,
	CategoryGitHub,
	CategoryCoverLetter,
	CategoryOtherText,
}

// fieldMatchers maps each category to its ordered selector probes. One
// declarative table, one generic loop; order within a category is
// declaration order, not DOM order.
var fieldMatchers = []struct {
	Category  Category
	Selectors []string
}{
	{CategoryName, []string{
		`input[name*="name"]`, `input[id*="name"]`, `input[placeholder*="name"]`,
		`input[name*="full-name"]`, `input[id*="full-name"]`, `input[placeholder*="full-name"]`,
		`input[name*="fullname"]`, `input[id*="fullname"]`, `input[placeholder*="fullname"]`,
		`input[name*="first-name"]`, `input[id*="first-name"]`, `input[placeholder*="first-name"]`,
		`input[name*="last-name"]`, `input[id*="last-name"]`, `input[placeholder*="last-name"]`,
	}},
	{CategoryEmail, []string{
		`input[type="email"]`, `input[name*="email"]`, `input[id*="email"]`,
	}},
	{CategoryPhone, []string{
		`input[type="tel"]`, `input[name*="phone"]`, `input[id*="phone"]`,
	}},
	{CategoryLinkedIn, []string{
		`input[name*="linkedin"]`, `input[id*="linkedin"]`,
	}},
	{CategoryWebsite, []string{
		`input[name*="website"]`, `input[name*="portfolio"]`, `input[id*="website"]`,
	}},
	{CategoryGitHub, []string{
		`input[name*="github"]`, `input[id*="github"]`,
	}},
	{CategoryCoverLetter, []string{
		`textarea[name*="cover"]`, `textarea[name*="letter"]`, `textarea`,
	}},
	{CategoryOtherText, nil},
}

// DetectFields probes the matcher table against the live page and collects
// every selector that currently matches, keyed by category. Pure read; no
// matches for a category is a normal outcome. A probe error counts as a
// non-match rather than failing detection.
func DetectFields(p Page) map[Category][]string {
	detected := make(map[Category][]string)
	for _, m := range fieldMatchers {
		for _, sel := range m.Selectors {
			ok, err := p.Exists(sel)
			if err != nil || !ok {
				continue
			}
			detected[m.Category] = append(detected[m.Category], sel)
		}
	}
	return detected
}
