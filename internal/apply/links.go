package apply

import "strings"

// ProfileLinks are the candidate URLs resolved from a profile's
// comma-separated link list.
type ProfileLinks struct {
	LinkedIn string
	GitHub   string
	Website  string
}

// ResolveLinks classifies each link by domain substring. Anything matching
// neither linkedin nor github is treated as the personal website; the first
// hit per slot wins.
func ResolveLinks(links string) ProfileLinks {
	var resolved ProfileLinks
	for _, raw := range strings.Split(links, ",") {
		link := strings.TrimSpace(raw)
		if link == "" {
			continue
		}
		lower := strings.ToLower(link)
		switch {
		case strings.Contains(lower, "linkedin"):
			if resolved.LinkedIn == "" {
				resolved.LinkedIn = link
			}
		case strings.Contains(lower, "github"):
			if resolved.GitHub == "" {
				resolved.GitHub = link
			}
		default:
			if resolved.Website == "" {
				resolved.Website = link
			}
		}
	}
	return resolved
}
