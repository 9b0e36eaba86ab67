package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLinks(t *testing.T) {
	tests := []struct {
		name  string
		links string
		want  ProfileLinks
	}{
		{
			name:  "all three kinds",
			links: "https://linkedin.com/in/jordan, https://github.com/jordan, https://jordan.dev",
			want: ProfileLinks{
				LinkedIn: "https://linkedin.com/in/jordan",
				GitHub:   "https://github.com/jordan",
				Website:  "https://jordan.dev",
			},
		},
		{
			name:  "first hit per slot wins",
			links: "https://github.com/a,https://github.com/b",
			want:  ProfileLinks{GitHub: "https://github.com/a"},
		},
		{
			name:  "case insensitive matching",
			links: "https://www.LinkedIn.com/in/sam",
			want:  ProfileLinks{LinkedIn: "https://www.LinkedIn.com/in/sam"},
		},
		{
			name:  "unknown domain becomes website",
			links: "https://samwrites.io/blog",
			want:  ProfileLinks{Website: "https://samwrites.io/blog"},
		},
		{
			name:  "whitespace and empty entries ignored",
			links: " , https://github.com/x ,  ",
			want:  ProfileLinks{GitHub: "https://github.com/x"},
		},
		{
			name:  "empty input",
			links: "",
			want:  ProfileLinks{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLinks(tt.links))
		})
	}
}
