package jobs

import (
	"strings"
	"unicode/utf8"
)

// Profile holds the profile fields that feed the embedding text.
type Profile struct {
	DisplayName string
	Bio         string
	LookingFor  []string
	Interests   []string
}

// EmbeddingText joins the non-empty profile parts with ". ".
// List fields are joined with ", " first.
func (p Profile) EmbeddingText() string {
	parts := []string{
		p.DisplayName,
		p.Bio,
		strings.Join(p.LookingFor, ", "),
		strings.Join(p.Interests, ", "),
	}

	nonEmpty := parts[:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	return strings.Join(nonEmpty, ". ")
}

// textLen counts characters, not bytes.
func textLen(s string) int {
	return utf8.RuneCountInString(s)
}
