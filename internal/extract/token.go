package extract

import "strings"

// Token is one positioned text fragment as reported by page-text extraction.
// Tokens are never mutated after construction, only consumed.
type Token struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Page int     `json:"page"`
}

// Row is an ordered sequence of tokens judged to share one vertical band on
// one page, sorted left-to-right.
type Row struct {
	Page   int
	Y      float64
	Tokens []Token
}

// Text joins the row's token texts left-to-right with single spaces.
func (r Row) Text() string {
	parts := make([]string, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		s := strings.TrimSpace(t.Text)
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// RawRecord is an unvalidated field tuple produced per record slot, before
// synthesis.
type RawRecord struct {
	Name     string
	Category string
	Email    string
	Phone    string
}

// Record is a final, validated lodging record. Immutable once emitted.
type Record struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Region         string `json:"region"`
	Subregion      string `json:"subregion"`
	Description    string `json:"description"`
	MapURL         string `json:"map_url"`
	ContactChannel string `json:"contact_channel"`
	Source         string `json:"source"`
}
