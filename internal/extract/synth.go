package extract

import (
	"fmt"
	"net/url"
	"strings"
)

// Synthesizer cleans, validates and enriches raw field tuples into final
// records.
type Synthesizer struct {
	strat *Strategy
}

// NewSynthesizer returns a synthesizer using the given strategy.
func NewSynthesizer(strat *Strategy) *Synthesizer {
	return &Synthesizer{strat: strat}
}

// Synthesize turns a raw tuple plus its region context into a final record.
// The second return value is false when the record is dropped; that happens
// only for an unusable name. Malformed contact fields degrade to empty
// strings instead.
func (s *Synthesizer) Synthesize(raw RawRecord, region string) (Record, bool) {
	name := normalizeSpace(raw.Name)
	if len([]rune(name)) < 2 {
		return Record{}, false
	}

	category := normalizeSpace(raw.Category)
	if category == "" {
		category = s.strat.DefaultCategory
	}

	email := extractEmail(raw.Email)
	phone := extractPhone(raw.Phone)

	region = normalizeSpace(region)
	rec := Record{
		Name:           name,
		Category:       category,
		Email:          email,
		Phone:          phone,
		Region:         region,
		Subregion:      SubregionFor(region),
		Description:    s.describe(name, category, region),
		MapURL:         mapSearchURL(name, region),
		ContactChannel: s.contactChannel(phone),
		Source:         s.strat.SourceLabel,
	}
	return rec, true
}

// extractEmail keeps the first well-formed address and discards any
// remainder left over from stitching.
func extractEmail(raw string) string {
	return emailRx.FindString(strings.TrimSpace(raw))
}

// extractPhone strips separators and keeps the first 7-8 digit run. A slash
// separates two distinct numbers, so only the first segment is considered:
// stripping the slash first would fuse digits of both numbers into a value
// that is neither. The final value contains only digits.
func extractPhone(raw string) string {
	first, _, _ := strings.Cut(raw, "/")
	stripped := strings.NewReplacer("-", "", " ", "").Replace(first)
	return digitRunRx.FindString(stripped)
}

// contactChannel derives a dialable number by re-adding the country prefix
// when the digit count and leading digit match the local mobile pattern.
// Fixed lines are not dialable from abroad without an area code the report
// does not carry, so anything else yields an empty channel.
func (s *Synthesizer) contactChannel(phone string) string {
	if len(phone) == s.strat.MobileDigits && phone[0] == s.strat.MobileLeading {
		return s.strat.CountryPrefix + phone
	}
	return ""
}

func (s *Synthesizer) describe(name, category, region string) string {
	return fmt.Sprintf("%s es un alojamiento de tipo %s en la provincia %s, Cuba.",
		name, strings.ToLower(category), region)
}

func mapSearchURL(name, region string) string {
	query := url.QueryEscape(name + " " + region)
	return "https://www.google.com/maps/search/?api=1&query=" + query
}
