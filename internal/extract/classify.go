package extract

import (
	"regexp"
	"strings"
)

// Role labels a text fragment by the column or marker it belongs to.
type Role int

const (
	RoleNoise Role = iota
	RoleName
	RoleCategory
	RoleEmail
	RolePhone
	RoleRegionHeader
	RoleSectionTrailer
)

// String returns the string representation of a Role.
func (r Role) String() string {
	switch r {
	case RoleName:
		return "name"
	case RoleCategory:
		return "category"
	case RoleEmail:
		return "email"
	case RolePhone:
		return "phone"
	case RoleRegionHeader:
		return "region_header"
	case RoleSectionTrailer:
		return "section_trailer"
	default:
		return "noise"
	}
}

const minNameLength = 4

var (
	// Complete address: local part, "@", domain with a dot and a suffix of
	// at least two characters.
	emailRx = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	completeEmailRx = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

	// 3-4 digit groups repeated 2-3 times with space/hyphen/slash
	// separators, or a bare 7-8 digit run. A trailing hyphen or slash marks
	// a value split across rows and is accepted here.
	phoneRx = regexp.MustCompile(`^(\d{3,4}([ \-/]\d{3,4}){1,2}|\d{7,8}|\d{3,4}([ \-/]\d{3,4})*[\-/]|\d{7,8}[\-/])$`)

	digitRunRx   = regexp.MustCompile(`\d{7,8}`)
	digitGroupRx = regexp.MustCompile(`^[\d \-/]+$`)

	// The declared count abuts the marker: directly before it with no gap
	// (the common layout, "27Total por provincia:") or directly after it.
	// A digit run further away belongs to something else, like a page
	// number merged into the same row.
	trailerLeadRx = regexp.MustCompile(`(\d+)$`)
	trailerTailRx = regexp.MustCompile(`^\s*(\d+)`)
)

// ParseRegionHeader reports whether the fragment is a region header and, if
// so, returns the region name. The source either concatenates the name with
// the marker or puts the marker first, so whatever surrounds the marker is
// taken as the name.
func ParseRegionHeader(s string, strat *Strategy) (string, bool) {
	idx := strings.Index(s, strat.RegionMarker)
	if idx < 0 {
		return "", false
	}
	region := normalizeSpace(s[:idx] + " " + s[idx+len(strat.RegionMarker):])
	return region, true
}

// ParseSectionTrailer reports whether the fragment is a section trailer and,
// if so, returns the declared record count for the section just ending. Only
// a count adjacent to the marker qualifies.
func ParseSectionTrailer(s string, strat *Strategy) (int, bool) {
	idx := strings.Index(s, strat.TrailerMarker)
	if idx < 0 {
		return 0, false
	}
	var digits string
	if m := trailerLeadRx.FindStringSubmatch(s[:idx]); m != nil {
		digits = m[1]
	} else if m := trailerTailRx.FindStringSubmatch(s[idx+len(strat.TrailerMarker):]); m != nil {
		digits = m[1]
	}
	if digits == "" {
		return 0, false
	}
	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	return n, true
}

// IsEmailCandidate reports whether the fragment looks like (part of) an
// email address.
func IsEmailCandidate(s string) bool {
	return strings.Contains(s, "@")
}

// IsCompleteEmail reports whether the fragment is one well-formed email
// address on its own.
func IsCompleteEmail(s string) bool {
	return completeEmailRx.MatchString(strings.TrimSpace(s))
}

// IsPhoneCandidate reports whether the fragment matches the digit-grouping
// patterns used in the Teléfono column.
func IsPhoneCandidate(s string) bool {
	return phoneRx.MatchString(strings.TrimSpace(s))
}

// IsCategoryCandidate reports whether the fragment contains a term from the
// modalidad lexicon. The first half of a known compound ("Sitio de") counts
// as a category on its own so that a split compound still opens in the
// category column.
func IsCategoryCandidate(s string, strat *Strategy) bool {
	for _, term := range strat.CategoryLexicon {
		if foldContains(s, term) {
			return true
		}
	}
	for _, c := range strat.CompoundCategories {
		if foldEqual(s, c.First) {
			return true
		}
	}
	return false
}

// isColumnHeader reports whether the fragment equals one of the four column
// header literals.
func isColumnHeader(s string, strat *Strategy) bool {
	for _, h := range strat.ColumnHeaders {
		if foldEqual(s, h) {
			return true
		}
	}
	return false
}

// isNoiseMarker reports whether the fragment belongs to the page chrome:
// report title, "Página N de M", "Actualizado al ...".
func isNoiseMarker(s string, strat *Strategy) bool {
	for _, m := range strat.NoiseMarkers {
		if foldContains(s, m) {
			return true
		}
	}
	return false
}

// Classify labels one text fragment. Pure function, no state.
func Classify(s string, strat *Strategy) Role {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleNoise
	}
	if _, ok := ParseRegionHeader(s, strat); ok {
		return RoleRegionHeader
	}
	if _, ok := ParseSectionTrailer(s, strat); ok {
		return RoleSectionTrailer
	}
	if isColumnHeader(s, strat) || isNoiseMarker(s, strat) {
		return RoleNoise
	}
	if IsEmailCandidate(s) {
		return RoleEmail
	}
	if IsPhoneCandidate(s) {
		return RolePhone
	}
	if IsCategoryCandidate(s, strat) {
		return RoleCategory
	}
	if len([]rune(s)) >= minNameLength {
		return RoleName
	}
	return RoleNoise
}
