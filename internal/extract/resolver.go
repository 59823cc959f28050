package extract

import "strings"

// rowSegments is one row's token texts merged per role. Same-role fragments
// are joined with a single space, except email fragments, which the
// extractor sometimes splits mid-string with spurious whitespace and which
// are therefore abutted.
type rowSegments struct {
	name     string
	category string
	email    string
	phone    string
}

func (rs rowSegments) empty() bool {
	return rs.name == "" && rs.category == "" && rs.email == "" && rs.phone == ""
}

// segmentRow classifies every token of a row and merges same-role fragments.
func segmentRow(row Row, strat *Strategy) rowSegments {
	var rs rowSegments
	for _, tok := range row.Tokens {
		text := strings.TrimSpace(tok.Text)
		switch Classify(text, strat) {
		case RoleName:
			rs.name = joinSpace(rs.name, text)
		case RoleCategory:
			rs.category = joinSpace(rs.category, text)
		case RoleEmail:
			rs.email += text
		case RolePhone:
			rs.phone = joinSpace(rs.phone, text)
		}
	}
	return rs
}

func joinSpace(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// Resolver is the row-by-row state machine that decides whether a row
// continues the open record or starts a new one. The modalidad column is the
// primary delimiter: every true record carries exactly one category token
// sequence, while names and contact fields are frequently empty or split.
type Resolver struct {
	strat *Strategy
}

// NewResolver returns a resolver using the given strategy.
func NewResolver(strat *Strategy) *Resolver {
	return &Resolver{strat: strat}
}

// ResolveSection consumes a section's rows and produces its raw record
// tuples in document order. Any record still open at section end is flushed.
func (r *Resolver) ResolveSection(sec Section) []RawRecord {
	var (
		records []RawRecord
		open    RawRecord
		hasOpen bool
	)

	for _, row := range sec.Rows {
		rs := segmentRow(row, r.strat)
		if rs.empty() {
			// Noise-only row; state unchanged.
			continue
		}

		if !hasOpen {
			open = newRecord(rs)
			hasOpen = true
			continue
		}

		if r.continues(open, rs) {
			open = r.merge(open, rs)
			continue
		}

		records = append(records, open)
		open = newRecord(rs)
	}

	if hasOpen {
		records = append(records, open)
	}

	return records
}

func newRecord(rs rowSegments) RawRecord {
	return RawRecord{Name: rs.name, Category: rs.category, Email: rs.email, Phone: rs.phone}
}

// continues decides whether the row belongs to the open record.
func (r *Resolver) continues(open RawRecord, rs rowSegments) bool {
	// Second half of a split two-word modalidad. The half usually lands in
	// the name position because it is not itself a lexicon term.
	if second, ok := r.strat.compoundSecond(open.Category); ok {
		if foldEqual(rs.category, second) || foldEqual(rs.name, second) {
			return true
		}
	}

	// No category at all: names and contact fields spill onto follow-up
	// rows, the modalidad never does.
	if rs.category == "" {
		return true
	}

	// Dangling email: open record's address is present but has no complete
	// domain yet and this row carries the remainder.
	if open.Email != "" && !IsCompleteEmail(open.Email) && rs.email != "" {
		return true
	}

	// Dangling phone: a trailing hyphen or slash announces more digits.
	if danglingPhone(open.Phone) && rs.phone != "" {
		return true
	}

	return false
}

func danglingPhone(phone string) bool {
	return strings.HasSuffix(phone, "-") || strings.HasSuffix(phone, "/")
}

// merge folds a continuation row into the open record.
func (r *Resolver) merge(open RawRecord, rs rowSegments) RawRecord {
	if second, ok := r.strat.compoundSecond(open.Category); ok {
		if foldEqual(rs.category, second) {
			open.Category = open.Category + " " + rs.category
			rs.category = ""
		} else if foldEqual(rs.name, second) {
			open.Category = open.Category + " " + rs.name
			rs.name = ""
		}
	}

	// Tail fragments of split contact fields land in the name position
	// because they are not themselves email- or phone-shaped ("nauta.cu", a
	// bare "4521"). Reroute them before the name join.
	if open.Email != "" && !IsCompleteEmail(open.Email) && rs.email == "" && rs.name != "" &&
		IsCompleteEmail(open.Email+rs.name) {
		open.Email += rs.name
		rs.name = ""
	}
	if rs.phone == "" && rs.name != "" && danglingPhone(open.Phone) && digitGroupRx.MatchString(rs.name) {
		rs.phone = rs.name
		rs.name = ""
	}

	open.Name = joinSpace(open.Name, rs.name)
	open.Category = joinSpace(open.Category, rs.category)

	// Email fragments are never space-joined.
	open.Email += rs.email

	if rs.phone != "" {
		switch {
		case strings.HasSuffix(open.Phone, "-"):
			// Drop the hyphen and abut the digits.
			open.Phone = strings.TrimSuffix(open.Phone, "-") + rs.phone
		case strings.HasSuffix(open.Phone, "/"):
			// Keep a separating space: a second distinct number for the
			// same record.
			open.Phone = open.Phone + " " + rs.phone
		default:
			open.Phone = joinSpace(open.Phone, rs.phone)
		}
	}

	return open
}
