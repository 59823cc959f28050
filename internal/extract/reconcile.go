package extract

import (
	"strconv"
	"strings"
)

// Reconciler is the fallback pass for the degenerate extraction mode where
// the four columns come back as independent, un-rowed fragment streams. It
// rebuilds record tuples by aligning the streams against the section's
// reference record count instead of stitching rows.
type Reconciler struct {
	strat *Strategy
}

// NewReconciler returns a reconciler using the given strategy.
func NewReconciler(strat *Strategy) *Reconciler {
	return &Reconciler{strat: strat}
}

// fieldStreams are the per-role fragment sequences of one section, in
// section order and irrespective of row grouping.
type fieldStreams struct {
	names      []string
	categories []string
	emails     []string
	phones     []string
}

func (r *Reconciler) collect(sec Section) fieldStreams {
	var fs fieldStreams
	for _, row := range sec.Rows {
		for _, tok := range row.Tokens {
			text := strings.TrimSpace(tok.Text)
			switch Classify(text, r.strat) {
			case RoleName:
				fs.names = append(fs.names, text)
			case RoleCategory:
				fs.categories = append(fs.categories, text)
			case RoleEmail:
				fs.emails = append(fs.emails, text)
			case RolePhone:
				fs.phones = append(fs.phones, text)
			}
		}
	}
	return fs
}

// ReconcileSection aligns the section's four field streams into raw record
// tuples. The category stream length is the reference record count; when the
// section declares a trailer count that disagrees, the declared count wins
// and the disagreement is surfaced as a diagnostic, never resolved silently.
func (r *Reconciler) ReconcileSection(sec Section) ([]RawRecord, []Diagnostic) {
	fs := r.collect(sec)
	var diags []Diagnostic

	ref := len(fs.categories)
	if sec.HasDeclared && sec.DeclaredCount != ref {
		diags = append(diags, Diagnostic{
			Region: sec.Region,
			Code:   DiagCountMismatch,
			Detail: "declared " + strconv.Itoa(sec.DeclaredCount) + " records, category stream has " + strconv.Itoa(ref),
		})
		ref = sec.DeclaredCount
	}
	if ref == 0 {
		return nil, diags
	}

	names := r.alignNames(fs.names, ref)
	emails := r.alignEmails(fs.emails, names, ref)

	records := make([]RawRecord, ref)
	for i := 0; i < ref; i++ {
		if i < len(names) {
			records[i].Name = names[i]
		}
		if i < len(fs.categories) {
			records[i].Category = fs.categories[i]
		}
		records[i].Email = emails[i]
		if i < len(fs.phones) {
			records[i].Phone = fs.phones[i]
		}
	}

	return records, diags
}

// alignNames merges adjacent short entries until the stream fits the
// reference count. A pair is merged when the first entry is short and the
// follower is not itself category-, email- or phone-shaped, which is the
// signature of a name split across two fragments.
func (r *Reconciler) alignNames(names []string, ref int) []string {
	out := make([]string, len(names))
	copy(out, names)

	for len(out) > ref {
		merged := false
		for i := 0; i+1 < len(out); i++ {
			if len([]rune(out[i])) >= r.strat.ShortNameMax {
				continue
			}
			next := out[i+1]
			if IsCategoryCandidate(next, r.strat) || IsEmailCandidate(next) || IsPhoneCandidate(next) {
				continue
			}
			out[i] = out[i] + " " + next
			out = append(out[:i+1], out[i+2:]...)
			merged = true
			break
		}
		if !merged {
			break
		}
	}

	return out
}

// alignEmails places each email by matching its local part against nearby
// candidate names within a small forward window. Unmatched emails drop to
// the nearest unfilled slot rather than being discarded.
func (r *Reconciler) alignEmails(emails, names []string, ref int) []string {
	out := make([]string, ref)

	for k, email := range emails {
		slot := -1

		local := email
		if at := strings.Index(email, "@"); at >= 0 {
			local = email[:at]
		}
		prefix := fold(local)
		if n := r.strat.EmailMatchPrefix; len(prefix) > n {
			prefix = prefix[:n]
		}

		start := k
		if start >= ref {
			start = ref - 1
		}
		for j := start; j <= start+r.strat.EmailMatchWindow && j < ref; j++ {
			if out[j] != "" || j >= len(names) {
				continue
			}
			if prefix != "" && strings.Contains(fold(names[j]), prefix) {
				slot = j
				break
			}
		}

		if slot < 0 {
			slot = nearestUnfilled(out, start)
		}
		if slot >= 0 {
			out[slot] = email
		}
	}

	return out
}

// nearestUnfilled returns the unfilled slot closest to from, or -1.
func nearestUnfilled(out []string, from int) int {
	for d := 0; d < len(out); d++ {
		if i := from - d; i >= 0 && i < len(out) && out[i] == "" {
			return i
		}
		if i := from + d; i >= 0 && i < len(out) && out[i] == "" {
			return i
		}
	}
	return -1
}

