package extract

import (
	"fmt"
	"strconv"
)

// Extraction run statuses. Callers use these to decide whether to keep
// previously-known-good data instead of replacing it with an empty set.
const (
	StatusNoInput = "no_input"
	StatusEmpty   = "empty_extraction"
	StatusPartial = "partial_extraction"
	StatusOK      = "ok"
)

// Diagnostic codes.
const (
	DiagCountMismatch  = "count_mismatch"
	DiagMissingTrailer = "missing_trailer"
	DiagNameRejected   = "name_rejected"
	DiagReconciled     = "reconciled"
	DiagInputTruncated = "input_truncated"
)

// Diagnostic records a non-fatal condition observed while processing one
// section. Diagnostics never abort the run.
type Diagnostic struct {
	Region string `json:"region"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// Result is the immutable outcome of one extraction run.
type Result struct {
	Records     []Record     `json:"records"`
	Status      string       `json:"status"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Sections    int          `json:"sections"`
}

// Engine runs the full reconstruction pipeline: rows, sections, row
// stitching with reconciliation fallback, synthesis.
type Engine struct {
	strat      *Strategy
	resolver   *Resolver
	reconciler *Reconciler
	synth      *Synthesizer
}

// NewEngine creates an engine with the default strategy.
func NewEngine() *Engine {
	return NewEngineWithStrategy(DefaultStrategy())
}

// NewEngineWithStrategy creates an engine with a custom strategy.
func NewEngineWithStrategy(strat *Strategy) *Engine {
	return &Engine{
		strat:      strat,
		resolver:   NewResolver(strat),
		reconciler: NewReconciler(strat),
		synth:      NewSynthesizer(strat),
	}
}

// ExtractPages reconstructs records from an ordered-by-page sequence of
// token lists.
func (e *Engine) ExtractPages(pages [][]Token) *Result {
	total := 0
	for _, p := range pages {
		total += len(p)
	}
	if total == 0 {
		return &Result{Status: StatusNoInput}
	}
	return e.extractRows(RowsFromPages(pages, e.strat.RowTolerance))
}

// ExtractLines reconstructs records from line-oriented text, the degraded
// input mode without positions. A scan abort is recorded as an
// input_truncated diagnostic over whatever rows were recovered: input that
// was provided must never report as no_input.
func (e *Engine) ExtractLines(text string) *Result {
	rows, err := RowsFromLines(text)
	if len(rows) == 0 && err == nil {
		return &Result{Status: StatusNoInput}
	}

	result := e.extractRows(rows)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Code:   DiagInputTruncated,
			Detail: err.Error(),
		})
		result.Status = StatusPartial + ": input truncated after " + strconv.Itoa(len(rows)) + " rows"
	}
	return result
}

func (e *Engine) extractRows(rows []Row) *Result {
	sections := SplitSections(rows, e.strat)

	result := &Result{Sections: len(sections)}
	dirty := map[string]bool{}

	for _, sec := range sections {
		raws, diags := e.extractSection(sec)
		for _, raw := range raws {
			rec, ok := e.synth.Synthesize(raw, sec.Region)
			if !ok {
				diags = append(diags, Diagnostic{
					Region: sec.Region,
					Code:   DiagNameRejected,
					Detail: fmt.Sprintf("dropped tuple %q / %q", raw.Name, raw.Category),
				})
				continue
			}
			result.Records = append(result.Records, rec)
		}
		if len(diags) > 0 {
			dirty[sec.Region] = true
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	switch {
	case len(result.Records) == 0 && len(result.Diagnostics) == 0:
		result.Status = StatusEmpty
	case len(dirty) > 0:
		result.Status = StatusPartial + ": " + strconv.Itoa(len(dirty)) + " sections had diagnostics"
	default:
		result.Status = StatusOK
	}

	return result
}

// extractSection runs the row-based resolver and falls back to the column
// reconciler when the row signal is insufficient: either the rows are
// degenerate (un-rowed single-fragment streams) or the resolved count
// contradicts the trailer and the reconciler can honor it.
func (e *Engine) extractSection(sec Section) ([]RawRecord, []Diagnostic) {
	var diags []Diagnostic
	if !sec.HasDeclared && len(sec.Rows) > 0 {
		diags = append(diags, Diagnostic{Region: sec.Region, Code: DiagMissingTrailer})
	}

	if e.rowsDegenerate(sec) {
		recon, rdiags := e.reconciler.ReconcileSection(sec)
		return recon, append(diags, rdiags...)
	}

	raws := e.resolver.ResolveSection(sec)
	if !sec.HasDeclared || len(raws) == sec.DeclaredCount {
		return raws, diags
	}

	recon, rdiags := e.reconciler.ReconcileSection(sec)
	if len(recon) == sec.DeclaredCount {
		diags = append(diags, Diagnostic{
			Region: sec.Region,
			Code:   DiagReconciled,
			Detail: fmt.Sprintf("row stitching produced %d of %d declared records", len(raws), sec.DeclaredCount),
		})
		return recon, append(diags, rdiags...)
	}

	// Neither pass honors the trailer; keep the row-based result and flag
	// the disagreement rather than resolving it silently.
	diags = append(diags, Diagnostic{
		Region: sec.Region,
		Code:   DiagCountMismatch,
		Detail: fmt.Sprintf("declared %d records, resolved %d", sec.DeclaredCount, len(raws)),
	})
	return raws, diags
}

// rowsDegenerate reports whether a section's rows look like four un-rowed
// column streams instead of aligned rows: almost every row then carries a
// single classified fragment.
func (e *Engine) rowsDegenerate(sec Section) bool {
	if len(sec.Rows) < 4 {
		return false
	}
	multi := 0
	for _, row := range sec.Rows {
		roles := 0
		for _, tok := range row.Tokens {
			if Classify(tok.Text, e.strat) != RoleNoise {
				roles++
			}
		}
		if roles > 1 {
			multi++
		}
	}
	return multi*4 < len(sec.Rows)
}
