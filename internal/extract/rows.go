package extract

import (
	"bufio"
	"sort"
	"strings"
)

// GroupRows clusters one page's tokens into rows by vertical position.
//
// The pass is deliberately single-pass and order-sensitive: the first token
// encountered at a new Y becomes that row's reference coordinate, and every
// later token is compared against the existing row keys only. Re-clustering
// globally would give marginally tighter bands but would not reproduce the
// same rows for the same input order, so it is not done.
func GroupRows(tokens []Token, tolerance float64) []Row {
	var rows []Row

	for _, tok := range tokens {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}

		placed := false
		for i := range rows {
			if abs(rows[i].Y-tok.Y) <= tolerance {
				rows[i].Tokens = append(rows[i].Tokens, tok)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, Row{Page: tok.Page, Y: tok.Y, Tokens: []Token{tok}})
		}
	}

	// Top-to-bottom: PDF coordinate origin is bottom-left, so larger Y first.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Y > rows[j].Y
	})
	for i := range rows {
		toks := rows[i].Tokens
		sort.SliceStable(toks, func(a, b int) bool {
			return toks[a].X < toks[b].X
		})
	}

	return rows
}

// RowsFromPages groups every page's tokens and concatenates the row
// sequences in page order.
func RowsFromPages(pages [][]Token, tolerance float64) []Row {
	var rows []Row
	for _, page := range pages {
		rows = append(rows, GroupRows(page, tolerance)...)
	}
	return rows
}

// RowsFromLines re-derives rows from line-oriented text, the degraded input
// mode where no coordinates are available: one line is one row, fragment
// order stands in for X and a descending line counter stands in for Y.
//
// The returned error reports a scan abort; the rows read up to that point
// are still returned. The line buffer is sized to the input, so a single
// oversized line cannot trip the scanner's default token limit and silently
// truncate the document.
func RowsFromLines(text string) ([]Row, error) {
	var rows []Row

	y := float64(0)
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(text)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		y--
		if line == "" {
			continue
		}

		row := Row{Page: 1, Y: y}
		for i, field := range strings.Split(line, "\t") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			row.Tokens = append(row.Tokens, Token{Text: field, X: float64(i), Y: y, Page: 1})
		}
		rows = append(rows, row)
	}

	return rows, scanner.Err()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
