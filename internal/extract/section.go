package extract

// Section is the row span belonging to one administrative region, bounded by
// a region header and (usually) a "Total por provincia" trailer.
type Section struct {
	Region        string
	DeclaredCount int
	HasDeclared   bool
	Rows          []Row
}

// SplitSections walks the global row sequence once and delimits it into
// per-region sections. Region state is explicit and threaded forward across
// page boundaries; a trailing open section at stream end is closed without a
// trailer. A section with a header and zero data rows is valid.
func SplitSections(rows []Row, strat *Strategy) []Section {
	var (
		sections []Section
		current  Section
		open     bool
	)

	for _, row := range rows {
		text := row.Text()

		if region, ok := ParseRegionHeader(text, strat); ok {
			if open {
				sections = append(sections, current)
			}
			current = Section{Region: region}
			open = true
			continue
		}

		if count, ok := ParseSectionTrailer(text, strat); ok {
			if open {
				current.DeclaredCount = count
				current.HasDeclared = true
				sections = append(sections, current)
			}
			current = Section{}
			open = false
			continue
		}

		if open {
			current.Rows = append(current.Rows, row)
		}
	}

	if open {
		sections = append(sections, current)
	}

	return sections
}
