package extract

// Search returns the records whose name, description, region or category
// contain the query, compared case- and accent-insensitively. A pure filter:
// no index, no caching.
func Search(records []Record, query string) []Record {
	q := fold(normalizeSpace(query))
	if q == "" {
		return records
	}
	var out []Record
	for _, rec := range records {
		if foldContains(rec.Name, q) || foldContains(rec.Description, q) ||
			foldContains(rec.Region, q) || foldContains(rec.Category, q) {
			out = append(out, rec)
		}
	}
	return out
}

// ByRegion returns the records of one region, matched exactly.
func ByRegion(records []Record, region string) []Record {
	var out []Record
	for _, rec := range records {
		if foldEqual(rec.Region, region) {
			out = append(out, rec)
		}
	}
	return out
}

// ByCategory returns the records of one category, matched exactly.
func ByCategory(records []Record, category string) []Record {
	var out []Record
	for _, rec := range records {
		if foldEqual(rec.Category, category) {
			out = append(out, rec)
		}
	}
	return out
}
