package extract

// CompoundCategory is a two-word modalidad that the source layout splits
// across rows ("Hostal" on one row, "Familiar" on the next).
type CompoundCategory struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// Strategy externalizes every tuning knob of the reconstruction heuristics
// as data. Layout drift in the published report should land here, not in
// code.
type Strategy struct {
	// Row grouping
	RowTolerance float64 `json:"row_tolerance"`

	// Lexical classification
	CategoryLexicon    []string           `json:"category_lexicon"`
	CompoundCategories []CompoundCategory `json:"compound_categories"`
	ColumnHeaders      []string           `json:"column_headers"`
	NoiseMarkers       []string           `json:"noise_markers"`
	RegionMarker       string             `json:"region_marker"`
	TrailerMarker      string             `json:"trailer_marker"`

	// Column reconciliation
	ShortNameMax     int `json:"short_name_max"`
	EmailMatchWindow int `json:"email_match_window"`
	EmailMatchPrefix int `json:"email_match_prefix"`

	// Record synthesis
	CountryPrefix   string `json:"country_prefix"`
	MobileDigits    int    `json:"mobile_digits"`
	MobileLeading   byte   `json:"mobile_leading"`
	DefaultCategory string `json:"default_category"`
	SourceLabel     string `json:"source_label"`
}

// DefaultStrategy returns the strategy tuned to the published four-column
// registro de alojamientos layout.
func DefaultStrategy() *Strategy {
	return &Strategy{
		RowTolerance: 2.0,

		CategoryLexicon: []string{
			"hotel",
			"hostal",
			"albergue",
			"posada",
			"resort",
			"bungalow",
			"cabaña",
			"campismo",
			"sitio de acampar",
			"hostal familiar",
			"casa particular",
			"villa",
			"motel",
			"aparthotel",
		},
		CompoundCategories: []CompoundCategory{
			{First: "Hostal", Second: "Familiar"},
			{First: "Sitio de", Second: "acampar"},
		},
		ColumnHeaders: []string{
			"Nombre",
			"Modalidad",
			"Correo Principal",
			"Teléfono",
		},
		NoiseMarkers: []string{
			"Página",
			"Actualizado al",
			"Directorio Nacional de Alojamientos",
			"Ministerio de Turismo",
		},
		RegionMarker:  "Provincia:",
		TrailerMarker: "Total por provincia:",

		ShortNameMax:     20,
		EmailMatchWindow: 2,
		EmailMatchPrefix: 4,

		CountryPrefix:   "+53",
		MobileDigits:    8,
		MobileLeading:   '5',
		DefaultCategory: "Alojamiento",
		SourceLabel:     "registro-alojamientos",
	}
}

// compoundSecond returns the matching second half when category is a known
// compound first half.
func (s *Strategy) compoundSecond(category string) (string, bool) {
	for _, c := range s.CompoundCategories {
		if foldEqual(category, c.First) {
			return c.Second, true
		}
	}
	return "", false
}
