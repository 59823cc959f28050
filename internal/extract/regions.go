package extract

// provinceZones maps each province of the report to its geographic zone.
// Keys are folded (lowercase, diacritics stripped); lookups fall back to the
// province name itself when unmapped.
var provinceZones = map[string]string{
	"pinar del rio":        "Occidente",
	"artemisa":             "Occidente",
	"la habana":            "Occidente",
	"mayabeque":            "Occidente",
	"matanzas":             "Occidente",
	"isla de la juventud":  "Occidente",
	"villa clara":          "Centro",
	"cienfuegos":           "Centro",
	"sancti spiritus":      "Centro",
	"ciego de avila":       "Centro",
	"camaguey":             "Centro",
	"las tunas":            "Oriente",
	"holguin":              "Oriente",
	"granma":               "Oriente",
	"santiago de cuba":     "Oriente",
	"guantanamo":           "Oriente",
}

// SubregionFor returns the zone for a region name, or the region itself when
// no mapping exists.
func SubregionFor(region string) string {
	if zone, ok := provinceZones[fold(normalizeSpace(region))]; ok {
		return zone
	}
	return normalizeSpace(region)
}
