// Package codes holds the static conversion tables applied during line-item
// extraction: origin-country codes (3-letter source form to ISO 3166-1
// alpha-2) and unit-of-measure abbreviations (source-language to canonical).
// Lookups are case-insensitive on trimmed input; unknown codes pass through
// unchanged so unrecognized values surface downstream instead of vanishing.
package codes

import "strings"

// Conversion is the outcome of a table lookup. Unknown inputs keep the
// normalized original with Known=false, so callers can tell a mapped code
// from a passthrough without consulting the table themselves.
type Conversion struct {
	Code  string
	Known bool
}

// countryCodes maps 3-letter origin codes from the source system to
// ISO 3166-1 alpha-2.
var countryCodes = map[string]string{
	"MEX": "MX", // Mexico
	"USA": "US", // United States
	"CAN": "CA", // Canada
	"CHN": "CN", // China
	"JPN": "JP", // Japan
	"DEU": "DE", // Germany
	"GBR": "GB", // United Kingdom
	"FRA": "FR", // France
	"ITA": "IT", // Italy
	"ESP": "ES", // Spain
	"BRA": "BR", // Brazil
	"IND": "IN", // India
	"KOR": "KR", // South Korea
	"TWN": "TW", // Taiwan
	"THA": "TH", // Thailand
	"VNM": "VN", // Vietnam
	"MYS": "MY", // Malaysia
	"SGP": "SG", // Singapore
	"IDN": "ID", // Indonesia
	"PHL": "PH", // Philippines
}

// unitCodes maps Spanish unit-of-measure abbreviations to their canonical
// English form.
var unitCodes = map[string]string{
	"PZS": "PCS", // piezas
	"PZA": "PCS", // pieza
	"KGS": "KG",  // kilogramos
	"KGM": "KG",  // kilogramo
	"LBS": "LB",  // libras
	"MTS": "M",   // metros
	"MTR": "M",   // metro
	"LTS": "L",   // litros
	"LTR": "L",   // litro
	"UNI": "EA",  // unidad
	"CAJ": "CS",  // cajas
	"PAR": "PR",  // pares
}

// Country converts an origin-country code to its 2-letter ISO form.
// Two-letter inputs are already ISO and pass through as known.
func Country(raw string) Conversion {
	code := normalize(raw)
	if code == "" {
		return Conversion{}
	}
	if len(code) == 2 {
		return Conversion{Code: code, Known: true}
	}
	if mapped, ok := countryCodes[code]; ok {
		return Conversion{Code: mapped, Known: true}
	}
	return Conversion{Code: code}
}

// Unit converts a unit-of-measure abbreviation to its canonical form.
func Unit(raw string) Conversion {
	code := normalize(raw)
	if code == "" {
		return Conversion{}
	}
	if mapped, ok := unitCodes[code]; ok {
		return Conversion{Code: mapped, Known: true}
	}
	return Conversion{Code: code}
}

// ConvertCountry is the plain-string form of Country.
func ConvertCountry(raw string) string {
	return Country(raw).Code
}

// ConvertUnit is the plain-string form of Unit.
func ConvertUnit(raw string) string {
	return Unit(raw).Code
}

func normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
