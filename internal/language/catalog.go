package language

import "sort"

// Universal is the bridge/pivot language code. Every provider pair that
// cannot be served directly is routed through it.
const Universal = "en"

// catalog maps the 23 supported language codes (22 regional + English)
// to display names.
var catalog = map[string]string{
	"as":  "Assamese",
	"bn":  "Bengali",
	"brx": "Bodo",
	"doi": "Dogri",
	"en":  "English",
	"gu":  "Gujarati",
	"hi":  "Hindi",
	"kn":  "Kannada",
	"kok": "Konkani",
	"ks":  "Kashmiri",
	"mai": "Maithili",
	"ml":  "Malayalam",
	"mni": "Manipuri",
	"mr":  "Marathi",
	"ne":  "Nepali",
	"or":  "Odia",
	"pa":  "Punjabi",
	"sa":  "Sanskrit",
	"sat": "Santali",
	"sd":  "Sindhi",
	"ta":  "Tamil",
	"te":  "Telugu",
	"ur":  "Urdu",
}

// DefaultFallback is the catalog's most common language, used when every
// detection method fails. Detection never reports "unknown" downstream.
const DefaultFallback = "hi"

// IsSupported reports whether code is one of the 23 catalog codes.
func IsSupported(code string) bool {
	_, ok := catalog[code]
	return ok
}

// IsRegional reports whether code is a catalog language other than the
// universal "en" code.
func IsRegional(code string) bool {
	return code != Universal && IsSupported(code)
}

// Name returns the display name for a catalog code, or the code itself
// when it is not in the catalog.
func Name(code string) string {
	if name, ok := catalog[code]; ok {
		return name
	}
	return code
}

// Codes returns all catalog codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(catalog))
	for code := range catalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
