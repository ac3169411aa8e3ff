package language

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeCode reduces a raw language tag to its primary subtag in
// lowercase (for example, "en" from "en-US" or "HI_in"). Returns an
// empty string when the value is blank or not a plausible tag.
func NormalizeCode(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "_", "-")

	if tag, err := language.Parse(trimmed); err == nil {
		base, conf := tag.Base()
		if conf != language.No {
			code := strings.ToLower(base.String())
			if IsSupported(code) {
				return code
			}
		}
	}

	if dash := strings.IndexByte(trimmed, '-'); dash >= 0 {
		trimmed = trimmed[:dash]
	}
	if !isAlphaLower(trimmed) {
		return ""
	}
	return trimmed
}

func isAlphaLower(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
