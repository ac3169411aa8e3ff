// Package script classifies text by writing system and disambiguates
// between languages that share one.
package script

// Range is a contiguous Unicode block associated with one writing system.
type Range struct {
	Lo rune
	Hi rune
}

// Contains reports whether r falls inside the range.
func (rg Range) Contains(r rune) bool {
	return r >= rg.Lo && r <= rg.Hi
}

type family struct {
	name      string
	block     Range
	languages []string
}

// Script families in catalog order. A family lists every catalog
// language written in its block; the first entry is the family default.
var families = []family{
	{"devanagari", Range{0x0900, 0x097F}, []string{"hi", "mr", "ne", "sa", "brx", "doi", "mai", "kok", "sat"}},
	{"bengali", Range{0x0980, 0x09FF}, []string{"bn", "as", "mni"}},
	{"gurmukhi", Range{0x0A00, 0x0A7F}, []string{"pa"}},
	{"gujarati", Range{0x0A80, 0x0AFF}, []string{"gu"}},
	{"odia", Range{0x0B00, 0x0B7F}, []string{"or"}},
	{"tamil", Range{0x0B80, 0x0BFF}, []string{"ta"}},
	{"telugu", Range{0x0C00, 0x0C7F}, []string{"te"}},
	{"kannada", Range{0x0C80, 0x0CFF}, []string{"kn"}},
	{"malayalam", Range{0x0D00, 0x0D7F}, []string{"ml"}},
	{"arabic", Range{0x0600, 0x06FF}, []string{"ur", "ks", "sd"}},
}

// languageBlocks maps each scripted catalog language to its block.
var languageBlocks = map[string]Range{}

func init() {
	for _, f := range families {
		for _, lang := range f.languages {
			if _, exists := languageBlocks[lang]; !exists {
				languageBlocks[lang] = f.block
			}
		}
	}
}

// RangeFor returns the Unicode block for a scripted catalog language.
// The second return is false for unscripted codes such as "en".
func RangeFor(lang string) (Range, bool) {
	block, ok := languageBlocks[lang]
	return block, ok
}

// Classify counts characters per script family and returns the dominant
// family name, or "" when no character falls in any known block.
func Classify(text string) string {
	best := ""
	bestCount := 0
	for _, f := range families {
		count := 0
		for _, r := range text {
			if f.block.Contains(r) {
				count++
			}
		}
		if count > bestCount {
			best = f.name
			bestCount = count
		}
	}
	return best
}

// Candidates returns the catalog languages written in the named family.
func Candidates(familyName string) []string {
	for _, f := range families {
		if f.name == familyName {
			return f.languages
		}
	}
	return nil
}
