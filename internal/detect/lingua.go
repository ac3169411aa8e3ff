package detect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	linguaOnce     sync.Once
	linguaDetector lingua.LanguageDetector
)

// Lingua adapts the lingua-go statistical detector to the Statistical
// interface. The underlying detector is built once per process because
// preloading its language models is expensive.
type Lingua struct{}

func (Lingua) DetectLanguage(text string) (string, bool) {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return "", false
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < 6 {
		return "", false
	}

	detected, exists := getLinguaDetector().DetectLanguageOf(sample)
	if !exists {
		return "", false
	}

	code := strings.ToLower(detected.IsoCode639_1().String())
	if len(code) != 2 {
		return "", false
	}
	return code, true
}

func getLinguaDetector() lingua.LanguageDetector {
	linguaOnce.Do(func() {
		linguaDetector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return linguaDetector
}
