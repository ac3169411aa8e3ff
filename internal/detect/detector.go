// Package detect identifies the language of free-form text by composing
// a heuristic English test, an external statistical detector, and
// script classification.
package detect

import (
	"crypto/sha256"
	"math"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"horse.fit/localizer/internal/language"
	"horse.fit/localizer/internal/script"
)

// Method names the detection step that produced a result.
type Method string

const (
	MethodHeuristicEnglish Method = "heuristic-english"
	MethodStatistical      Method = "statistical"
	MethodScript           Method = "script"
	MethodFallback         Method = "fallback"
)

// Result is one language detection decision.
type Result struct {
	Language   string  `json:"language"`
	Name       string  `json:"language_name"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`
}

// Statistical is the external statistical detector collaborator.
// Implementations return the detected ISO 639-1 code, or ok=false when
// no decision could be made.
type Statistical interface {
	DetectLanguage(text string) (code string, ok bool)
}

const (
	englishThreshold = 0.7
	// A statistical misread of unsupported languages is overridden to
	// English only above this heuristic score.
	englishOverrideThreshold = 0.6

	memoLimit = 1000
)

// Detector composes the detection methods. Detection is a pure function
// of the input text; results are memoized by content hash.
type Detector struct {
	statistical Statistical
	logger      zerolog.Logger

	mu   sync.Mutex
	memo map[[32]byte]Result
}

// New builds a Detector. The statistical collaborator may be nil, in
// which case that step is skipped.
func New(statistical Statistical, logger zerolog.Logger) *Detector {
	return &Detector{
		statistical: statistical,
		logger:      logger,
		memo:        make(map[[32]byte]Result),
	}
}

// Detect identifies the language of text. It fails closed on inputs
// shorter than 3 characters and never returns "unknown" otherwise.
func (d *Detector) Detect(text string) Result {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < 3 {
		return Result{Language: "unknown", Name: "Unknown", Confidence: 0, Method: MethodFallback}
	}

	key := sha256.Sum256([]byte(trimmed))
	d.mu.Lock()
	if cached, ok := d.memo[key]; ok {
		d.mu.Unlock()
		return cached
	}
	d.mu.Unlock()

	result := d.detect(trimmed)

	d.mu.Lock()
	if len(d.memo) >= memoLimit {
		d.memo = make(map[[32]byte]Result)
	}
	d.memo[key] = result
	d.mu.Unlock()

	return result
}

func (d *Detector) detect(text string) Result {
	if score := englishScore(text); score > englishThreshold {
		d.logger.Debug().Float64("score", score).Msg("text identified as English by heuristics")
		return resultFor("en", math.Min(score, 0.95), MethodHeuristicEnglish)
	}

	if d.statistical != nil {
		if code, ok := d.statistical.DetectLanguage(text); ok {
			code = language.NormalizeCode(code)
			if language.IsSupported(code) {
				return resultFor(code, 0.9, MethodStatistical)
			}
			d.logger.Debug().Str("code", code).Msg("statistical detector reported unsupported language")
			if score := englishScore(text); score > englishOverrideThreshold {
				d.logger.Debug().Float64("score", score).Msg("heuristic English overrides statistical result")
				return resultFor("en", score, MethodHeuristicEnglish)
			}
		}
	}

	if familyName := script.Classify(text); familyName != "" {
		if lang := script.Disambiguate(text, familyName); lang != "" {
			return resultFor(lang, 0.9, MethodScript)
		}
	}

	if likelyEnglish(text) {
		return resultFor("en", 0.7, MethodHeuristicEnglish)
	}

	return resultFor(language.DefaultFallback, 0.3, MethodFallback)
}

func resultFor(code string, confidence float64, method Method) Result {
	return Result{
		Language:   code,
		Name:       language.Name(code),
		Confidence: confidence,
		Method:     method,
	}
}
