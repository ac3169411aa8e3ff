// Package quality judges whether a candidate translation is plausible
// for its language pair.
package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"horse.fit/localizer/internal/script"
)

// Metrics are the sub-scores of one (source, candidate) pair. All values
// lie in [0,1]; Confidence is the weighted combination and is never set
// independently.
type Metrics struct {
	LengthRatio           float64 `json:"length_ratio"`
	CharacterPreservation float64 `json:"character_preservation"`
	ScriptConsistency     float64 `json:"script_consistency"`
	SemanticCoherence     float64 `json:"semantic_coherence"`
	Confidence            float64 `json:"confidence"`
}

// Weights combine the sub-metrics into the final confidence. The
// defaults are heuristic constants; they are configuration, not law.
type Weights struct {
	LengthRatio           float64
	CharacterPreservation float64
	ScriptConsistency     float64
	SemanticCoherence     float64
}

// DefaultWeights returns the stock metric weights.
func DefaultWeights() Weights {
	return Weights{
		LengthRatio:           0.2,
		CharacterPreservation: 0.2,
		ScriptConsistency:     0.3,
		SemanticCoherence:     0.3,
	}
}

const confidenceCap = 0.95

// Observed failure signatures of the broad multilingual provider: stock
// phrases emitted in unrelated European languages.
var knownBadOutputs = []string{
	"eguraldi ona dago",
	"il fait beau",
	"es ist schön",
	"hace buen tiempo",
	"è una bella giornata",
}

var numberPattern = regexp.MustCompile(`\d+`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// Assessor validates and scores candidate translations.
type Assessor struct {
	weights Weights
}

// New builds an Assessor with the given weights. Zero weights fall back
// to the defaults.
func New(weights Weights) *Assessor {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	return &Assessor{weights: weights}
}

// Validate reports whether candidate is a usable translation of source
// into targetLang. Each rejection here is unconditional regardless of
// any score.
func (a *Assessor) Validate(source, candidate, targetLang string) bool {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return false
	}
	if trimmed == strings.TrimSpace(source) {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, bad := range knownBadOutputs {
		if strings.Contains(lower, bad) {
			return false
		}
	}

	if block, scripted := script.RangeFor(targetLang); scripted {
		if countInRange(trimmed, block) == 0 {
			return false
		}
	}

	return true
}

// Score computes the quality sub-metrics and their weighted combination
// for a candidate translation.
func (a *Assessor) Score(source, candidate, sourceLang, targetLang string) Metrics {
	m := Metrics{
		LengthRatio:           lengthRatioScore(source, candidate),
		CharacterPreservation: numberPreservation(source, candidate),
		ScriptConsistency:     a.scriptConsistency(candidate, targetLang),
		SemanticCoherence:     semanticCoherence(source, candidate),
	}

	combined := m.LengthRatio*a.weights.LengthRatio +
		m.CharacterPreservation*a.weights.CharacterPreservation +
		m.ScriptConsistency*a.weights.ScriptConsistency +
		m.SemanticCoherence*a.weights.SemanticCoherence
	m.Confidence = math.Min(combined, confidenceCap)
	return m
}

func lengthRatioScore(source, candidate string) float64 {
	srcLen := len(strings.TrimSpace(source))
	if srcLen == 0 {
		return 0
	}
	ratio := float64(len(strings.TrimSpace(candidate))) / float64(srcLen)
	switch {
	case ratio >= 0.5 && ratio <= 2.0:
		return 1.0
	case ratio >= 0.3 && ratio <= 3.0:
		return 0.8
	default:
		return 0.5
	}
}

func numberPreservation(source, candidate string) float64 {
	numbers := numberPattern.FindAllString(source, -1)
	if len(numbers) == 0 {
		return 1.0
	}
	preserved := 0
	for _, n := range numbers {
		if strings.Contains(candidate, n) {
			preserved++
		}
	}
	return float64(preserved) / float64(len(numbers))
}

func (a *Assessor) scriptConsistency(candidate, targetLang string) float64 {
	block, scripted := script.RangeFor(targetLang)
	if !scripted {
		return 0.8
	}
	runes := []rune(candidate)
	if len(runes) == 0 {
		return 0.3
	}
	inScript := countInRange(candidate, block)
	if inScript == 0 {
		return 0.3
	}
	return math.Min(float64(inScript)/float64(len(runes))*10, 1.0)
}

func semanticCoherence(source, candidate string) float64 {
	sourceWords := contentWords(source)
	if len(sourceWords) == 0 {
		return 0.8
	}

	score := 0.0

	properNouns := properNounsOf(source)
	if len(properNouns) > 0 {
		preserved := 0
		for _, noun := range properNouns {
			if strings.Contains(candidate, noun) {
				preserved++
			}
		}
		score += float64(preserved) / float64(len(properNouns)) * 0.3
	}

	if numberPattern.MatchString(source) {
		score += numberPreservation(source, candidate) * 0.3
	}

	candidateWords := contentWords(candidate)
	overlap := 0
	for w := range sourceWords {
		if _, ok := candidateWords[w]; ok {
			overlap++
		}
	}
	score += float64(overlap) / float64(len(sourceWords)) * 0.4

	return math.Min(score, 1.0)
}

func contentWords(text string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if _, stop := stopWords[w]; !stop {
			words[w] = struct{}{}
		}
	}
	return words
}

func properNounsOf(text string) []string {
	var nouns []string
	for _, w := range strings.Fields(text) {
		runes := []rune(w)
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			nouns = append(nouns, w)
		}
	}
	return nouns
}

func countInRange(text string, block script.Range) int {
	count := 0
	for _, r := range text {
		if block.Contains(r) {
			count++
		}
	}
	return count
}
