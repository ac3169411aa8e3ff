package detect

import (
	"math"
	"regexp"
	"strings"
)

// Weighted common-word list for the heuristic English test.
var englishWordWeights = map[string]float64{
	"the": 0.3, "and": 0.25, "or": 0.2, "but": 0.2, "in": 0.2, "on": 0.2, "at": 0.2,
	"to": 0.2, "for": 0.2, "of": 0.2, "with": 0.2, "by": 0.2, "is": 0.2, "are": 0.2,
	"was": 0.2, "were": 0.2, "be": 0.2, "been": 0.2, "have": 0.2, "has": 0.2, "had": 0.2,
	"do": 0.2, "does": 0.2, "did": 0.2, "will": 0.2, "would": 0.2, "could": 0.2,
	"should": 0.2, "may": 0.2, "might": 0.2, "can": 0.2, "this": 0.2, "that": 0.2,
	"these": 0.2, "those": 0.2, "hello": 0.3, "how": 0.2, "you": 0.2, "what": 0.2,
	"where": 0.2, "when": 0.2, "why": 0.2, "who": 0.2, "which": 0.2,
}

type weightedPattern struct {
	re     *regexp.Regexp
	weight float64
}

var englishPatterns = []weightedPattern{
	{regexp.MustCompile(`\b[a-zA-Z]+\b`), 0.1},
	{regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(AM|PM)`), 0.3},
	{regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\b`), 0.4},
	{regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`), 0.4},
	{regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`), 0.3},
	{regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`), 0.2},
	{regexp.MustCompile(`(?i)\b(www\.|http://|https://)`), 0.4},
	{regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`), 0.4},
}

// Canonical English letter frequencies.
var englishLetterFreq = map[rune]float64{
	'e': 0.127, 't': 0.091, 'a': 0.082, 'o': 0.075, 'i': 0.070, 'n': 0.067,
	's': 0.063, 'h': 0.061, 'r': 0.060, 'd': 0.043, 'l': 0.040, 'c': 0.028,
	'u': 0.028, 'm': 0.024, 'w': 0.024, 'f': 0.022, 'g': 0.020, 'y': 0.020,
	'p': 0.019, 'b': 0.015, 'v': 0.010, 'k': 0.008, 'j': 0.001, 'x': 0.001,
	'q': 0.001, 'z': 0.001,
}

// englishScore combines four independent signals into one [0,1] score:
// ASCII ratio, weighted common-word hits, English-specific pattern hits,
// and similarity of letter frequency to the canonical English table.
func englishScore(text string) float64 {
	if len(strings.TrimSpace(text)) < 3 {
		return 0
	}

	var factors []float64

	runes := []rune(text)
	ascii := 0
	for _, r := range runes {
		if r < 128 {
			ascii++
		}
	}
	asciiRatio := float64(ascii) / float64(len(runes))
	factors = append(factors, math.Min(asciiRatio*1.2, 1.0))

	lower := strings.ToLower(text)
	wordScore := 0.0
	for word, weight := range englishWordWeights {
		if strings.Contains(lower, word) {
			wordScore += weight
		}
	}
	factors = append(factors, math.Min(wordScore/3.0, 1.0))

	patternScore := 0.0
	for _, wp := range englishPatterns {
		if wp.re.MatchString(text) {
			patternScore += wp.weight
		}
	}
	factors = append(factors, math.Min(patternScore, 1.0))

	if freqFactor, ok := letterFrequencyFactor(lower); ok {
		factors = append(factors, freqFactor)
	}

	total := 0.0
	for _, f := range factors {
		total += f
	}
	return math.Max(total/float64(len(factors)), 0)
}

// Simple word set for the cheap likely-English check that runs right
// before the final fallback.
var simpleEnglishWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "a": {}, "an": {}, "some": {},
	"any": {}, "all": {}, "each": {}, "every": {}, "no": {}, "not": {}, "very": {},
	"much": {}, "many": {}, "system": {}, "translate": {}, "documents": {}, "across": {},
	"languages": {}, "accuracy": {}, "content": {}, "welcome": {},
}

// likelyEnglish is a coarser last-chance check: mostly-ASCII text where
// at least 30% of whitespace-split tokens are common English words.
func likelyEnglish(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}

	ascii := 0
	for _, r := range runes {
		if r < 128 {
			ascii++
		}
	}
	if float64(ascii)/float64(len(runes)) <= 0.8 {
		return false
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}
	hits := 0
	for _, word := range words {
		if _, ok := simpleEnglishWords[word]; ok {
			hits++
		}
	}
	return float64(hits)/float64(len(words)) > 0.3
}

func letterFrequencyFactor(lower string) (float64, bool) {
	counts := map[rune]int{}
	total := 0
	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			counts[r]++
			total++
		}
	}
	if total == 0 {
		return 0, false
	}

	similarity := 0.0
	for letter, expected := range englishLetterFreq {
		actual := float64(counts[letter]) / float64(total)
		similarity += (1.0 - math.Abs(actual-expected)/expected) * expected
	}
	return math.Min(similarity, 1.0), true
}
