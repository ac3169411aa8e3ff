package router

import (
	"regexp"
	"strings"
)

// Chunked translation loses a little cohesion at every seam, so the
// combined confidence is docked per extra chunk.
const (
	chunkPenalty    = 0.02
	maxChunkPenalty = 0.10
	minConfidence   = 0.5
)

var (
	multiSpace       = regexp.MustCompile(`\s{2,}`)
	spaceBeforePunct = regexp.MustCompile(`\s+([।۔.,!?;:])`)
)

// Sentence terminators across the supported scripts.
var terminators = "।॥۔.!?"

// Terminator appended between chunks that end mid-sentence, chosen by
// the target language's script tradition.
var chunkTerminators = map[string]string{
	"hi": "।", "mr": "।", "ne": "।", "sa": "।", "brx": "।",
	"doi": "।", "mai": "।", "kok": "।", "sat": "।",
	"bn": "।", "as": "।", "mni": "।",
	"pa": "।", "or": "।",
	"ur": "۔", "ks": "۔", "sd": "۔",
}

// Combine reassembles per-chunk results into one text and one
// confidence. Chunks that end without terminal punctuation get a
// terminator so sentence boundaries survive the join, and the average
// chunk confidence is reduced by a small per-chunk penalty, never below
// the floor.
func Combine(results []*Result, targetLang string) (string, float64) {
	if len(results) == 0 {
		return "", 0
	}
	if len(results) == 1 {
		return results[0].Text, results[0].Confidence
	}

	terminator, ok := chunkTerminators[targetLang]
	if !ok {
		terminator = "."
	}

	parts := make([]string, 0, len(results))
	total := 0.0
	for i, result := range results {
		total += result.Confidence
		part := strings.TrimSpace(result.Text)
		if part == "" {
			continue
		}
		if i < len(results)-1 && !strings.ContainsRune(terminators, lastRune(part)) {
			part += terminator
		}
		parts = append(parts, part)
	}

	combined := strings.Join(parts, " ")
	combined = spaceBeforePunct.ReplaceAllString(combined, "$1")
	combined = multiSpace.ReplaceAllString(combined, " ")

	penalty := chunkPenalty * float64(len(results)-1)
	if penalty > maxChunkPenalty {
		penalty = maxChunkPenalty
	}
	confidence := total/float64(len(results)) - penalty
	if confidence < minConfidence {
		confidence = minConfidence
	}
	return strings.TrimSpace(combined), confidence
}

func lastRune(s string) rune {
	last := rune(0)
	for _, r := range s {
		last = r
	}
	return last
}
