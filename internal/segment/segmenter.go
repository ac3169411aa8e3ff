// Package segment splits long input into bounded, context-preserving
// chunks at natural sentence boundaries.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Chunk is one bounded piece of the input. Context carries the trailing
// sentences of the previous chunk as a translation prefix; Content alone
// reproduces the original sentence sequence.
type Chunk struct {
	Index   int
	Content string
	Context string
}

// DefaultMaxChars bounds a chunk when the caller does not say otherwise.
const DefaultMaxChars = 600

// Chunks shorter than this are merged into their successor when the
// merge still fits the limit.
const minChunkChars = 100

// Boundary patterns tried in order; the first one that yields more than
// one piece wins.
var boundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.\s+`),
	regexp.MustCompile(`!\s+`),
	regexp.MustCompile(`\?\s+`),
	regexp.MustCompile(`\.\n`),
	regexp.MustCompile(`\n\s*\n`),
}

// Split breaks text into ordered chunks of at most maxChars characters.
// Limits count runes, not bytes, so multibyte scripts chunk at the same
// length as Latin text. Text within the limit comes back as a single
// chunk.
func Split(text string, maxChars int) []Chunk {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return []Chunk{{Index: 0, Content: text}}
	}

	sentences := splitSentences(text)
	pieces := accumulate(sentences, maxChars)
	pieces = mergeShort(pieces, maxChars)

	chunks := make([]Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, Chunk{Index: i, Content: p.content, Context: p.context})
	}
	return chunks
}

func splitSentences(text string) []string {
	var raw []string
	for _, re := range boundaryPatterns {
		if parts := re.Split(text, -1); len(parts) > 1 {
			raw = parts
			break
		}
	}
	if raw == nil {
		raw = strings.Split(text, ". ")
	}

	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

type piece struct {
	content string
	context string
}

func accumulate(sentences []string, maxChars int) []piece {
	var pieces []piece
	var current []string
	var carried []string // trailing sentences of the flushed chunk

	currentLen := func() int {
		n := 0
		for _, s := range current {
			n += utf8.RuneCountInString(s) + 2
		}
		return n
	}

	flush := func() {
		if len(current) == 0 {
			return
		}
		pieces = append(pieces, piece{
			content: strings.Join(current, ". "),
			context: strings.Join(carried, " "),
		})
		if len(current) >= 2 {
			carried = append([]string(nil), current[len(current)-2:]...)
		} else {
			carried = append([]string(nil), current...)
		}
		current = nil
	}

	for _, sentence := range sentences {
		if len(current) > 0 && currentLen()+utf8.RuneCountInString(sentence) > maxChars {
			flush()
		}
		current = append(current, sentence)
	}
	flush()

	return pieces
}

func mergeShort(pieces []piece, maxChars int) []piece {
	merged := make([]piece, 0, len(pieces))
	for i := 0; i < len(pieces); i++ {
		p := pieces[i]
		if utf8.RuneCountInString(p.content) < minChunkChars && i+1 < len(pieces) {
			combined := p.content + ". " + pieces[i+1].content
			if utf8.RuneCountInString(combined) <= maxChars {
				merged = append(merged, piece{content: combined, context: p.context})
				i++
				continue
			}
		}
		merged = append(merged, p)
	}
	return merged
}
