// Package provider is the gateway to the external translation backends.
package provider

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable marks a backend that failed to load or whose
	// invocation errored. Callers absorb it into the fallback chain.
	ErrUnavailable = errors.New("translation provider unavailable")
	// ErrUnsupportedPair marks a language pair a provider refuses.
	ErrUnsupportedPair = errors.New("language pair not supported by provider")
)

// Provider translates free-form text between catalog languages.
type Provider interface {
	Translate(ctx context.Context, req Request) (*Response, error)
	Name() string
	Supports(sourceLang, targetLang string) bool
}

// Request describes one translation request. Context optionally carries
// the tail of the preceding chunk so the backend keeps cross-chunk
// coherence; it is reference material only and never part of the
// translated output.
type Request struct {
	Text       string
	Context    string
	SourceLang string // catalog code, for example "hi"
	TargetLang string
}

// Response contains translated text and provider metadata.
type Response struct {
	Text       string
	SourceLang string
	TargetLang string
	Provider   string
	Confidence float64
	LatencyMs  int64
}
