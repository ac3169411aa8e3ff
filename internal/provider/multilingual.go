package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"horse.fit/localizer/internal/language"
)

const (
	// MultilingualName identifies the broad any-to-any backend.
	MultilingualName = "nllb"
	// DefaultMultilingualModel is the stock multilingual model.
	DefaultMultilingualModel = "facebook/nllb-200-distilled-600M"

	multilingualConfidence = 0.8
)

// Multilingual is the broad provider covering any catalog pair. It is
// less reliable than the dedicated bilingual backend and its output is
// always quality-checked downstream.
type Multilingual struct {
	client *chatClient
	model  string
}

// NewMultilingual builds the broad multilingual provider against an
// OpenAI-compatible endpoint.
func NewMultilingual(endpoint, model string, timeout time.Duration) *Multilingual {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultMultilingualModel
	}
	return &Multilingual{
		client: newChatClient(endpoint, trimmedModel, timeout),
		model:  trimmedModel,
	}
}

func (p *Multilingual) Name() string {
	return MultilingualName
}

// ModelName returns the configured model identifier.
func (p *Multilingual) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

// Supports reports whether both sides are catalog languages.
func (p *Multilingual) Supports(sourceLang, targetLang string) bool {
	return language.IsSupported(sourceLang) && language.IsSupported(targetLang) && sourceLang != targetLang
}

func (p *Multilingual) Translate(ctx context.Context, req Request) (*Response, error) {
	if p == nil {
		return nil, fmt.Errorf("multilingual provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	if !p.Supports(req.SourceLang, req.TargetLang) {
		return nil, fmt.Errorf("%w: %s->%s", ErrUnsupportedPair, req.SourceLang, req.TargetLang)
	}

	prompt := fmt.Sprintf(
		"Translate from %s to %s. Output only the translated text, nothing else.\n\n%s",
		language.Name(req.SourceLang), language.Name(req.TargetLang), text,
	)
	if contextText := strings.TrimSpace(req.Context); contextText != "" {
		prompt = fmt.Sprintf(
			"The text continues this earlier passage; use it for context only and do not translate it:\n%s\n\n%s",
			contextText, prompt,
		)
	}

	started := time.Now()
	translated, err := p.client.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Response{
		Text:       translated,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Provider:   p.Name(),
		Confidence: multilingualConfidence,
		LatencyMs:  time.Since(started).Milliseconds(),
	}, nil
}
