package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"horse.fit/localizer/internal/language"
)

const (
	// BilingualName identifies the dedicated English-to-regional backend.
	BilingualName = "indictrans"
	// DefaultBilingualModel is the stock dedicated translation model.
	DefaultBilingualModel = "ai4bharat/IndicTrans2-1B"

	bilingualConfidence = 0.85
)

// Bilingual is the dedicated provider for pairs where exactly one side
// is English. It refuses every other pair.
type Bilingual struct {
	client *chatClient
	model  string
}

// NewBilingual builds the dedicated bilingual provider against an
// OpenAI-compatible endpoint.
func NewBilingual(endpoint, model string, timeout time.Duration) *Bilingual {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultBilingualModel
	}
	return &Bilingual{
		client: newChatClient(endpoint, trimmedModel, timeout),
		model:  trimmedModel,
	}
}

func (p *Bilingual) Name() string {
	return BilingualName
}

// ModelName returns the configured model identifier.
func (p *Bilingual) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

// Supports reports whether exactly one side of the pair is English and
// the other is a regional catalog language.
func (p *Bilingual) Supports(sourceLang, targetLang string) bool {
	enToRegional := sourceLang == language.Universal && language.IsRegional(targetLang)
	regionalToEn := language.IsRegional(sourceLang) && targetLang == language.Universal
	return enToRegional || regionalToEn
}

func (p *Bilingual) Translate(ctx context.Context, req Request) (*Response, error) {
	if p == nil {
		return nil, fmt.Errorf("bilingual provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	if !p.Supports(req.SourceLang, req.TargetLang) {
		return nil, fmt.Errorf("%w: %s->%s", ErrUnsupportedPair, req.SourceLang, req.TargetLang)
	}

	prompt := fmt.Sprintf(
		"Translate the following %s segment into %s. Output only the translation.\n\n%s",
		language.Name(req.SourceLang), language.Name(req.TargetLang), text,
	)
	if contextText := strings.TrimSpace(req.Context); contextText != "" {
		prompt = fmt.Sprintf(
			"The segment continues this earlier text; use it for context only and do not translate it:\n%s\n\n%s",
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
		Confidence: bilingualConfidence,
		LatencyMs:  time.Since(started).Milliseconds(),
	}, nil
}
