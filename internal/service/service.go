// Package service is the orchestration layer: it resolves the source
// language, segments long input, routes every chunk, and fans out
// across target languages.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"horse.fit/localizer/internal/config"
	"horse.fit/localizer/internal/detect"
	"horse.fit/localizer/internal/language"
	"horse.fit/localizer/internal/provider"
	"horse.fit/localizer/internal/quality"
	"horse.fit/localizer/internal/router"
	"horse.fit/localizer/internal/segment"
	"horse.fit/localizer/internal/store"
)

// ErrEmptyInput rejects requests without translatable text.
var ErrEmptyInput = errors.New("input text is empty")

// ErrNoTargets rejects requests without target languages.
var ErrNoTargets = errors.New("at least one target language is required")

// AutoDetect asks the service to resolve the source language itself.
const AutoDetect = "auto"

// Request is one translation request, possibly for several targets.
// Domain is an optional free-form content hint (for example "medical")
// carried through for observability.
type Request struct {
	Text        string
	SourceLang  string
	TargetLangs []string
	Domain      string
}

// TargetResult is the outcome for a single target language. Error is
// set instead of the text fields when that target failed; one failing
// target never poisons the others.
type TargetResult struct {
	SourceLanguage      string   `json:"source_language"`
	TargetLanguage      string   `json:"target_language"`
	TranslatedText      string   `json:"translated_text,omitempty"`
	Confidence          float64  `json:"confidence"`
	ModelUsed           string   `json:"model_used,omitempty"`
	AttemptedStrategies []string `json:"attempted_strategies,omitempty"`
	DurationMs          int64    `json:"duration_ms"`
	ChunksProcessed     int      `json:"chunks_processed"`
	Error               string   `json:"error,omitempty"`
}

// Response is the per-target result map plus the resolved source.
type Response struct {
	SourceLanguage string                  `json:"source_language"`
	Detection      *detect.Result          `json:"detection,omitempty"`
	Results        map[string]TargetResult `json:"results"`
}

// Service wires detection, segmentation, and routing together.
type Service struct {
	cfg      *config.Config
	detector *detect.Detector
	router   *router.Router
	registry *provider.LoadRegistry
	history  *store.Store
	logger   zerolog.Logger
}

// New assembles the translation service from configuration. history may
// be nil when persistence is not configured.
func New(cfg *config.Config, history *store.Store, logger zerolog.Logger) *Service {
	registry := provider.NewLoadRegistry(cfg.MemoryBudgetMB, logger)
	chunkTimeout := time.Duration(cfg.ChunkTimeoutSeconds) * time.Second

	primary := func() (provider.Provider, error) {
		return registry.Acquire(provider.BilingualName, cfg.BilingualSizeMB, func() (provider.Provider, error) {
			return provider.NewBilingual(cfg.BilingualEndpoint, cfg.BilingualModel, chunkTimeout), nil
		})
	}
	secondary := func() (provider.Provider, error) {
		return registry.Acquire(provider.MultilingualName, cfg.MultilingualSizeMB, func() (provider.Provider, error) {
			return provider.NewMultilingual(cfg.MultilingualEndpoint, cfg.MultilingualModel, chunkTimeout), nil
		})
	}

	assessor := quality.New(quality.Weights{
		LengthRatio:           cfg.QualityLengthWeight,
		CharacterPreservation: cfg.QualityCharacterWeight,
		ScriptConsistency:     cfg.QualityScriptWeight,
		SemanticCoherence:     cfg.QualitySemanticWeight,
	})

	return &Service{
		cfg:      cfg,
		detector: detect.New(detect.Lingua{}, logger),
		router: router.New(primary, secondary, assessor, router.Options{
			SkipMultilingualForIndic: cfg.SkipMultilingualForIndic,
		}, logger),
		registry: registry,
		history:  history,
		logger:   logger,
	}
}

// Registry exposes the backend load registry for observability
// endpoints.
func (s *Service) Registry() *provider.LoadRegistry {
	if s == nil {
		return nil
	}
	return s.registry
}

// DetectLanguage identifies the language of text.
func (s *Service) DetectLanguage(_ context.Context, text string) (*detect.Result, error) {
	if s == nil {
		return nil, fmt.Errorf("service is not initialized")
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	result := s.detector.Detect(text)
	return &result, nil
}

// Translate routes text to every requested target language. Targets run
// concurrently with a bounded degree of parallelism; chunks within one
// target run sequentially so the backend sees them in order.
func (s *Service) Translate(ctx context.Context, req Request) (*Response, error) {
	if s == nil {
		return nil, fmt.Errorf("service is not initialized")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	targets, err := normalizeTargets(req.TargetLangs)
	if err != nil {
		return nil, err
	}

	resp := &Response{Results: make(map[string]TargetResult, len(targets))}

	sourceLang := strings.ToLower(strings.TrimSpace(req.SourceLang))
	if sourceLang == "" || sourceLang == AutoDetect {
		detected := s.detector.Detect(text)
		resp.Detection = &detected
		sourceLang = detected.Language
	} else {
		sourceLang = language.NormalizeCode(sourceLang)
	}
	if !language.IsSupported(sourceLang) {
		return nil, fmt.Errorf("%w: source %q", router.ErrUnsupportedLanguage, sourceLang)
	}
	resp.SourceLanguage = sourceLang

	if req.Domain != "" {
		s.logger.Debug().
			Str("domain", req.Domain).
			Str("source", sourceLang).
			Msg("translation request carries domain hint")
	}

	chunks := []segment.Chunk{{Index: 0, Content: text}}
	if len([]rune(text)) > s.cfg.SingleShotMaxChars {
		chunks = segment.Split(text, s.cfg.MaxChunkChars)
		s.logger.Info().
			Int("chunks", len(chunks)).
			Str("source", sourceLang).
			Msg("input segmented for translation")
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.TargetConcurrency)

	for _, target := range targets {
		target := target
		group.Go(func() error {
			result := s.translateTarget(groupCtx, chunks, sourceLang, target)
			mu.Lock()
			resp.Results[target] = result
			mu.Unlock()
			return nil
		})
	}
	// Per-target failures land in Results, never in the group error.
	_ = group.Wait()

	s.recordHistory(ctx, text, resp)
	return resp, nil
}

func (s *Service) translateTarget(ctx context.Context, chunks []segment.Chunk, sourceLang, targetLang string) TargetResult {
	started := time.Now()
	result := TargetResult{
		SourceLanguage:  sourceLang,
		TargetLanguage:  targetLang,
		ChunksProcessed: len(chunks),
	}

	chunkTimeout := time.Duration(s.cfg.ChunkTimeoutSeconds) * time.Second
	routed := make([]*router.Result, 0, len(chunks))
	strategies := make([]string, 0, 4)

	for _, chunk := range chunks {
		chunkCtx, cancel := context.WithTimeout(ctx, chunkTimeout)
		chunkResult, err := s.router.Translate(chunkCtx, router.Request{
			Text:       chunk.Content,
			Context:    chunk.Context,
			SourceLang: sourceLang,
			TargetLang: targetLang,
		})
		cancel()
		if err != nil {
			result.Error = err.Error()
			result.DurationMs = time.Since(started).Milliseconds()
			s.logger.Warn().Err(err).
				Str("source", sourceLang).
				Str("target", targetLang).
				Int("chunk", chunk.Index).
				Msg("chunk translation failed")
			return result
		}
		routed = append(routed, chunkResult)
		strategies = appendNewStrategies(strategies, chunkResult.AttemptedStrategies)
	}

	text, confidence := router.Combine(routed, targetLang)
	result.TranslatedText = text
	result.Confidence = confidence
	result.ModelUsed = routed[len(routed)-1].ModelUsed
	result.AttemptedStrategies = strategies
	result.DurationMs = time.Since(started).Milliseconds()
	return result
}

func (s *Service) recordHistory(ctx context.Context, source string, resp *Response) {
	if s.history == nil {
		return
	}
	for _, result := range resp.Results {
		if result.Error != "" {
			continue
		}
		s.history.Record(ctx, store.TranslationRecord{
			SourceLanguage:  result.SourceLanguage,
			TargetLanguage:  result.TargetLanguage,
			SourceChars:     len([]rune(source)),
			TranslatedChars: len([]rune(result.TranslatedText)),
			Confidence:      result.Confidence,
			ModelUsed:       result.ModelUsed,
			Strategies:      strings.Join(result.AttemptedStrategies, ","),
			ChunksProcessed: result.ChunksProcessed,
			DurationMs:      result.DurationMs,
			CreatedAt:       time.Now().UTC(),
		})
	}
}

// History returns recent persisted translations, or an error when
// persistence is not configured.
func (s *Service) History(ctx context.Context, limit int) ([]store.TranslationRecord, error) {
	if s == nil || s.history == nil {
		return nil, fmt.Errorf("translation history is not configured")
	}
	return s.history.Recent(ctx, limit)
}

func normalizeTargets(raw []string) ([]string, error) {
	targets := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		code := language.NormalizeCode(entry)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		targets = append(targets, code)
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	return targets, nil
}

func appendNewStrategies(existing []string, attempted []string) []string {
	for _, strategy := range attempted {
		found := false
		for _, have := range existing {
			if have == strategy {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, strategy)
		}
	}
	return existing
}
