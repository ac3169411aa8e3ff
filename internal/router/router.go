// Package router selects a provider strategy for a language pair,
// validates each attempt, and falls back through the strategy chain
// until a usable result is produced.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/localizer/internal/language"
	"horse.fit/localizer/internal/lexicon"
	"horse.fit/localizer/internal/provider"
	"horse.fit/localizer/internal/quality"
)

// ErrUnsupportedLanguage marks a source or target code outside the
// catalog. It is surfaced to the caller and never retried.
var ErrUnsupportedLanguage = errors.New("language not in catalog")

// State is one stage of the fallback chain.
type State string

const (
	StateNotStarted          State = "not-started"
	StateAttemptingPrimary   State = "attempting-primary"
	StateAttemptingSecondary State = "attempting-secondary"
	StateAttemptingBridge    State = "attempting-bridge"
	StateAttemptingEmergency State = "attempting-emergency"
	StateDone                State = "done"
)

// Strategy labels one fallback stage for observability.
type Strategy string

const (
	StrategyPrimary   Strategy = "direct-primary"
	StrategySecondary Strategy = "direct-secondary"
	StrategyBridge    Strategy = "bridge-via-english"
	StrategyEmergency Strategy = "emergency-lexicon"
	StrategyIdentity  Strategy = "no-translation-needed"
)

// Request is one chunk to route. Context optionally carries the tail
// of the preceding chunk; it is forwarded to providers as prompt
// context and never appears in the result text.
type Request struct {
	Text       string
	Context    string
	SourceLang string
	TargetLang string
}

// Result is the outcome of routing one chunk through the chain.
type Result struct {
	SourceLang          string
	TargetLang          string
	Text                string
	Confidence          float64
	ModelUsed           string
	AttemptedStrategies []string
	Duration            time.Duration
}

// ProviderSource lazily resolves a backend, typically through the
// LoadRegistry, so that load failures stay inside the fallback chain.
type ProviderSource func() (provider.Provider, error)

// Options tune routing policy.
type Options struct {
	// SkipMultilingualForIndic skips the broad provider for
	// regional-to-regional pairs. The exclusion is policy, not law:
	// the broad backend has been observed to mislabel output for
	// these pairs, and every skip is logged.
	SkipMultilingualForIndic bool
}

// Router is the translation strategy state machine. It is stateless
// across calls and safe for concurrent use.
type Router struct {
	primary   ProviderSource
	secondary ProviderSource
	assessor  *quality.Assessor
	opts      Options
	logger    zerolog.Logger
}

// New builds a Router. primary resolves the dedicated bilingual
// backend, secondary the broad multilingual one.
func New(primary, secondary ProviderSource, assessor *quality.Assessor, opts Options, logger zerolog.Logger) *Router {
	return &Router{
		primary:   primary,
		secondary: secondary,
		assessor:  assessor,
		opts:      opts,
		logger:    logger,
	}
}

// Translate routes one chunk. The context bounds the entire fallback
// chain: an expired context abandons the current strategy in favor of
// the next one, and the emergency lexicon ignores it entirely because
// a table lookup cannot block. Provider failures and quality
// rejections are absorbed; only non-catalog codes produce an error.
func (r *Router) Translate(ctx context.Context, req Request) (*Result, error) {
	if r == nil {
		return nil, fmt.Errorf("router is not initialized")
	}

	started := time.Now()

	if req.SourceLang == req.TargetLang && language.IsSupported(req.SourceLang) {
		return &Result{
			SourceLang:          req.SourceLang,
			TargetLang:          req.TargetLang,
			Text:                req.Text,
			Confidence:          1.0,
			ModelUsed:           string(StrategyIdentity),
			AttemptedStrategies: []string{string(StrategyIdentity)},
			Duration:            time.Since(started),
		}, nil
	}

	if !language.IsSupported(req.SourceLang) {
		return nil, fmt.Errorf("%w: source %q", ErrUnsupportedLanguage, req.SourceLang)
	}
	if !language.IsSupported(req.TargetLang) {
		return nil, fmt.Errorf("%w: target %q", ErrUnsupportedLanguage, req.TargetLang)
	}

	run := &chainRun{
		router:      r,
		text:        req.Text,
		contextText: req.Context,
		sourceLang:  req.SourceLang,
		targetLang:  req.TargetLang,
		state:       StateNotStarted,
		started:     started,
	}

	crossPair := req.SourceLang == language.Universal || req.TargetLang == language.Universal
	if crossPair {
		if result := run.attemptPrimary(ctx); result != nil {
			return result, nil
		}
		if result := run.attemptSecondary(ctx); result != nil {
			return result, nil
		}
	} else {
		if result := run.attemptBridge(ctx); result != nil {
			return result, nil
		}
		if r.opts.SkipMultilingualForIndic {
			r.logger.Info().
				Str("source", req.SourceLang).
				Str("target", req.TargetLang).
				Msg("skipping multilingual provider for regional pair by policy")
		} else if result := run.attemptSecondary(ctx); result != nil {
			return result, nil
		}
	}

	return run.attemptEmergency(), nil
}

// chainRun carries the per-call state of the machine; the Router itself
// stays immutable.
type chainRun struct {
	router      *Router
	text        string
	contextText string
	sourceLang  string
	targetLang  string
	state       State
	attempted   []string
	started     time.Time
}

func (c *chainRun) transition(next State, strategy Strategy) {
	c.state = next
	c.attempted = append(c.attempted, string(strategy))
	c.router.logger.Debug().
		Str("state", string(next)).
		Str("source", c.sourceLang).
		Str("target", c.targetLang).
		Msg("routing transition")
}

func (c *chainRun) done(text string, confidence float64, model string) *Result {
	c.state = StateDone
	return &Result{
		SourceLang:          c.sourceLang,
		TargetLang:          c.targetLang,
		Text:                text,
		Confidence:          confidence,
		ModelUsed:           model,
		AttemptedStrategies: c.attempted,
		Duration:            time.Since(c.started),
	}
}

func (c *chainRun) attemptPrimary(ctx context.Context) *Result {
	c.transition(StateAttemptingPrimary, StrategyPrimary)
	return c.attemptDirect(ctx, c.router.primary, StrategyPrimary)
}

func (c *chainRun) attemptSecondary(ctx context.Context) *Result {
	c.transition(StateAttemptingSecondary, StrategySecondary)
	return c.attemptDirect(ctx, c.router.secondary, StrategySecondary)
}

func (c *chainRun) attemptDirect(ctx context.Context, source ProviderSource, strategy Strategy) *Result {
	if ctx.Err() != nil {
		c.router.logger.Warn().Str("strategy", string(strategy)).Msg("strategy abandoned, chain deadline reached")
		return nil
	}

	p, err := source()
	if err != nil {
		c.router.logger.Warn().Err(err).Str("strategy", string(strategy)).Msg("provider not available")
		return nil
	}

	resp, err := p.Translate(ctx, provider.Request{
		Text:       c.text,
		Context:    c.contextText,
		SourceLang: c.sourceLang,
		TargetLang: c.targetLang,
	})
	if err != nil {
		c.router.logger.Warn().Err(err).Str("strategy", string(strategy)).Msg("provider invocation failed")
		return nil
	}

	if !c.router.assessor.Validate(c.text, resp.Text, c.targetLang) {
		c.router.logger.Warn().
			Str("strategy", string(strategy)).
			Str("provider", resp.Provider).
			Msg("translation rejected by quality gate")
		return nil
	}

	metrics := c.router.assessor.Score(c.text, resp.Text, c.sourceLang, c.targetLang)
	return c.done(strings.TrimSpace(resp.Text), metrics.Confidence, resp.Provider)
}

// attemptBridge translates regional-to-regional pairs through English
// with two sequential calls to the dedicated bilingual backend. The
// combined confidence is the minimum of the two legs.
func (c *chainRun) attemptBridge(ctx context.Context) *Result {
	c.transition(StateAttemptingBridge, StrategyBridge)

	if ctx.Err() != nil {
		c.router.logger.Warn().Msg("bridge abandoned, chain deadline reached")
		return nil
	}

	p, err := c.router.primary()
	if err != nil {
		c.router.logger.Warn().Err(err).Msg("bridge provider not available")
		return nil
	}

	first, err := p.Translate(ctx, provider.Request{
		Text:       c.text,
		Context:    c.contextText,
		SourceLang: c.sourceLang,
		TargetLang: language.Universal,
	})
	if err != nil {
		c.router.logger.Warn().Err(err).Msg("bridge first leg failed")
		return nil
	}
	if !c.router.assessor.Validate(c.text, first.Text, language.Universal) {
		c.router.logger.Warn().Msg("bridge first leg rejected by quality gate")
		return nil
	}
	intermediate := strings.TrimSpace(first.Text)
	firstScore := c.router.assessor.Score(c.text, intermediate, c.sourceLang, language.Universal)

	second, err := p.Translate(ctx, provider.Request{
		Text:       intermediate,
		SourceLang: language.Universal,
		TargetLang: c.targetLang,
	})
	if err != nil {
		c.router.logger.Warn().Err(err).Msg("bridge second leg failed")
		return nil
	}
	if !c.router.assessor.Validate(intermediate, second.Text, c.targetLang) {
		c.router.logger.Warn().Msg("bridge second leg rejected by quality gate")
		return nil
	}
	secondScore := c.router.assessor.Score(intermediate, second.Text, language.Universal, c.targetLang)

	confidence := firstScore.Confidence
	if secondScore.Confidence < confidence {
		confidence = secondScore.Confidence
	}
	return c.done(strings.TrimSpace(second.Text), confidence, first.Provider+"-bridge")
}

// attemptEmergency is unconditionally terminal: the phrase table cannot
// fail.
func (c *chainRun) attemptEmergency() *Result {
	c.transition(StateAttemptingEmergency, StrategyEmergency)

	looked := lexicon.Lookup(c.text, c.sourceLang, c.targetLang)
	return c.done(looked.Text, looked.Confidence, string(StrategyEmergency))
}
