package detect

import (
	"testing"

	"github.com/rs/zerolog"
)

type stubStatistical struct {
	code  string
	ok    bool
	calls int
}

func (s *stubStatistical) DetectLanguage(_ string) (string, bool) {
	s.calls++
	return s.code, s.ok
}

func TestDetectShortInputFailsClosed(t *testing.T) {
	t.Parallel()

	d := New(nil, zerolog.Nop())
	got := d.Detect("  x ")
	if got.Language != "unknown" || got.Confidence != 0 {
		t.Fatalf("unexpected result for short input: %+v", got)
	}
}

func TestDetectEnglishHeuristics(t *testing.T) {
	t.Parallel()

	d := New(nil, zerolog.Nop())
	got := d.Detect("Hello John Smith, the meeting is on Monday, January 5 at 10:30 AM. " +
		"Details are at https://example.com and you can email john@example.com.")
	if got.Language != "en" {
		t.Fatalf("expected en, got %+v", got)
	}
	if got.Confidence <= 0.7 || got.Confidence > 0.95 {
		t.Fatalf("confidence out of expected range: %v", got.Confidence)
	}
	if got.Method != MethodHeuristicEnglish {
		t.Fatalf("unexpected method: %v", got.Method)
	}
}

func TestDetectLikelyEnglishBeforeFallback(t *testing.T) {
	t.Parallel()

	// Too plain for the multi-factor heuristic, no script, and the
	// statistical collaborator has no answer: the coarse word-ratio
	// check should still pick English over the fallback.
	d := New(&stubStatistical{ok: false}, zerolog.Nop())
	got := d.Detect("the system can translate all documents")
	if got.Language != "en" || got.Confidence != 0.7 {
		t.Fatalf("expected likely-English result, got %+v", got)
	}
	if got.Method != MethodHeuristicEnglish {
		t.Fatalf("unexpected method: %v", got.Method)
	}
}

func TestDetectTrustsStatisticalForCatalogLanguage(t *testing.T) {
	t.Parallel()

	stat := &stubStatistical{code: "ta", ok: true}
	d := New(stat, zerolog.Nop())
	got := d.Detect("வணக்கம் நீங்கள் எப்படி இருக்கிறீர்கள்")
	if got.Language != "ta" || got.Confidence != 0.9 || got.Method != MethodStatistical {
		t.Fatalf("unexpected result: %+v", got)
	}
	if stat.calls != 1 {
		t.Fatalf("expected exactly one statistical call, got %d", stat.calls)
	}
}

func TestDetectScriptFallbackWhenStatisticalUnsupported(t *testing.T) {
	t.Parallel()

	// Statistical detector misreads Devanagari as an unsupported code;
	// script classification should decide instead.
	stat := &stubStatistical{code: "fi", ok: true}
	d := New(stat, zerolog.Nop())
	got := d.Detect("मैं ठीक हूं, आप कैसे हैं?")
	if got.Language != "hi" || got.Method != MethodScript {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Confidence != 0.9 {
		t.Fatalf("script decisions carry fixed 0.9 confidence, got %v", got.Confidence)
	}
}

func TestDetectFinalFallbackNeverUnknown(t *testing.T) {
	t.Parallel()

	d := New(&stubStatistical{ok: false}, zerolog.Nop())
	// Symbols only: not English, no script, no statistical answer.
	got := d.Detect("◆◆ ▲▲ ●● ◆◆ ▲▲")
	if got.Language != "hi" || got.Confidence != 0.3 || got.Method != MethodFallback {
		t.Fatalf("unexpected fallback result: %+v", got)
	}
}

func TestDetectMemoizesByContent(t *testing.T) {
	t.Parallel()

	stat := &stubStatistical{code: "bn", ok: true}
	d := New(stat, zerolog.Nop())
	text := "আমি ভাল আছি, আপনি কেমন আছেন?"
	first := d.Detect(text)
	second := d.Detect(text)
	if first != second {
		t.Fatalf("memoized result differs: %+v vs %+v", first, second)
	}
	if stat.calls != 1 {
		t.Fatalf("expected one statistical call, got %d", stat.calls)
	}
}

func TestEnglishScoreBounds(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "a", "Hello world", "नमस्ते", "12345 67890"} {
		score := englishScore(text)
		if score < 0 || score > 1 {
			t.Fatalf("englishScore(%q) = %v out of [0,1]", text, score)
		}
	}
}
