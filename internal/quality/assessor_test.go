package quality

import "testing"

func TestValidateRejectsEmptyAndIdentical(t *testing.T) {
	t.Parallel()

	a := New(DefaultWeights())
	if a.Validate("hello", "", "hi") {
		t.Fatalf("empty candidate must be rejected")
	}
	if a.Validate("hello", "   ", "hi") {
		t.Fatalf("whitespace candidate must be rejected")
	}
	if a.Validate("hello world", "hello world", "hi") {
		t.Fatalf("candidate identical to source must be rejected")
	}
}

func TestValidateRejectsKnownBadBoilerplate(t *testing.T) {
	t.Parallel()

	a := New(DefaultWeights())
	for _, bad := range []string{
		"Eguraldi ona dago",
		"Il fait beau aujourd'hui",
		"Hace buen tiempo hoy",
	} {
		if a.Validate("the weather is nice today", bad, "en") {
			t.Fatalf("known-bad output %q must be rejected", bad)
		}
	}
}

func TestValidateScriptGate(t *testing.T) {
	t.Parallel()

	a := New(DefaultWeights())
	// Candidate for Hindi with zero Devanagari characters is rejected
	// regardless of anything else.
	if a.Validate("the weather is nice today", "the weather translation", "hi") {
		t.Fatalf("candidate without target script must be rejected")
	}
	if !a.Validate("the weather is nice today", "आज मौसम अच्छा है", "hi") {
		t.Fatalf("valid Devanagari candidate must pass")
	}
	// Unscripted targets have no script gate.
	if !a.Validate("आज मौसम अच्छा है", "the weather is nice today", "en") {
		t.Fatalf("valid English candidate must pass")
	}
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	a := New(DefaultWeights())
	cases := [][4]string{
		{"the weather is nice today", "आज मौसम अच्छा है", "en", "hi"},
		{"Delhi recorded 42 degrees on June 3", "दिल्ली में 3 जून को 42 डिग्री", "en", "hi"},
		{"", "", "en", "hi"},
		{"short", "a much much much much much much longer candidate text", "en", "en"},
		{"123 456", "no numbers here", "en", "ta"},
	}
	for _, tc := range cases {
		m := a.Score(tc[0], tc[1], tc[2], tc[3])
		for name, v := range map[string]float64{
			"length_ratio":           m.LengthRatio,
			"character_preservation": m.CharacterPreservation,
			"script_consistency":     m.ScriptConsistency,
			"semantic_coherence":     m.SemanticCoherence,
			"confidence":             m.Confidence,
		} {
			if v < 0 || v > 1 {
				t.Fatalf("%s out of [0,1] for %q -> %q: %v", name, tc[0], tc[1], v)
			}
		}
		if m.Confidence > 0.95 {
			t.Fatalf("confidence above cap: %v", m.Confidence)
		}
	}
}

func TestScoreNumberPreservation(t *testing.T) {
	t.Parallel()

	a := New(DefaultWeights())
	full := a.Score("meeting at 10 on floor 3", "बैठक 10 बजे तीसरी 3 मंजिल पर", "en", "hi")
	if full.CharacterPreservation != 1.0 {
		t.Fatalf("expected full number preservation, got %v", full.CharacterPreservation)
	}
	none := a.Score("meeting at 10 on floor 3", "बैठक मंजिल पर", "en", "hi")
	if none.CharacterPreservation != 0.0 {
		t.Fatalf("expected zero number preservation, got %v", none.CharacterPreservation)
	}
}

func TestScoreUsesConfiguredWeights(t *testing.T) {
	t.Parallel()

	// All weight on script consistency: a pure-Devanagari candidate for
	// Hindi should score 1.0 before the cap, so exactly the cap.
	a := New(Weights{ScriptConsistency: 1.0})
	m := a.Score("the weather is nice today", "आजमौसमअच्छाहै", "en", "hi")
	if m.ScriptConsistency != 1.0 {
		t.Fatalf("expected full script consistency, got %v", m.ScriptConsistency)
	}
	if m.Confidence != 0.95 {
		t.Fatalf("expected capped confidence 0.95, got %v", m.Confidence)
	}
}
