package language

import "testing"

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	if got := NormalizeCode(" HI_in "); got != "hi" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode("en-US"); got != "en" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode("bn"); got != "bn" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode(" "); got != "" {
		t.Fatalf("expected empty code for blank input, got %q", got)
	}
	if got := NormalizeCode("123"); got != "" {
		t.Fatalf("expected empty code for invalid input, got %q", got)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	codes := Codes()
	if len(codes) != 23 {
		t.Fatalf("unexpected catalog size: got %d want 23", len(codes))
	}
	for _, code := range codes {
		if !IsSupported(code) {
			t.Fatalf("catalog code %q not reported as supported", code)
		}
	}
	if IsSupported("xx") {
		t.Fatalf("expected xx to be unsupported")
	}
	if !IsRegional("ta") {
		t.Fatalf("expected ta to be regional")
	}
	if IsRegional(Universal) {
		t.Fatalf("universal code must not be regional")
	}
	if got := Name("ml"); got != "Malayalam" {
		t.Fatalf("unexpected display name: %q", got)
	}
}
