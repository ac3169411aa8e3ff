package provider

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	name string
}

func (p *fakeProvider) Translate(_ context.Context, req Request) (*Response, error) {
	return &Response{Text: req.Text, Provider: p.name}, nil
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Supports(_, _ string) bool { return true }

func TestAcquireLoadsOnce(t *testing.T) {
	t.Parallel()

	registry := NewLoadRegistry(1000, zerolog.Nop())
	loads := 0
	load := func() (Provider, error) {
		loads++
		return &fakeProvider{name: "a"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := registry.Acquire("a", 100, load); err != nil {
				t.Errorf("acquire: %v", err)
			}
		}()
	}
	wg.Wait()

	if loads != 1 {
		t.Fatalf("backend loaded %d times, want 1", loads)
	}
}

func TestAcquireEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	registry := NewLoadRegistry(250, zerolog.Nop())
	mustAcquire := func(name string) {
		t.Helper()
		_, err := registry.Acquire(name, 100, func() (Provider, error) {
			return &fakeProvider{name: name}, nil
		})
		if err != nil {
			t.Fatalf("acquire %s: %v", name, err)
		}
	}

	mustAcquire("a")
	mustAcquire("b")
	mustAcquire("a") // refresh a so b is the eviction candidate
	mustAcquire("c") // 300MB total exceeds the 250MB budget

	stats := registry.Stats()
	if stats.ResidentMB > 250 {
		t.Fatalf("resident size %dMB exceeds budget", stats.ResidentMB)
	}
	names := map[string]bool{}
	for _, backend := range stats.Resident {
		names[backend.Name] = true
	}
	if names["b"] {
		t.Fatalf("expected least-recently-used backend b to be evicted, resident: %v", names)
	}
	if !names["a"] || !names["c"] {
		t.Fatalf("unexpected resident set: %v", names)
	}
}

func TestEvict(t *testing.T) {
	t.Parallel()

	registry := NewLoadRegistry(1000, zerolog.Nop())
	if registry.Evict("missing") {
		t.Fatalf("evicting a non-resident backend must return false")
	}
	if _, err := registry.Acquire("a", 10, func() (Provider, error) {
		return &fakeProvider{name: "a"}, nil
	}); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !registry.Evict("a") {
		t.Fatalf("expected eviction of resident backend")
	}
	if got := registry.Stats().ResidentMB; got != 0 {
		t.Fatalf("expected empty registry, got %dMB", got)
	}
}

func TestBilingualSupports(t *testing.T) {
	t.Parallel()

	p := NewBilingual("", "", 0)
	cases := []struct {
		src, tgt string
		want     bool
	}{
		{"en", "hi", true},
		{"ta", "en", true},
		{"hi", "ta", false},
		{"en", "en", false},
		{"en", "xx", false},
		{"xx", "en", false},
	}
	for _, tc := range cases {
		if got := p.Supports(tc.src, tc.tgt); got != tc.want {
			t.Fatalf("Supports(%s, %s) = %v, want %v", tc.src, tc.tgt, got, tc.want)
		}
	}
}

func TestMultilingualSupports(t *testing.T) {
	t.Parallel()

	p := NewMultilingual("", "", 0)
	if !p.Supports("hi", "ta") {
		t.Fatalf("expected catalog pair to be supported")
	}
	if p.Supports("hi", "hi") {
		t.Fatalf("identity pair must not be supported")
	}
	if p.Supports("hi", "xx") {
		t.Fatalf("non-catalog target must not be supported")
	}
}
