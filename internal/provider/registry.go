package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMemoryBudgetMB bounds the estimated memory of resident
// backends before least-recently-used eviction kicks in.
const DefaultMemoryBudgetMB = 8192

// LoadRegistry tracks which translation backends are currently
// resident. It is the only process-wide shared mutable state: a single
// mutex guards the check-lock-check load path so that no backend is
// loaded twice concurrently, and least-recently-used entries are
// evicted once the estimated memory budget is exceeded.
type LoadRegistry struct {
	mu       sync.Mutex
	budgetMB int
	entries  map[string]*registryEntry
	logger   zerolog.Logger
}

type registryEntry struct {
	provider   Provider
	sizeMB     int
	loadedAt   time.Time
	lastAccess time.Time
}

// RegistryStats is a point-in-time snapshot of the registry.
type RegistryStats struct {
	Resident   []ResidentBackend `json:"resident"`
	ResidentMB int               `json:"resident_mb"`
	BudgetMB   int               `json:"budget_mb"`
}

// ResidentBackend describes one loaded backend.
type ResidentBackend struct {
	Name       string    `json:"name"`
	SizeMB     int       `json:"size_mb"`
	LoadedAt   time.Time `json:"loaded_at"`
	LastAccess time.Time `json:"last_access"`
}

// NewLoadRegistry builds a registry with the given memory budget in MB.
func NewLoadRegistry(budgetMB int, logger zerolog.Logger) *LoadRegistry {
	if budgetMB <= 0 {
		budgetMB = DefaultMemoryBudgetMB
	}
	return &LoadRegistry{
		budgetMB: budgetMB,
		entries:  make(map[string]*registryEntry),
		logger:   logger,
	}
}

// Acquire returns the resident backend named name, loading it with load
// when absent. Loading happens under the registry mutex so concurrent
// callers cannot load the same backend twice.
func (r *LoadRegistry) Acquire(name string, sizeMB int, load func() (Provider, error)) (Provider, error) {
	if r == nil {
		return nil, fmt.Errorf("load registry is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("backend name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[name]; ok {
		entry.lastAccess = time.Now()
		return entry.provider, nil
	}

	if load == nil {
		return nil, fmt.Errorf("%w: %s is not resident and no loader was given", ErrUnavailable, name)
	}

	started := time.Now()
	p, err := load()
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrUnavailable, name, err)
	}

	now := time.Now()
	r.entries[name] = &registryEntry{
		provider:   p,
		sizeMB:     sizeMB,
		loadedAt:   now,
		lastAccess: now,
	}
	r.logger.Info().
		Str("backend", name).
		Int("size_mb", sizeMB).
		Dur("load_time", now.Sub(started)).
		Msg("translation backend loaded")

	r.evictOverBudgetLocked(name)
	return p, nil
}

// Evict removes a resident backend. Returns false when it was not
// resident.
func (r *LoadRegistry) Evict(name string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	r.logger.Info().Str("backend", name).Msg("translation backend evicted")
	return true
}

// Stats snapshots the resident backends.
func (r *LoadRegistry) Stats() RegistryStats {
	if r == nil {
		return RegistryStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := RegistryStats{BudgetMB: r.budgetMB}
	for name, entry := range r.entries {
		stats.Resident = append(stats.Resident, ResidentBackend{
			Name:       name,
			SizeMB:     entry.sizeMB,
			LoadedAt:   entry.loadedAt,
			LastAccess: entry.lastAccess,
		})
		stats.ResidentMB += entry.sizeMB
	}
	sort.Slice(stats.Resident, func(i, j int) bool {
		return stats.Resident[i].Name < stats.Resident[j].Name
	})
	return stats
}

// evictOverBudgetLocked drops least-recently-used entries until the
// estimated total fits the budget. The entry named keep survives even
// when it alone exceeds the budget.
func (r *LoadRegistry) evictOverBudgetLocked(keep string) {
	for {
		total := 0
		for _, entry := range r.entries {
			total += entry.sizeMB
		}
		if total <= r.budgetMB {
			return
		}

		oldestName := ""
		var oldest time.Time
		for name, entry := range r.entries {
			if name == keep {
				continue
			}
			if oldestName == "" || entry.lastAccess.Before(oldest) {
				oldestName = name
				oldest = entry.lastAccess
			}
		}
		if oldestName == "" {
			return
		}
		delete(r.entries, oldestName)
		r.logger.Warn().
			Str("backend", oldestName).
			Int("budget_mb", r.budgetMB).
			Msg("translation backend evicted over memory budget")
	}
}
