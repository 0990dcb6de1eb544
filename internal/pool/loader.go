package pool

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/xtding233/chaos-gacha/internal/gacha"
)

// Paths maps categories onto pool files.
type Paths struct {
	BaseDir string // directory holding <Category>.txt files, e.g. gachafiles
}

func (p Paths) PoolPath(c Category) string {
	return filepath.Join(p.BaseDir, string(c)+".txt")
}

// Pool is one category's entries weighted for a single request.
type Pool struct {
	Category Category // concrete category, Random already resolved
	Entries  []gacha.Entry
	// WeightInRange sums the weights of entries with min < rarity <= max.
	WeightInRange float64
	Skipped       int
}

type cached struct {
	modTime time.Time
	size    int64
	parsed  Parsed
}

// Loader reads pool files. Parsed files are cached and re-read whenever the
// file's mtime or size changes, so edits are picked up on the next draw.
type Loader struct {
	paths Paths
	log   zerolog.Logger

	mu    sync.RWMutex
	cache map[Category]cached
}

// NewLoader creates a pool loader rooted at baseDir.
func NewLoader(baseDir string, log zerolog.Logger) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		log:   log,
		cache: make(map[Category]cached),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// Load resolves c, reads its pool and weights every entry against w.Target.
func (l *Loader) Load(c Category, w gacha.Window, sigma float64, rng gacha.RandomSource) (Pool, error) {
	c = c.Resolve(rng)
	parsed, err := l.Parsed(c)
	if err != nil {
		return Pool{}, err
	}

	p := Pool{
		Category: c,
		Entries:  make([]gacha.Entry, 0, len(parsed.Records)),
		Skipped:  len(parsed.Skipped),
	}
	for _, r := range parsed.Records {
		weight := gacha.Weight(r.Rarity, w.Target, sigma)
		p.Entries = append(p.Entries, gacha.Entry{
			Element:     r.Element,
			Rarity:      r.Rarity,
			Description: r.Description,
			Weight:      weight,
		})
		if w.Min < r.Rarity && r.Rarity <= w.Max {
			p.WeightInRange += weight
		}
	}
	return p, nil
}

// Parsed returns the parsed pool file for a concrete category.
func (l *Loader) Parsed(c Category) (Parsed, error) {
	if c == Random {
		return Parsed{}, fmt.Errorf("category %s must be resolved before reading", c)
	}
	path := l.paths.PoolPath(c)
	fi, err := os.Stat(path)
	if err != nil {
		return Parsed{}, &NotFoundError{Category: c, Path: path, Err: err}
	}

	l.mu.RLock()
	hit, ok := l.cache[c]
	l.mu.RUnlock()
	if ok && hit.modTime.Equal(fi.ModTime()) && hit.size == fi.Size() {
		return hit.parsed, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Parsed{}, &NotFoundError{Category: c, Path: path, Err: err}
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return Parsed{}, &NotFoundError{Category: c, Path: path, Err: err}
	}
	for _, s := range parsed.Skipped {
		l.log.Debug().Str("category", string(c)).Int("line", s.Line).Str("reason", s.Reason).Msg("skipping pool record")
	}

	l.mu.Lock()
	l.cache[c] = cached{modTime: fi.ModTime(), size: fi.Size(), parsed: parsed}
	l.mu.Unlock()
	return parsed, nil
}

// Invalidate drops cached pools; no categories means all of them.
func (l *Loader) Invalidate(cats ...Category) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(cats) == 0 {
		l.cache = make(map[Category]cached)
		return
	}
	for _, c := range cats {
		delete(l.cache, c)
	}
}
