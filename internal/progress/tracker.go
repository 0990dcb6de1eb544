package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/xtding233/chaos-gacha/internal/gacha"
	"github.com/xtding233/chaos-gacha/internal/token"
)

// LogEntry is the part of a history record the tracker replays.
type LogEntry struct {
	Category string
	Element  string
	Notes    string
}

type pointsDoc struct {
	Points int `json:"points"`
}

// Tracker is the repeat/points state machine. It is safe for concurrent use;
// each operation holds one lock across its read-modify-write and persist.
type Tracker struct {
	store Store
	log   zerolog.Logger

	mu     sync.Mutex
	seen   map[string]bool
	points int
}

// Key is the repeat-detection key for a pull. The upgrade star is ignored so
// a starred pull and a plain pull of the same element are the same item.
func Key(category, element string) string {
	return category + "::" + gacha.StripStar(element)
}

// NewTracker loads both documents from store. Missing or unreadable documents
// start empty; read failures are logged, not returned.
func NewTracker(store Store, log zerolog.Logger) *Tracker {
	t := &Tracker{store: store, log: log, seen: make(map[string]bool)}

	if b, err := store.Load(DocRepeats); err == nil {
		var seen map[string]bool
		if err := json.Unmarshal(b, &seen); err != nil {
			log.Warn().Err(err).Str("doc", DocRepeats).Msg("ignoring corrupt progression document")
		} else if seen != nil {
			t.seen = seen
		}
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Str("doc", DocRepeats).Msg("progression store unreadable, starting empty")
	}

	if b, err := store.Load(DocPoints); err == nil {
		var doc pointsDoc
		if err := json.Unmarshal(b, &doc); err != nil {
			log.Warn().Err(err).Str("doc", DocPoints).Msg("ignoring corrupt progression document")
		} else if doc.Points < 0 {
			log.Warn().Int("points", doc.Points).Msg("negative balance on disk, resetting to 0")
		} else {
			t.points = doc.Points
		}
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Str("doc", DocPoints).Msg("progression store unreadable, starting at 0")
	}
	return t
}

// CheckRepeat records a pull. A known key earns one point and reports true;
// a new key is remembered and reports false. The in-memory state is updated
// even when persisting fails; err only reports the failed write.
func (t *Tracker) CheckRepeat(category, element string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := Key(category, element)
	if t.seen[key] {
		t.points++
		return true, t.savePoints()
	}
	t.seen[key] = true
	return false, t.saveRepeats()
}

// SpendPoints deducts n when the balance covers it. Negative n is refused.
func (t *Tracker) SpendPoints(n int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n < 0 || t.points < n {
		return false, nil
	}
	t.points -= n
	return true, t.savePoints()
}

func (t *Tracker) Points() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.points
}

// Seen reports whether a pull of element in category was recorded before.
func (t *Tracker) Seen(category, element string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen[Key(category, element)]
}

// SeenCount is the number of distinct pulls recorded.
func (t *Tracker) SeenCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// ClearAll empties the repeat set and zeroes the balance.
func (t *Tracker) ClearAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen = make(map[string]bool)
	t.points = 0
	return errors.Join(t.saveRepeats(), t.savePoints())
}

// LoadFromLog replaces all state with what entries imply: every entry's key is
// seen, and the balance is the sum of each entry's TP delta (+1 per repeated
// marker, -N per "-N TP"), floored at 0. The result does not depend on order.
func (t *Tracker) LoadFromLog(entries []LogEntry) error {
	seen := make(map[string]bool, len(entries))
	points := 0
	for _, e := range entries {
		seen[Key(e.Category, e.Element)] = true
		points += token.Parse(e.Notes).Delta()
	}
	if points < 0 {
		points = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen = seen
	t.points = points
	return errors.Join(t.saveRepeats(), t.savePoints())
}

func (t *Tracker) saveRepeats() error {
	b, err := json.MarshalIndent(t.seen, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", DocRepeats, err)
	}
	return t.save(DocRepeats, b)
}

func (t *Tracker) savePoints() error {
	b, err := json.MarshalIndent(pointsDoc{Points: t.points}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", DocPoints, err)
	}
	return t.save(DocPoints, b)
}

func (t *Tracker) save(doc string, b []byte) error {
	if err := t.store.Save(doc, b); err != nil {
		t.log.Error().Err(err).Str("doc", doc).Msg("persist progression")
		return fmt.Errorf("persist %s: %w", doc, err)
	}
	return nil
}
