package gacha

import (
	"strings"
	"testing"
)

func TestEnginePullFindsNearbyEntries(t *testing.T) {
	e := NewEngine(DefaultParams(), NewSeededRNG(2024))
	pool := weighted(1.0, Entry{Element: "1.E1", Rarity: 1.0}, Entry{Element: "2.E2", Rarity: 1.2})

	rep, err := RunMonteCarlo(e, pool, SimParams{Window: Window{Min: 0.5, Target: 1.0, Max: 2.0}, Trials: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if rep.HitRate < 0.9 {
		t.Fatalf("hit rate %.3f below 0.9", rep.HitRate)
	}
	if rep.Attempts.Mean < 1 || rep.Attempts.P99 > 10 {
		t.Fatalf("attempt stats out of range: %+v", rep.Attempts)
	}
}

func TestEnginePullGivesUpAfterMaxAttempts(t *testing.T) {
	e := NewEngine(DefaultParams(), NewSeededRNG(1))
	pool := weighted(9, Entry{Element: "1.Far", Rarity: 9.5})
	pull, ok := e.Pull(pool, Window{Min: 0, Target: 0.5, Max: 1}, Boost{})
	if ok {
		t.Fatalf("entry outside the window must never match: %+v", pull)
	}
	if pull.Attempts != 10 {
		t.Fatalf("attempts=%d, want 10", pull.Attempts)
	}
}

func TestEngineForcedBonus(t *testing.T) {
	p := DefaultParams()
	p.BonusChance = 1
	e := NewEngine(p, NewSeededRNG(8))
	pool := weighted(2, Entry{Element: "1.Base", Rarity: 2.0}, Entry{Element: "2.Up", Rarity: 4.0})

	pull, ok := e.Pull(pool, Window{Min: 2, Target: 2, Max: 2}, Boost{Enabled: true, Points: 10})
	if !ok {
		t.Fatalf("expected a pull")
	}
	if !strings.HasPrefix(pull.Entry.Element, StarMarker) {
		t.Fatalf("element %q should carry the star marker", pull.Entry.Element)
	}
	if pull.Entry.Rarity > MaxRarity {
		t.Fatalf("rarity %v above max", pull.Entry.Rarity)
	}
}

func TestRunMonteCarloRejectsBadWindow(t *testing.T) {
	e := NewEngine(DefaultParams(), NewSeededRNG(1))
	if _, err := RunMonteCarlo(e, nil, SimParams{Window: Window{Min: 3, Target: 2, Max: 4}, Trials: 10}); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]float64{1, 2, 3, 4, 5})
	if s.Mean != 3 || s.P50 != 3 || s.Var != 2 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if empty := calcStats(nil); empty.Mean != 0 {
		t.Fatalf("empty stats should be zero")
	}
}
