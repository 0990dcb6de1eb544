package progress

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xtding233/chaos-gacha/internal/gacha"
)

func TestCheckRepeat(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zerolog.Nop())

	repeated, err := tr.CheckRepeat("Item", "1.Rope")
	if err != nil || repeated {
		t.Fatalf("first pull should be new: repeated=%v err=%v", repeated, err)
	}
	if tr.Points() != 0 {
		t.Fatalf("first pull must not award points, got %d", tr.Points())
	}
	repeated, err = tr.CheckRepeat("Item", "1.Rope")
	if err != nil || !repeated {
		t.Fatalf("second pull should repeat: repeated=%v err=%v", repeated, err)
	}
	if tr.Points() != 1 {
		t.Fatalf("repeat should award exactly 1 point, got %d", tr.Points())
	}
	if repeated, _ := tr.CheckRepeat("Skill", "1.Rope"); repeated {
		t.Fatalf("keys are per category")
	}
}

func TestCheckRepeatIgnoresStar(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zerolog.Nop())
	_, _ = tr.CheckRepeat("Trait", "4.Brave")
	if repeated, _ := tr.CheckRepeat("Trait", gacha.StarMarker+"4.Brave"); !repeated {
		t.Fatalf("starred element should count as a repeat")
	}
}

func TestSpendPointsNeverNegative(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zerolog.Nop())
	for i := 0; i < 6; i++ {
		_, _ = tr.CheckRepeat("Item", "1.Rope")
	}
	if tr.Points() != 5 {
		t.Fatalf("expected 5 points, got %d", tr.Points())
	}

	rng := gacha.NewSeededRNG(21)
	for i := 0; i < 200; i++ {
		n := int(rng.Float64()*8) - 1
		before := tr.Points()
		ok, err := tr.SpendPoints(n)
		if err != nil {
			t.Fatal(err)
		}
		if ok != (n >= 0 && before >= n) {
			t.Fatalf("spend %d with %d points: ok=%v", n, before, ok)
		}
		if tr.Points() < 0 {
			t.Fatalf("balance went negative after spending %d", n)
		}
	}
}

func TestClearAll(t *testing.T) {
	store := NewMemoryStore()
	tr := NewTracker(store, zerolog.Nop())
	_, _ = tr.CheckRepeat("Item", "1.Rope")
	_, _ = tr.CheckRepeat("Item", "1.Rope")
	if err := tr.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if tr.Points() != 0 || tr.SeenCount() != 0 {
		t.Fatalf("state not cleared")
	}
	reloaded := NewTracker(store, zerolog.Nop())
	if reloaded.Points() != 0 || reloaded.Seen("Item", "1.Rope") {
		t.Fatalf("cleared state not persisted")
	}
}

func TestTrackerPersistsAcrossSessions(t *testing.T) {
	store := NewFileStore(t.TempDir())
	tr := NewTracker(store, zerolog.Nop())
	_, _ = tr.CheckRepeat("Familiar", "2.Owl")
	_, _ = tr.CheckRepeat("Familiar", "2.Owl")
	_, _ = tr.CheckRepeat("Familiar", "2.Owl")

	next := NewTracker(store, zerolog.Nop())
	if next.Points() != 2 || !next.Seen("Familiar", "2.Owl") {
		t.Fatalf("reloaded tracker: points=%d seen=%v", next.Points(), next.Seen("Familiar", "2.Owl"))
	}
}

func TestTrackerDegradesOnCorruptDocuments(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Save(DocRepeats, []byte("{not json"))
	_ = store.Save(DocPoints, []byte(`{"points": -4}`))
	tr := NewTracker(store, zerolog.Nop())
	if tr.Points() != 0 || tr.SeenCount() != 0 {
		t.Fatalf("corrupt documents should fall back to defaults")
	}
}

func TestTrackerReportsWriteFailure(t *testing.T) {
	store := NewMemoryStore()
	tr := NewTracker(store, zerolog.Nop())
	boom := errors.New("disk full")
	store.FailSave = boom

	repeated, err := tr.CheckRepeat("Item", "1.Rope")
	if repeated || !errors.Is(err, boom) {
		t.Fatalf("expected reported write failure, got repeated=%v err=%v", repeated, err)
	}
	if !tr.Seen("Item", "1.Rope") {
		t.Fatalf("in-memory state should still be updated")
	}
}

func TestLoadFromLog(t *testing.T) {
	entries := []LogEntry{
		{Category: "Item", Element: "1.Rope"},
		{Category: "Item", Element: "1.Rope", Notes: "Repeated"},
		{Category: "Item", Element: "1.Rope", Notes: "Repeated"},
		{Category: "Skill", Element: "★ 3.Dash", Notes: "Bonus upgrade; Boost -1 TP"},
		{Category: "Trait", Element: "5.Calm", Notes: "Repeated; -7 TP"},
	}
	tr := NewTracker(NewMemoryStore(), zerolog.Nop())
	_, _ = tr.CheckRepeat("Ability", "9.Stale")
	if err := tr.LoadFromLog(entries); err != nil {
		t.Fatal(err)
	}
	// +1 +1 -1 +1 -7 = -5, floored
	if tr.Points() != 0 {
		t.Fatalf("points=%d want 0", tr.Points())
	}
	if tr.Seen("Ability", "9.Stale") {
		t.Fatalf("LoadFromLog must replace, not merge")
	}
	if !tr.Seen("Skill", "3.Dash") || tr.SeenCount() != 3 {
		t.Fatalf("unexpected seen set, count=%d", tr.SeenCount())
	}

	if err := tr.LoadFromLog(entries[:3]); err != nil {
		t.Fatal(err)
	}
	if tr.Points() != 2 {
		t.Fatalf("points=%d want 2", tr.Points())
	}
}

func TestLoadFromLogOrderIndependent(t *testing.T) {
	entries := []LogEntry{
		{Category: "Item", Element: "1.Rope", Notes: "Repeated"},
		{Category: "Item", Element: "2.Lamp", Notes: "Repeated"},
		{Category: "Item", Element: "2.Lamp", Notes: "Repeated"},
		{Category: "Skill", Element: "3.Dash", Notes: "Boost -2 TP"},
		{Category: "Trait", Element: "5.Calm"},
	}
	reversed := make([]LogEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	a := NewTracker(NewMemoryStore(), zerolog.Nop())
	b := NewTracker(NewMemoryStore(), zerolog.Nop())
	_ = a.LoadFromLog(entries)
	_ = b.LoadFromLog(reversed)
	if a.Points() != b.Points() || a.Points() != 1 {
		t.Fatalf("points differ: %d vs %d", a.Points(), b.Points())
	}
	if a.SeenCount() != b.SeenCount() {
		t.Fatalf("seen sets differ")
	}
	for _, e := range entries {
		if a.Seen(e.Category, e.Element) != b.Seen(e.Category, e.Element) {
			t.Fatalf("membership differs for %s", Key(e.Category, e.Element))
		}
	}
}
