package pool

import (
	"testing"

	"github.com/xtding233/chaos-gacha/internal/gacha"
)

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"ability": Ability, " ITEM ": Item, "Random": Random} {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseCategory("weapon"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestResolveRandomCoversAllCategories(t *testing.T) {
	rng := gacha.NewSeededRNG(10)
	seen := map[Category]int{}
	for i := 0; i < 5000; i++ {
		c := Random.Resolve(rng)
		if c == Random {
			t.Fatalf("Random must resolve to a concrete category")
		}
		seen[c]++
	}
	for _, c := range Concrete {
		if seen[c] < 800 {
			t.Fatalf("category %s drawn %d times, expected roughly uniform", c, seen[c])
		}
	}
	if Skill.Resolve(rng) != Skill {
		t.Fatalf("concrete categories resolve to themselves")
	}
}
