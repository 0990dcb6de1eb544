package pool

import (
	"fmt"
	"strings"

	"github.com/xtding233/chaos-gacha/internal/gacha"
)

// Category names one item pool.
type Category string

const (
	Ability  Category = "Ability"
	Item     Category = "Item"
	Familiar Category = "Familiar"
	Trait    Category = "Trait"
	Skill    Category = "Skill"
	// Random resolves to one concrete category per draw.
	Random Category = "Random"
)

// Concrete lists the categories backed by a pool file, in display order.
var Concrete = []Category{Ability, Item, Familiar, Trait, Skill}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range append(Concrete, Random) {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Resolve maps Random onto a uniformly chosen concrete category.
// Concrete categories are returned unchanged.
func (c Category) Resolve(rng gacha.RandomSource) Category {
	if c != Random {
		return c
	}
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	i := int(rng.Float64() * float64(len(Concrete)))
	if i >= len(Concrete) {
		i = len(Concrete) - 1
	}
	return Concrete[i]
}
