package config

import (
	"fmt"
	"strings"

	"github.com/xtding233/chaos-gacha/internal/gacha"
)

// DefaultPresets are the shipped rarity windows, lowest first.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "Bronze", Window: gacha.Window{Min: 0.1, Target: 1.3, Max: 3.3}, Color: "#cd7f32"},
		{Name: "Silver", Window: gacha.Window{Min: 0.5, Target: 2.3, Max: 4.3}, Color: "#c0c0c0"},
		{Name: "Gold", Window: gacha.Window{Min: 1.5, Target: 3.3, Max: 5.3}, Color: "#ffd700"},
		{Name: "Platinum", Window: gacha.Window{Min: 2.5, Target: 4.3, Max: 6.3}, Color: "#e5e4e2"},
		{Name: "Diamond", Window: gacha.Window{Min: 3.5, Target: 5.3, Max: 7.3}, Color: "#b9f2ff"},
		{Name: "Legendary", Window: gacha.Window{Min: 4.5, Target: 6.3, Max: 8.3}, Color: "#f7d40a"},
		{Name: "Mythical", Window: gacha.Window{Min: 5.5, Target: 7.3, Max: 9.3}, Color: "#fc61ff"},
		{Name: "Divine", Window: gacha.Window{Min: 6.5, Target: 8.3, Max: 10.0}, Color: "#ff8c00"},
	}
}

// FindPreset looks a preset up by case-insensitive name.
func (c Config) FindPreset(name string) (Preset, error) {
	for _, p := range c.Presets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

func presetsFromRaw(in []PresetConfig) []Preset {
	out := make([]Preset, 0, len(in))
	for _, p := range in {
		out = append(out, Preset{
			Name:   p.Name,
			Window: gacha.Window{Min: p.Min, Target: p.Target, Max: p.Max},
			Color:  p.Color,
		})
	}
	return out
}
