package gacha

import "testing"

func TestTierFor(t *testing.T) {
	cases := []struct {
		rarity float64
		want   string
		color  string
	}{
		{0, "Trash", "#a39589"},
		{0.99, "Trash", "#a39589"},
		{1.0, "Common", "#9c7e5a"},
		{2.5, "Uncommon", "#aed1d1"},
		{3.0, "Rare", "#11d939"},
		{4.0, "Elite", "#1172d9"},
		{6.99, "Legendary", "#f7d40a"},
		{8.0, "Divine", "#ff8c00"},
		{9.0, "Transcendent", "#ff0000"},
		{10.0, "Transcendent", "#ff0000"},
		{12.0, "Transcendent", "#ff0000"},
		{-1, "Trash", "#a39589"},
	}
	for _, c := range cases {
		name, color := TierAndColor(c.rarity)
		if name != c.want || color != c.color {
			t.Fatalf("TierAndColor(%v)=(%s,%s) want (%s,%s)", c.rarity, name, color, c.want, c.color)
		}
	}
}

func TestTierTotalOnRange(t *testing.T) {
	for r := 0.0; r <= 10.0; r += 0.01 {
		if TierFor(r).String() == "Unknown" {
			t.Fatalf("rarity %v has no tier", r)
		}
	}
}

func TestEstimateLuck(t *testing.T) {
	cases := []struct {
		rarity, min, max, want float64
	}{
		{5, 5, 5, 100},
		{7.3, 5, 5, 100},
		{1, 1, 3, 100},
		{2, 1, 3, 50},
		{3, 1, 3, 0.1},
		{2.5, 1, 3, 25},
	}
	for _, c := range cases {
		if got := EstimateLuck(c.rarity, c.min, c.max); got != c.want {
			t.Fatalf("EstimateLuck(%v, %v, %v)=%v want %v", c.rarity, c.min, c.max, got, c.want)
		}
	}
}

func TestLuckRating(t *testing.T) {
	cases := map[float64]string{
		100: "Below Average",
		80:  "Average",
		60:  "Above Average",
		40:  "Notable",
		20:  "Rare",
		10:  "Exceptional Pull",
		0.1: "Mythic Pull",
	}
	for luck, want := range cases {
		if got := LuckRating(luck); got != want {
			t.Fatalf("LuckRating(%v)=%q want %q", luck, got, want)
		}
	}
}
