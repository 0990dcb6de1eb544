package token

import "testing"

func TestNotesString(t *testing.T) {
	cases := []struct {
		n    Notes
		want string
	}{
		{Notes{}, ""},
		{Notes{Repeated: true}, "Repeated"},
		{Notes{Upgraded: true, Spent: 12}, "Bonus upgrade; Boost -12 TP"},
		{Notes{Repeated: true, Upgraded: true, Spent: 5}, "Repeated; Bonus upgrade; Boost -5 TP"},
	}
	for _, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Fatalf("%+v.String()=%q want %q", c.n, got, c.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	n := Notes{Repeated: true, Upgraded: true, Spent: 7}
	if got := Parse(n.String()); got != n {
		t.Fatalf("round trip: got %+v want %+v", got, n)
	}
}

func TestParseHandEdited(t *testing.T) {
	cases := []struct {
		in    string
		delta int
	}{
		{"repeated!", 1},
		{"spent -3 tp and later - 2 TP", -5},
		{"REPEATED, -10TP", -9},
		{"nothing here", 0},
		{"-4 TPX is not a spend", 0},
	}
	for _, c := range cases {
		if got := Parse(c.in).Delta(); got != c.delta {
			t.Fatalf("Parse(%q).Delta()=%d want %d", c.in, got, c.delta)
		}
	}
}
