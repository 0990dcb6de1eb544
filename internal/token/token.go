// Package token formats and parses the token point (TP) annotations carried in
// a pull's notes. Notes are free text; only two patterns carry meaning:
// a "repeated" marker (+1 TP) and any number of "-N TP" spends.
package token

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	Name           = "TP"
	RepeatedMarker = "Repeated"
	UpgradeMarker  = "Bonus upgrade"
)

var spendRe = regexp.MustCompile(`(?i)-\s*(\d+)\s*TP\b`)

// Notes is the structured form of a pull's annotation.
type Notes struct {
	Repeated bool
	Upgraded bool
	Spent    int // TP spent on the boost
}

// String renders notes as "Repeated; Bonus upgrade; Boost -12 TP".
func (n Notes) String() string {
	var parts []string
	if n.Repeated {
		parts = append(parts, RepeatedMarker)
	}
	if n.Upgraded {
		parts = append(parts, UpgradeMarker)
	}
	if n.Spent > 0 {
		parts = append(parts, "Boost -"+strconv.Itoa(n.Spent)+" "+Name)
	}
	return strings.Join(parts, "; ")
}

// Parse reads back what String wrote, plus hand-edited variants.
func Parse(s string) Notes {
	n := Notes{
		Repeated: strings.Contains(strings.ToLower(s), strings.ToLower(RepeatedMarker)),
		Upgraded: strings.Contains(strings.ToLower(s), strings.ToLower(UpgradeMarker)),
	}
	for _, m := range spendRe.FindAllStringSubmatch(s, -1) {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		n.Spent += v
	}
	return n
}

// Delta is the net TP change an annotation stands for.
func (n Notes) Delta() int {
	d := -n.Spent
	if n.Repeated {
		d++
	}
	return d
}
