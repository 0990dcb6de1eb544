package history

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xtding233/chaos-gacha/internal/draw"
)

func TestReadToleratesBOMAndReordering(t *testing.T) {
	src := "\ufeffElement,Type,Rarity,Tier,Luck,Description,Color,Extra\n" +
		"1.Rope,Item,1.25,Common,88.50%,\"A rope,\nlong\",#aaaaaa,x\n"
	recs, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.Type != "Item" || r.Element != "1.Rope" || r.Rarity != 1.25 || r.Luck != 88.5 {
		t.Fatalf("unexpected record %+v", r)
	}
	if r.Description != "A rope,\nlong" || r.Notes != "" {
		t.Fatalf("unexpected description/notes %+v", r)
	}
}

func TestReadCoercesBadNumbers(t *testing.T) {
	src := "Type,Element,Rarity,Tier,Luck,Description,Color,Notes\n" +
		"Skill,2.Dash,fast,Rare,lucky%,,#fff,Repeated\n"
	recs, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if recs[0].Rarity != Unknown || recs[0].Luck != Unknown {
		t.Fatalf("expected Unknown sentinels, got %+v", recs[0])
	}
	if recs[0].Notes != "Repeated" {
		t.Fatalf("notes %q", recs[0].Notes)
	}
}

func TestReadMissingColumns(t *testing.T) {
	_, err := Read(strings.NewReader("Type,Element,Rarity\nItem,1.Rope,1\n"))
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	if !strings.Contains(err.Error(), "Tier") || !strings.Contains(err.Error(), "Color") {
		t.Fatalf("error should name missing columns: %v", err)
	}
	if _, err := Read(strings.NewReader("")); !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("empty file: %v", err)
	}
}

func TestWriteThenRead(t *testing.T) {
	recs := []Record{
		FromResult(draw.Result{
			Category: "Trait", Element: "★ 4.Brave", Rarity: 6.31, Tier: "Epic",
			Luck: 0.1, Description: "Fearless.", Color: "#a335ee",
			Notes: "Bonus upgrade; Boost -7 TP",
		}),
		{Type: "Item", Element: "1.Rope", Rarity: Unknown, Luck: Unknown},
	}
	var buf bytes.Buffer
	if err := Write(&buf, recs); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\ufeffType,Element,Rarity,Tier,Luck,") {
		t.Fatalf("missing BOM or header: %q", buf.String()[:40])
	}
	if !strings.Contains(buf.String(), ",0.10%,") {
		t.Fatalf("luck should carry a percent sign: %q", buf.String())
	}
	back, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[0] != recs[0] || back[1].Rarity != Unknown || back[1].Luck != Unknown {
		t.Fatalf("round trip mismatch: %+v", back)
	}

	entries := ToLogEntries(back)
	if entries[0].Category != "Trait" || entries[0].Element != "★ 4.Brave" || entries[0].Notes != recs[0].Notes {
		t.Fatalf("unexpected log entry %+v", entries[0])
	}
}
