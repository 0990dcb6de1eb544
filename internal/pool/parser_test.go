package pool

import (
	"strings"
	"testing"
)

func parse(t *testing.T, src string) Parsed {
	t.Helper()
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return p
}

func TestParseRecordsAndDescriptions(t *testing.T) {
	src := "1.Fireball, 3.5\n" +
		"Throws a ball of fire.\n" +
		"## Burns things.\n" +
		"2.Ice Lance,4.25, extra, fields\n" +
		"Pierces.\n"
	p := parse(t, src)
	if len(p.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(p.Records))
	}
	first := p.Records[0]
	if first.Element != "1.Fireball" || first.Rarity != 3.5 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Description != "Throws a ball of fire.\n Burns things." {
		t.Fatalf("unexpected description %q", first.Description)
	}
	if p.Records[1].Element != "2.Ice Lance" || p.Records[1].Rarity != 4.25 {
		t.Fatalf("unexpected second record: %+v", p.Records[1])
	}
}

func TestParseEmptyDescription(t *testing.T) {
	p := parse(t, "1.A,1.0\n2.B,2.0\n")
	if len(p.Records) != 2 || p.Records[0].Description != "" || p.Records[1].Description != "" {
		t.Fatalf("expected two records without description: %+v", p.Records)
	}
}

func TestParseMultiParagraphAndTrailingBlankLines(t *testing.T) {
	p := parse(t, "7.Shield,2.0\nFirst paragraph.\n\nSecond paragraph.\n\n\n")
	if len(p.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(p.Records))
	}
	if got := p.Records[0].Description; got != "First paragraph.\n\nSecond paragraph." {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestParseSkipsMalformedHeaders(t *testing.T) {
	src := "1.Good,1.0\nok\n" +
		"2.NoRarity\nlost body\n" +
		"3.Bad,abc\n" +
		"4.TooRare,11\n" +
		"5.Fine,  9.5 \nalso ok\n"
	p := parse(t, src)
	if len(p.Records) != 2 || p.Records[0].Element != "1.Good" || p.Records[1].Element != "5.Fine" {
		t.Fatalf("unexpected records: %+v", p.Records)
	}
	if len(p.Skipped) != 3 {
		t.Fatalf("expected 3 skipped headers, got %+v", p.Skipped)
	}
	if p.Skipped[0].Line != 3 || p.Skipped[0].Reason != "missing rarity field" {
		t.Fatalf("unexpected skip: %+v", p.Skipped[0])
	}
	if p.Orphans != 1 {
		t.Fatalf("body under a skipped header should be orphaned, got %d", p.Orphans)
	}
	if p.Records[1].Description != "also ok" {
		t.Fatalf("unexpected description %q", p.Records[1].Description)
	}
}

func TestParseCRLFAndBOM(t *testing.T) {
	p := parse(t, "\ufeff1.Torch,0.5\r\nLights the way.\r\n")
	if len(p.Records) != 1 || p.Records[0].Element != "1.Torch" {
		t.Fatalf("unexpected records: %+v", p.Records)
	}
	if p.Records[0].Description != "Lights the way." {
		t.Fatalf("CR should be stripped, got %q", p.Records[0].Description)
	}
}

func TestParsePreambleIsOrphaned(t *testing.T) {
	p := parse(t, "Header text\n\n1.A,1.0\nbody\n")
	if p.Orphans != 1 || len(p.Records) != 1 || p.Records[0].Description != "body" {
		t.Fatalf("unexpected parse: %+v", p)
	}
}
