// Package history reads and writes the pull history CSV the UI exports.
//
// Columns are Type, Element, Rarity, Tier, Luck, Description, Color and an
// optional Notes. Luck is written as "12.34%". Files start with a UTF-8 BOM so
// spreadsheet apps detect the encoding.
package history

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xtding233/chaos-gacha/internal/draw"
	"github.com/xtding233/chaos-gacha/internal/progress"
)

// Unknown replaces a Rarity or Luck value that does not parse.
const Unknown = -1.0

const bom = "\ufeff"

// Columns in file order. All but Notes are required on read.
var Columns = []string{"Type", "Element", "Rarity", "Tier", "Luck", "Description", "Color", "Notes"}

var required = Columns[:7]

// ErrMissingColumns reports a header without the required columns.
var ErrMissingColumns = errors.New("history is missing required columns")

// Record is one history row.
type Record struct {
	Type        string
	Element     string
	Rarity      float64
	Tier        string
	Luck        float64
	Description string
	Color       string
	Notes       string
}

// FromResult converts a pull into its history row.
func FromResult(r draw.Result) Record {
	return Record{
		Type:        string(r.Category),
		Element:     r.Element,
		Rarity:      r.Rarity,
		Tier:        r.Tier,
		Luck:        r.Luck,
		Description: r.Description,
		Color:       r.Color,
		Notes:       r.Notes,
	}
}

// ToLogEntries projects records onto what the tracker replays.
func ToLogEntries(recs []Record) []progress.LogEntry {
	out := make([]progress.LogEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, progress.LogEntry{Category: r.Type, Element: r.Element, Notes: r.Notes})
	}
	return out
}

// Read parses a history file. Column order is free; unknown columns are ignored.
func Read(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(bom)); err == nil && string(b) == bom {
		_, _ = br.Discard(len(bom))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
		}
		return nil, fmt.Errorf("read history header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, c := range required {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var out []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		out = append(out, Record{
			Type:        field("Type"),
			Element:     field("Element"),
			Rarity:      parseNumber(field("Rarity")),
			Tier:        field("Tier"),
			Luck:        parseNumber(strings.TrimSuffix(strings.TrimSpace(field("Luck")), "%")),
			Description: field("Description"),
			Color:       field("Color"),
			Notes:       field("Notes"),
		})
	}
	return out, nil
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Unknown
	}
	return v
}

// Write emits recs with a BOM and header row.
func Write(w io.Writer, recs []Record) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	for _, r := range recs {
		row := []string{
			r.Type,
			r.Element,
			formatNumber(r.Rarity),
			r.Tier,
			formatNumber(r.Luck) + "%",
			r.Description,
			r.Color,
			r.Notes,
		}
		if r.Luck == Unknown {
			row[4] = formatNumber(r.Luck)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
