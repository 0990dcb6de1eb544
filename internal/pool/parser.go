package pool

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// headerRe matches a record header: "<integer>.<token>...".
var headerRe = regexp.MustCompile(`^\d+\.\S*`)

// Record is one parsed pool item.
type Record struct {
	Element     string
	Rarity      float64
	Description string
}

// Skipped describes a header line that could not be turned into a record.
type Skipped struct {
	Line   int
	Text   string
	Reason string
}

// Parsed is the output of Parse.
type Parsed struct {
	Records []Record
	Skipped []Skipped
	// Orphans counts non-blank lines with no record to attach to: text before
	// the first header or under a skipped header.
	Orphans int
}

// Parse reads a pool definition.
//
// Grammar, line oriented:
//
//	file   = { line }
//	header = digits "." token { any }   ; fields split on ","
//	                                    ; field 0 = element, field 1 = rarity
//	body   = any line that is not a header
//
// Body lines belong to the closest preceding header and are joined with
// newlines, trimmed, with '#' removed. Headers with a missing or non-numeric
// rarity (or one outside [0, 10]) are skipped along with their body.
func Parse(r io.Reader) (Parsed, error) {
	var (
		out    Parsed
		cur    *Record
		body   []string
		lineNo int
	)
	flush := func() {
		if cur != nil {
			cur.Description = cleanDescription(body)
			out.Records = append(out.Records, *cur)
		}
		cur, body = nil, nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if headerRe.MatchString(line) {
			flush()
			rec, reason := parseHeader(line)
			if reason != "" {
				out.Skipped = append(out.Skipped, Skipped{Line: lineNo, Text: line, Reason: reason})
				continue
			}
			cur = &rec
			continue
		}

		if cur == nil {
			if strings.TrimSpace(line) != "" {
				out.Orphans++
			}
			continue
		}
		body = append(body, line)
	}
	if err := sc.Err(); err != nil {
		return Parsed{}, fmt.Errorf("scan pool: %w", err)
	}
	flush()
	return out, nil
}

func parseHeader(line string) (Record, string) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) < 2 {
		return Record{}, "missing rarity field"
	}
	element := strings.TrimSpace(parts[0])
	rarity, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Record{}, "rarity is not a number"
	}
	if math.IsNaN(rarity) || rarity < 0 || rarity > 10 {
		return Record{}, "rarity outside [0, 10]"
	}
	return Record{Element: element, Rarity: rarity}, ""
}

func cleanDescription(lines []string) string {
	s := strings.Join(lines, "\n")
	s = strings.ReplaceAll(s, "#", "")
	return strings.TrimSpace(s)
}
