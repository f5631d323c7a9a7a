package csv

import (
	"errors"
	"strings"
)

// Parse failure conditions. Both are terminal: no partial result is
// returned alongside either error.
var (
	// ErrEmptyInput is returned when no non-blank lines remain after
	// splitting the input.
	ErrEmptyInput = errors.New("no data lines found")

	// ErrUnreadableHeader is returned when the header line tokenizes to
	// zero columns.
	ErrUnreadableHeader = errors.New("header row could not be read")
)

// Table is the aggregate outcome of parsing one delimited text blob.
// It is constructed once per Parse call and not mutated afterwards.
type Table struct {
	// Columns holds the trimmed header cells; its length defines the
	// expected cell count for every data row.
	Columns []string

	// Rows holds the well-formed data rows in original order. Each row
	// has exactly len(Columns) cells.
	Rows [][]string

	// TotalRows counts all non-blank data lines, kept and dropped.
	TotalRows int

	// InvalidRows counts data lines dropped for a column-count mismatch.
	InvalidRows int

	// Delimiter is the cell separator inferred from the header line.
	Delimiter rune
}

// Options adjusts parsing behavior.
type Options struct {
	// Strict makes the tokenizer treat an isolated interior quote as a
	// literal character instead of a quote-mode toggle. Off by default to
	// match the historical behavior.
	Strict bool
}

// Parse tokenizes raw text into a Table using the default options.
//
// Lines that are empty or whitespace-only are discarded before parsing and
// never count toward any row total. The delimiter is inferred from the
// first remaining line and applied uniformly. Data lines whose cell count
// differs from the header are dropped and tallied in InvalidRows.
//
// Parse is a pure function: the same input always yields a structurally
// identical Table.
func Parse(raw string) (*Table, error) {
	return ParseWith(raw, Options{})
}

// ParseWith is Parse with explicit Options.
func ParseWith(raw string, opts Options) (*Table, error) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	delim := InferDelimiter(lines[0])

	tok := TokenizeLine
	if opts.Strict {
		tok = TokenizeLineStrict
	}

	columns := tok(lines[0], delim)
	if len(columns) == 0 {
		// Unreachable given the tokenizer contract, kept as a guard.
		return nil, ErrUnreadableHeader
	}

	t := &Table{
		Columns:   columns,
		Delimiter: delim,
	}

	for _, line := range lines[1:] {
		cells := tok(line, delim)
		if len(cells) == len(columns) {
			t.Rows = append(t.Rows, cells)
		} else {
			t.InvalidRows++
		}
	}

	t.TotalRows = len(t.Rows) + t.InvalidRows
	return t, nil
}

// InferDelimiter picks the active delimiter from the header line: `;` when
// the line contains at least one semicolon, `,` otherwise. Presence of `;`
// wins unconditionally, even when commas also appear. The heuristic never
// inspects data lines and never re-infers per line.
func InferDelimiter(header string) rune {
	if strings.ContainsRune(header, ';') {
		return ';'
	}
	return ','
}

// splitLines breaks raw text on \n or \r\n and drops blank and
// whitespace-only lines.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
