package csv

import "strings"

// TokenizeLine splits a single line into trimmed cells on delim.
//
// The scan is a single left-to-right pass with one quoting state. A doubled
// quote inside a quoted segment is an escaped literal quote. The delimiter
// is only a cell boundary outside quotes. Every cell is trimmed of leading
// and trailing whitespace, and the result always has at least one element:
// an empty line yields a single empty cell.
//
// An unterminated quote is accepted silently; the accumulated text becomes
// the final cell. A quote appearing mid-cell outside any quoted segment is
// consumed as a mode toggle, not a literal character. That can corrupt the
// remainder of the line (`3" pipe` and similar), but downstream consumers
// depend on it; see TokenizeLineStrict for the safer variant.
func TokenizeLine(line string, delim rune) []string {
	return tokenize(line, delim, false)
}

// TokenizeLineStrict behaves like TokenizeLine except that a quote only
// opens a quoted segment at the start of a cell (when nothing but
// whitespace has accumulated). An isolated interior quote is kept as a
// literal character instead of toggling quote mode.
func TokenizeLineStrict(line string, delim rune) []string {
	return tokenize(line, delim, true)
}

func tokenize(line string, delim rune, strict bool) []string {
	var cells []string
	var current strings.Builder
	insideQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if insideQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote: emit one literal " and skip its pair.
				current.WriteRune('"')
				i++
				continue
			}
			if strict && !insideQuotes && strings.TrimSpace(current.String()) != "" {
				current.WriteRune(c)
				continue
			}
			insideQuotes = !insideQuotes
		case c == delim && !insideQuotes:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}

	return append(cells, strings.TrimSpace(current.String()))
}
