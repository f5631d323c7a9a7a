// Package preview holds the transient state of the previewer: the one
// currently loaded file and the UI theme preference. It sits between the
// parsing core and the web/CLI layers and has no transport dependencies.
package preview

import "time"

// Provenance tags where a preview came from.
type Provenance string

const (
	// ProvenanceLocal marks a preview produced by the in-process parser.
	ProvenanceLocal Provenance = "local"
	// ProvenanceRemote marks a preview validated by the remote service.
	ProvenanceRemote Provenance = "remote"
	// ProvenanceDemo marks the built-in demonstration dataset.
	ProvenanceDemo Provenance = "demo"
)

// Preview is the single result type consumed by the display layer.
// Local, remote, and demo results all take this shape, distinguished only
// by Provenance; there is no structural merging at the boundary.
type Preview struct {
	ID         string     `json:"id"`
	Provenance Provenance `json:"provenance"`
	FileName   string     `json:"fileName,omitempty"`

	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`

	// TotalRows and InvalidRows always reflect the whole file, even when
	// Rows is capped for display.
	TotalRows   int `json:"totalRows"`
	InvalidRows int `json:"invalidRows"`

	Delimiter string `json:"delimiter"`

	// Messages carries server-supplied diagnostics on remote previews.
	Messages []string `json:"messages,omitempty"`

	LoadedAt time.Time `json:"loadedAt"`
}

// Truncated reports whether the displayed rows were capped below the
// number of valid rows in the file.
func (p *Preview) Truncated() bool {
	return len(p.Rows) < p.TotalRows-p.InvalidRows
}

// boundRows caps rows for display. A limit of zero or less means unbounded.
func boundRows(rows [][]string, limit int) [][]string {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
