// Package csv splits delimited text into a header and data rows and
// classifies each data row as well-formed or malformed.
//
// This package is the core of the previewer, containing all parsing logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Dialect
//
// The dialect is deliberately narrow: the delimiter is inferred once from
// the header line (`;` when present, `,` otherwise) and applied to every
// line of the file. Quoted segments honor doubled quotes as escapes, but a
// quoted field never spans line breaks. This is not an RFC 4180 engine.
//
// # Row classification
//
// A data line whose cell count matches the header is kept as a row; any
// other line is dropped and tallied in [Table.InvalidRows]. Malformed rows
// are an expected condition, not an error: [Parse] only fails when the
// input has no usable lines at all ([ErrEmptyInput]) or the header itself
// cannot be read ([ErrUnreadableHeader]).
//
// All functions are pure: no shared state, safe for concurrent callers.
package csv
