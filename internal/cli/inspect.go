package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"tabledeck/internal/csv"
)

func inspectCmd() *cobra.Command {
	var (
		strict bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a delimited file and print a bounded preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], strict, limit)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat an isolated interior quote as literal")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to print (0 for all)")

	return cmd
}

func runInspect(out io.Writer, path string, strict bool, limit int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	t, err := csv.ParseWith(string(data), csv.Options{Strict: strict})
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	rows := t.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	renderTable(out, t.Columns, rows)

	fmt.Fprintf(out, "\n%s: %d data rows, %d invalid, delimiter %q",
		filepath.Base(path), t.TotalRows, t.InvalidRows, t.Delimiter)
	if len(rows) < len(t.Rows) {
		fmt.Fprintf(out, " (showing first %d)", len(rows))
	}
	fmt.Fprintln(out)

	return nil
}

// renderTable prints columns and rows as an aligned text table.
func renderTable(out io.Writer, columns []string, rows [][]string) {
	var header table.Row
	for _, c := range columns {
		header = append(header, c)
	}

	var body []table.Row
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		body = append(body, r)
	}

	t := table.NewWriter()
	t.AppendHeader(header)
	t.AppendRows(body)
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	fmt.Fprintln(out, t.Render())
}
