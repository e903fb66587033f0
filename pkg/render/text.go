package render

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode"

	"github.com/matzehuels/metro/pkg/layout"
)

// Line renders a single row.
func Line(row layout.Row) string {
	line := strings.TrimRight(string(row.Glyphs()), " ")
	if row.Text != "" {
		if line != "" {
			line += " "
		}
		line += row.Text
	}
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// Lines renders every row.
func Lines(rows []layout.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = Line(r)
	}
	return out
}

// String renders rows as one string, lines separated by "\n".
func String(rows []layout.Row) string {
	return strings.Join(Lines(rows), "\n")
}

// Bytes renders rows like [String].
func Bytes(rows []layout.Row) []byte {
	var buf bytes.Buffer
	_, _ = WriteTo(&buf, rows)
	return buf.Bytes()
}

// WriteTo writes rows to w like [String] and returns the number of bytes
// written. The first write error is returned as is.
func WriteTo(w io.Writer, rows []layout.Row) (int64, error) {
	var total int64
	for i, r := range rows {
		line := Line(r)
		if i > 0 {
			line = "\n" + line
		}
		n, err := io.WriteString(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// JSONRow is the tooling representation of one row.
type JSONRow struct {
	Kind    string `json:"kind"`
	Columns int    `json:"columns"`
	Line    string `json:"line"`
	Text    string `json:"text,omitempty"`
}

// JSONDocument is the top-level object written by [JSON].
type JSONDocument struct {
	Rows []JSONRow `json:"rows"`
}

// JSON encodes rows as an indented [JSONDocument].
func JSON(rows []layout.Row) ([]byte, error) {
	doc := JSONDocument{Rows: make([]JSONRow, len(rows))}
	for i, r := range rows {
		doc.Rows[i] = JSONRow{
			Kind:    r.Kind.String(),
			Columns: r.Columns(),
			Line:    Line(r),
			Text:    r.Text,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}
