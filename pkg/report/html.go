package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"iter"
)

// Field is one labelled value of the report summary.
type Field struct {
	Label string
	Value string
}

// Document is everything an HTML report shows.
type Document struct {
	Title   string
	Notes   []string
	Summary []Field
	Header  []string
	Rows    [][]string
}

// NewDocument collects rows into a Document.
func NewDocument(title string, header []string, rows iter.Seq[[]string]) (Document, error) {
	if len(header) == 0 {
		return Document{}, ErrNoHeader
	}
	d := Document{Title: title, Header: header}
	for row := range rows {
		if len(row) != len(header) {
			return Document{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, len(d.Rows)+1, len(row), len(header))
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

// WriteHTML renders d as a standalone page.
func WriteHTML(w io.Writer, d Document) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, d); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right;font-family:ui-monospace,monospace}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
</style>

<h1>{{.Title}}</h1>

<p class="small">
Rows: {{len .Rows}}{{range .Notes}} &nbsp;|&nbsp; {{.}}{{end}}
</p>

{{if .Summary}}
<h2>Summary</h2>
<ul>
{{range .Summary}}
<li>{{.Label}}: {{.Value}}</li>
{{end}}
</ul>
{{end}}

<h2>Samples</h2>
<table>
<thead>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>
</html>`))
