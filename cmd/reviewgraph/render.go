package main

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var formats = []string{"table", "md", "csv", "tsv", "html", "simple", "plain"}

func validateFormat(format string) error {
	if !slices.Contains(formats, format) {
		return errors.Newf("unknown format: %s", format)
	}
	return nil
}

func newTableWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	return t
}

// renderTable renders t in format. "plain" is rendered like "simple" here;
// commands with a plain output handle it before calling this.
func renderTable(t table.Writer, format string) {
	switch format {
	case "table":
		t.Render()
	case "md":
		t.RenderMarkdown()
	case "csv":
		t.RenderCSV()
	case "tsv":
		t.RenderTSV()
	case "html":
		t.RenderHTML()
	case "simple", "plain":
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateHeader = false
		t.Style().Options.SeparateRows = false
		t.Style().Box.MiddleVertical = " "
		t.Render()
	}
}

var tmplFuncs = map[string]any{
	"title": color.CyanString,
	"key":   color.MagentaString,
	"join":  strings.Join,
	"score": func(score int) string {
		if score > 0 {
			return color.GreenString("%+d", score)
		} else if score < 0 {
			return color.RedString("%+d", score)
		}
		return "0"
	},
}

func templateRender(w io.Writer, name string, tmpl string, data map[string]any) error {
	t, err := template.New(name).Funcs(tmplFuncs).Parse(tmpl)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = t.Execute(&buf, data); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}
