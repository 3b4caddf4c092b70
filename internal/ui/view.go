package ui

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed templates/index.html
var indexHTML string

var pageTmpl = template.Must(template.New("index").Parse(indexHTML))

func Render(w io.Writer, s State) error {
	return pageTmpl.Execute(w, s)
}
