package gen

import (
	"fmt"
	"strings"
	"text/template"
)

var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	headerTmpl +
		declTmpl +
		boardTmpl +
		noneTmpl,
))

func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

const headerTmpl = `{{define "header"}}// Code generated by sam3hal gen. DO NOT EDIT.
{{if .BuildLine}}
{{.BuildLine}}
{{end}}
package {{.Package}}
{{end}}`

const declTmpl = `{{define "decl"}}{{template "header" .}}
// Board describes the board selected at build time.
type Board struct {
	Name          string
	Variant       string
	PAC           string
	PACImportPath string
	PanicStrategy string
	RuntimeShim   bool
	Fingerprint   string
	Modules       []string
}

// Selected is the board chosen by build tags. Its Name is empty when no
// board tag is set.
var Selected Board

// HasModule reports whether the selected board compiles the named HAL module.
func HasModule(name string) bool {
	for _, m := range Selected.Modules {
		if m == name {
			return true
		}
	}
	return false
}
{{end}}`

const boardTmpl = `{{define "board"}}{{template "header" .}}
// Declared by every board file and by the fallback, so a build whose tags
// select two boards fails to compile.
const selectedVariant = {{quote .Variant}}

func init() {
	Selected = Board{
		Name:          {{quote .Name}},
		Variant:       selectedVariant,
		PAC:           {{quote .PAC}},
		PACImportPath: {{quote .PACImportPath}},
		PanicStrategy: {{quote .PanicStrategy}},
		RuntimeShim:   {{.RuntimeShim}},
		Fingerprint:   {{quote .Fingerprint}},
		Modules: []string{
{{- range .Modules}}
			{{quote .}},
{{- end}}
		},
	}
}
{{end}}`

const noneTmpl = `{{define "none"}}{{template "header" .}}
const selectedVariant = ""

func init() {
	// No board tag set: Selected stays the zero Board.
	Selected = Board{}
}
{{end}}`
