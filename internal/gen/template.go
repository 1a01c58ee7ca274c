package gen

import "text/template"

// templateData holds all data needed for the update helper template.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []importSpec

	Type       string // record name, e.g., "Account"
	TypeParams string // e.g., "[K comparable, V any]"
	TypeArgs   string // e.g., "[K, V]"
	FieldType  string // e.g., "AccountField"

	ColumnType      string
	ExprType        string
	ExprFunc        string
	ActiveModelType string
	ActiveModelCtor string
	SetFunc         string

	Fields []fieldData
}

// localNames are the identifiers declared inside the generated methods.
// A collaborator or type parameter spelled the same would be shadowed.
var localNames = []string{"s", "col", "ok", "field", "f", "fields", "model"}

// fieldData is one eligible field as the template sees it.
type fieldData struct {
	Name      string // declared name, the active model member
	LookupKey string // Str2Col case label
	TypeRef   string
	Variant   string // field value variant type, e.g., "AccountFieldUserName"
	Column    string // column variant, e.g., "ColumnUserName"
	ValueType string
}

var updaterTemplate = template.Must(template.New("updater").Parse(`// Code generated by field-updater. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
// {{.FieldType}} is a value for one field of {{.Type}}.
type {{.FieldType}}{{.TypeParams}} interface {
	is{{.FieldType}}()
}
{{range .Fields}}
// {{.Variant}} holds a value for {{$.Type}}.{{.Name}}.
type {{.Variant}}{{$.TypeParams}} struct {
	Value {{.ValueType}}
}

func ({{.Variant}}{{$.TypeArgs}}) is{{$.FieldType}}() {}
{{end}}
// Str2Col returns the column of the field whose snake case name is s.
func ({{.Type}}{{.TypeArgs}}) Str2Col(s string) (col {{.ColumnType}}, ok bool) {
{{- if .Fields}}
	switch s {
{{- range .Fields}}
	case {{printf "%q" .LookupKey}}:
		return {{.Column}}, true
{{- end}}
	}
{{end}}
	return col, false
}

// Field2CV returns the column and value expression of field.
func ({{.Type}}{{.TypeArgs}}) Field2CV(field {{.FieldType}}{{.TypeArgs}}) ({{.ColumnType}}, {{.ExprType}}) {
{{- if .Fields}}
	switch f := field.(type) {
{{- range .Fields}}
	case {{.Variant}}{{$.TypeArgs}}:
		return {{.Column}}, {{$.ExprFunc}}(f.Value)
	case *{{.Variant}}{{$.TypeArgs}}:
		return {{.Column}}, {{$.ExprFunc}}(f.Value)
{{- end}}
	}
{{end}}
	panic("field-updater: unknown {{.FieldType}} variant")
}

// Fields2Active sets every given field on a new active model.
// A later value for the same field replaces an earlier one.
func ({{.Type}}{{.TypeArgs}}) Fields2Active(fields []{{.FieldType}}{{.TypeArgs}}) {{.ActiveModelType}} {
	model := {{.ActiveModelCtor}}()
{{- if .Fields}}

	for _, field := range fields {
		switch f := field.(type) {
{{- range .Fields}}
		case {{.Variant}}{{$.TypeArgs}}:
			model.{{.Name}} = {{$.SetFunc}}(f.Value)
		case *{{.Variant}}{{$.TypeArgs}}:
			model.{{.Name}} = {{$.SetFunc}}(f.Value)
{{- end}}
		}
	}
{{- end}}

	return model
}
`))
