package diagnostic

import (
	"errors"
	"strings"
)

// Diagnostic codes.
const (
	// CodeSkipped marks a member excluded by the skip marker.
	CodeSkipped = "FU001"
	// CodeUnnamed marks an embedded or blank member, which has no accessible name.
	CodeUnnamed = "FU002"
	// CodeNoFields marks a record without eligible fields.
	CodeNoFields = "FU003"
)

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// Diagnostic is one note about a record or one of its members.
type Diagnostic struct {
	Severity Severity
	Code     string
	Record   string // record name, may be empty
	Field    string // member name, may be empty
	Message  string
}

// String renders d as "[CODE] Record.Field: message", leaving out
// whatever is empty.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Code != "" {
		sb.WriteString("[" + d.Code + "] ")
	}

	switch {
	case d.Record != "" && d.Field != "":
		sb.WriteString(d.Record + "." + d.Field + ": ")
	case d.Record != "":
		sb.WriteString(d.Record + ": ")
	case d.Field != "":
		sb.WriteString(d.Field + ": ")
	}

	sb.WriteString(d.Message)

	return sb.String()
}

// Diagnostics groups diagnostics by severity, each group in insertion order.
// The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Add files d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, record, field string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Record: record, Field: field})
}

func (d *Diagnostics) AddWarning(code, message, record, field string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Record: record, Field: field})
}

func (d *Diagnostics) AddInfo(code, message, record, field string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Record: record, Field: field})
}

// Merge appends every diagnostic of other, keeping its order.
func (d *Diagnostics) Merge(other Diagnostics) {
	for _, diag := range other.All() {
		d.Add(diag)
	}
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	return append(append(append(make([]Diagnostic, 0, d.Len()), d.Errors...), d.Warnings...), d.Infos...)
}

func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Error joins the error diagnostics into one error, or returns nil.
func (d *Diagnostics) Error() error {
	errs := make([]error, len(d.Errors))
	for i, diag := range d.Errors {
		errs[i] = errors.New(diag.String())
	}

	return errors.Join(errs...)
}
