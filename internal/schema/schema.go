// Package schema compiles attribute registries from CUE documents.
//
// Built-in registries (package attr) cover the standard Outlook
// collections; schema exists for everything else - open extensions,
// custom list columns, any remote collection whose queryable fields
// are known only at deployment time. A registry document looks like:
//
//	registry: "project_tasks"
//	attributes: [
//		{name: "title", kind: "plain"},
//		{name: "is_done", kind: "boolean"},
//		{name: "priority", kind: "enumerative", values: [
//			{name: "LOW", value: "low"},
//			{name: "HIGH", value: "high"},
//		]},
//		{name: "comments", kind: "non_filterable"},
//	]
//
// Compilation uses the CUE SDK's Go API directly. Errors carry the
// offending field and, where CUE provides one, a file position.
package schema

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/mkersey/graphmail/internal/attr"
)

// CompileError reports a malformed registry document.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileFile reads and compiles a registry document from disk.
func CompileFile(path string) (*attr.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	ctx := cuecontext.New()
	return Compile(ctx.CompileBytes(data, cue.Filename(path)))
}

// CompileString compiles a registry document from source text.
func CompileString(src string) (*attr.Registry, error) {
	ctx := cuecontext.New()
	return Compile(ctx.CompileString(src))
}

// Compile parses a CUE value into an attribute registry.
func Compile(v cue.Value) (*attr.Registry, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	nameVal := v.LookupPath(cue.ParsePath("registry"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "registry",
			Message: "registry name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	attrsVal := v.LookupPath(cue.ParsePath("attributes"))
	if !attrsVal.Exists() {
		return nil, &CompileError{
			Field:   "attributes",
			Message: "at least one attribute is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := attrsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var attrs []*attr.Attribute
	for iter.Next() {
		a, err := parseAttribute(iter.Value())
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	if len(attrs) == 0 {
		return nil, &CompileError{
			Field:   "attributes",
			Message: "at least one attribute is required",
			Pos:     attrsVal.Pos(),
		}
	}

	registry, err := attr.NewRegistry(name, attrs...)
	if err != nil {
		return nil, &CompileError{
			Field:   "attributes",
			Message: err.Error(),
			Pos:     attrsVal.Pos(),
		}
	}
	return registry, nil
}

// parseAttribute parses a single attribute entry.
func parseAttribute(v cue.Value) (*attr.Attribute, error) {
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "attributes.name",
			Message: "attribute name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return nil, &CompileError{
			Field:   "attributes.kind",
			Message: fmt.Sprintf("attribute %q: kind is required", name),
			Pos:     v.Pos(),
		}
	}
	kindName, err := kindVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	switch kindName {
	case "plain":
		return attr.New(name, attr.Plain), nil
	case "boolean":
		return attr.New(name, attr.Boolean), nil
	case "non_filterable":
		return attr.New(name, attr.NonFilterable), nil
	case "enumerative":
		values, err := parseEnumValues(name, v)
		if err != nil {
			return nil, err
		}
		return attr.NewEnum(name, values...), nil
	default:
		return nil, &CompileError{
			Field:   "attributes.kind",
			Message: fmt.Sprintf("attribute %q: unknown kind %q (want plain, boolean, enumerative or non_filterable)", name, kindName),
			Pos:     kindVal.Pos(),
		}
	}
}

// parseEnumValues parses the value set of an enumerative attribute.
func parseEnumValues(attrName string, v cue.Value) ([]attr.EnumValue, error) {
	valuesVal := v.LookupPath(cue.ParsePath("values"))
	if !valuesVal.Exists() {
		return nil, &CompileError{
			Field:   "attributes.values",
			Message: fmt.Sprintf("enumerative attribute %q requires a values list", attrName),
			Pos:     v.Pos(),
		}
	}

	iter, err := valuesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var values []attr.EnumValue
	for iter.Next() {
		item := iter.Value()

		memberName, err := item.LookupPath(cue.ParsePath("name")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		memberValue, err := item.LookupPath(cue.ParsePath("value")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		values = append(values, attr.EnumValue{Name: memberName, Value: memberValue})
	}
	if len(values) == 0 {
		return nil, &CompileError{
			Field:   "attributes.values",
			Message: fmt.Sprintf("enumerative attribute %q requires a non-empty values list", attrName),
			Pos:     valuesVal.Pos(),
		}
	}
	return values, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return &CompileError{
		Field:   "cue",
		Message: firstErr.Error(),
	}
}
