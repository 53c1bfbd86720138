// Package pipeline orchestrates one validation pass over a document:
// parse, validate against the schema for its kind, resolve each failure to
// a source range, format messages and emit the full diagnostic list. The
// pass has no memory: identical input always yields identical output, and
// no failure path escapes as an error.
package pipeline

import (
	"github.com/plugdev/manifestlint/internal/mapper"
	"github.com/plugdev/manifestlint/pkg/diag"
	"github.com/plugdev/manifestlint/pkg/parser"
	"github.com/plugdev/manifestlint/pkg/schema"
)

// Document is an immutable snapshot of a text document. Re-validation
// always operates on a fresh snapshot; the pipeline never mutates it.
type Document struct {
	URI     string
	Text    string
	Version int
}

// Validator is the seam between the pipeline and the schema engine
type Validator interface {
	Validate(value any) []schema.Failure
}

// Pipeline runs validation passes. It owns no mutable state beyond the
// read-only compiled validators, so concurrent Run calls for different
// documents are safe.
type Pipeline struct {
	validators map[schema.Kind]Validator
}

// New builds a pipeline over the registry's compiled validators. Kinds the
// registry reports as inert get no validator: documents of those kinds
// parse-check only.
func New(reg *schema.Registry) *Pipeline {
	validators := make(map[schema.Kind]Validator, len(schema.Kinds))
	for _, k := range schema.Kinds {
		if v := reg.Validator(k); v != nil {
			validators[k] = v
		}
	}
	return &Pipeline{validators: validators}
}

// NewWithValidators builds a pipeline with explicit validators, used by
// tests and embedders that bring their own schema engine
func NewWithValidators(validators map[schema.Kind]Validator) *Pipeline {
	return &Pipeline{validators: validators}
}

// Run executes one validation pass and returns the complete diagnostic set
// for the document. An empty result means the document is valid. A document
// that fails to parse yields exactly one diagnostic and is never schema-
// validated.
func (p *Pipeline) Run(doc Document, kind schema.Kind) []diag.Diagnostic {
	value, err := parser.Decode(doc.Text)
	if err != nil {
		return []diag.Diagnostic{parseFailure(doc.Text, err)}
	}
	if value == nil {
		return []diag.Diagnostic{{
			Message:  "YAML parsing error: empty document",
			Severity: diag.SeverityError,
		}}
	}

	validator, ok := p.validators[kind]
	if !ok {
		return nil
	}

	failures := validator.Validate(value)
	if len(failures) == 0 {
		return nil
	}

	index := mapper.NewIndex(doc.Text)
	diags := make([]diag.Diagnostic, 0, len(failures))
	for _, f := range failures {
		diags = append(diags, diag.Diagnostic{
			Range:    mapper.Resolve(f, index),
			Message:  diag.Format(f),
			Severity: diag.SeverityError,
		})
	}
	return diags
}

// parseFailure turns a parse error into the pass's single diagnostic,
// ranged over the failing line when the parser reported one
func parseFailure(text string, err error) diag.Diagnostic {
	line, _, msg := parser.ExtractYAMLError(err)

	var rng diag.Range
	if line > 0 {
		rng = mapper.NewIndex(text).LineRange(line - 1)
	}

	return diag.Diagnostic{
		Range:    rng,
		Message:  "YAML parsing error: " + msg,
		Severity: diag.SeverityError,
	}
}
