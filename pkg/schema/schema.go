// Package schema wraps the JSON-Schema engine behind a small, typed surface:
// compile a draft-07 schema once per document kind, validate parsed values,
// and report failures as (path, kind, params) records instead of error text.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/manifest_schema.json
var manifestSchema []byte

//go:embed schemas/tool_schema.json
var toolSchema []byte

//go:embed schemas/provider_schema.json
var providerSchema []byte

var embeddedSchemas = map[Kind][]byte{
	KindManifest: manifestSchema,
	KindTool:     toolSchema,
	KindProvider: providerSchema,
}

// msgPrinter renders localized messages for failure kinds without a
// dedicated template
var msgPrinter = message.NewPrinter(language.English)

// CompiledValidator is a compiled schema, safe for reuse and concurrent
// read-only invocation against different values.
type CompiledValidator struct {
	schema *jsonschema.Schema
}

// Compile compiles a draft-07 schema document
func Compile(schemaJSON []byte) (*CompiledValidator, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()

	schemaURL := "http://manifestlint.local/schema.json"
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &CompiledValidator{schema: compiled}, nil
}

// Validate checks value against the compiled schema and returns all
// violations. A nil or empty result means the value conforms. Validation is
// a pure function of (schema, value); the validator is never mutated.
//
// Failures come back in a deterministic order: the engine's reported order,
// stable-sorted by instance path. The engine walks Go maps, so its raw order
// is not reproducible across runs; the sort restores the idempotence callers
// rely on while preserving relative order of failures at the same path.
func (v *CompiledValidator) Validate(value any) []Failure {
	normalized, err := normalize(value)
	if err != nil {
		return []Failure{{Kind: Other, Params: OtherParams{Message: err.Error()}}}
	}

	err = v.schema.Validate(normalized)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Failure{{Kind: Other, Params: OtherParams{Message: err.Error()}}}
	}

	var failures []Failure
	flatten(ve, &failures)

	sort.SliceStable(failures, func(i, j int) bool {
		return strings.Join(failures[i].Path, ".") < strings.Join(failures[j].Path, ".")
	})

	return failures
}

// normalize round-trips the value through JSON so the schema engine sees the
// same shapes it would for a JSON document (string keys, float64 numbers).
// A nil value validates as an empty object.
func normalize(value any) (any, error) {
	if value == nil {
		value = map[string]any{}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize value for validation: %w", err)
	}

	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("failed to normalize value for validation: %w", err)
	}

	return normalized, nil
}

// flatten walks the validation error tree depth-first, emitting one failure
// per leaf cause. Structural nodes (the root schema error, grouped subschema
// errors) only contribute their children.
func flatten(ve *jsonschema.ValidationError, out *[]Failure) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			flatten(cause, out)
		}
		return
	}
	*out = append(*out, classify(ve)...)
}

// classify converts one leaf validation error into typed failures. A single
// required-properties error lists every missing property; it expands into one
// failure per property so each gets its own diagnostic.
func classify(ve *jsonschema.ValidationError) []Failure {
	path := append([]string(nil), ve.InstanceLocation...)

	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		failures := make([]Failure, 0, len(k.Missing))
		for _, missing := range k.Missing {
			failures = append(failures, Failure{
				Path:   path,
				Kind:   Required,
				Params: RequiredParams{MissingProperty: missing},
			})
		}
		return failures
	case *kind.Type:
		return []Failure{{Path: path, Kind: Type, Params: TypeParams{Want: strings.Join(k.Want, " or ")}}}
	case *kind.Enum:
		return []Failure{{Path: path, Kind: Enum, Params: EnumParams{AllowedValues: renderValues(k.Want)}}}
	case *kind.Const:
		// A const violation is a one-value enum as far as the user is concerned.
		return []Failure{{Path: path, Kind: Enum, Params: EnumParams{AllowedValues: []string{renderValue(k.Want)}}}}
	case *kind.Pattern:
		return []Failure{{Path: path, Kind: Pattern, Params: PatternParams{Pattern: k.Want}}}
	case *kind.Format:
		return []Failure{{Path: path, Kind: Format, Params: FormatParams{Format: k.Want}}}
	case *kind.Minimum:
		return []Failure{{Path: path, Kind: Minimum, Params: MinimumParams{Limit: renderRat(k.Want)}}}
	case *kind.Maximum:
		return []Failure{{Path: path, Kind: Maximum, Params: MaximumParams{Limit: renderRat(k.Want)}}}
	case *kind.MinProperties:
		return []Failure{{Path: path, Kind: MinProperties, Params: MinPropertiesParams{Limit: k.Want}}}
	default:
		return []Failure{{Path: path, Kind: Other, Params: OtherParams{Message: ve.ErrorKind.LocalizedString(msgPrinter)}}}
	}
}

func renderValues(values []any) []string {
	rendered := make([]string, 0, len(values))
	for _, v := range values {
		rendered = append(rendered, renderValue(v))
	}
	return rendered
}

func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// renderRat renders a numeric schema bound the way it was written: integers
// without a fraction, everything else as a decimal.
func renderRat(r *big.Rat) string {
	if r == nil {
		return ""
	}
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Registry holds one compiled validator per schema kind, built once at
// process start and shared read-only afterwards.
type Registry struct {
	validators map[Kind]*CompiledValidator
}

// NewRegistry compiles the embedded schema documents
func NewRegistry() (*Registry, error) {
	r := &Registry{validators: make(map[Kind]*CompiledValidator, len(embeddedSchemas))}
	for k, raw := range embeddedSchemas {
		v, err := Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("embedded %s schema: %w", k, err)
		}
		r.validators[k] = v
	}
	return r, nil
}

// overrideFiles maps schema kinds to their replacement file names inside an
// override directory
var overrideFiles = map[Kind]string{
	KindManifest: "manifest.json",
	KindTool:     "tool.json",
	KindProvider: "provider.json",
}

// LoadOverrides replaces compiled validators with schemas read from dir.
// Kinds without an override file keep the embedded schema. A present but
// unusable override is a configuration error: the kind's validator becomes
// inert (nil) so validation of that kind silently yields no schema
// diagnostics, and the error is returned for the caller to report. The
// process must keep running either way.
func (r *Registry) LoadOverrides(dir string) []error {
	var errs []error
	for k, name := range overrideFiles {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			r.validators[k] = nil
			errs = append(errs, fmt.Errorf("schema override for %s: %w", k, err))
			continue
		}
		v, err := Compile(raw)
		if err != nil {
			r.validators[k] = nil
			errs = append(errs, fmt.Errorf("schema override for %s: %w", k, err))
			continue
		}
		r.validators[k] = v
	}
	return errs
}

// Validator returns the compiled validator for kind, or nil when the kind is
// inert or unknown
func (r *Registry) Validator(k Kind) *CompiledValidator {
	return r.validators[k]
}
