package mapper

import (
	"testing"

	"github.com/plugdev/manifestlint/pkg/diag"
	"github.com/plugdev/manifestlint/pkg/schema"
)

const resolverFixture = `version: 0.1.0
type: plugin
meta:
  arch:
    - amd64
    - x86
  runner:
    language: python
`

func span(startLine, startCol, endLine, endCol int) diag.Range {
	return diag.Range{
		Start: diag.Position{Line: startLine, Column: startCol},
		End:   diag.Position{Line: endLine, Column: endCol},
	}
}

func TestResolve(t *testing.T) {
	ix := NewIndex(resolverFixture)

	tests := []struct {
		name    string
		failure schema.Failure
		want    diag.Range
	}{
		{
			name:    "top-level key covers the key token",
			failure: schema.Failure{Path: []string{"type"}, Kind: schema.Enum},
			want:    span(1, 0, 1, 4),
		},
		{
			name:    "nested key",
			failure: schema.Failure{Path: []string{"meta", "runner", "language"}, Kind: schema.Enum},
			want:    span(7, 4, 7, 12),
		},
		{
			name:    "array index resolves to the nth list marker",
			failure: schema.Failure{Path: []string{"meta", "arch", "1"}, Kind: schema.Enum},
			want:    span(5, 4, 5, 5),
		},
		{
			name: "required reports the parent key",
			failure: schema.Failure{
				Path:   []string{"meta", "runner"},
				Kind:   schema.Required,
				Params: schema.RequiredParams{MissingProperty: "entrypoint"},
			},
			want: span(6, 2, 6, 8),
		},
		{
			name: "required at top level falls back to document start",
			failure: schema.Failure{
				Path:   nil,
				Kind:   schema.Required,
				Params: schema.RequiredParams{MissingProperty: "version"},
			},
			want: span(0, 0, 0, 0),
		},
		{
			name:    "empty path falls back to document start",
			failure: schema.Failure{Path: nil, Kind: schema.Other},
			want:    span(0, 0, 0, 0),
		},
		{
			name:    "unlocatable key falls back to document start",
			failure: schema.Failure{Path: []string{"nope", "deeper"}, Kind: schema.Type},
			want:    span(0, 0, 0, 0),
		},
		{
			name:    "walk stops at the first miss",
			failure: schema.Failure{Path: []string{"meta", "nope"}, Kind: schema.Type},
			want:    span(0, 0, 0, 0),
		},
		{
			name:    "out-of-range list index falls back to document start",
			failure: schema.Failure{Path: []string{"meta", "arch", "5"}, Kind: schema.Enum},
			want:    span(0, 0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.failure, ix); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
