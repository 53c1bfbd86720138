package mapper

import (
	"strings"
	"testing"

	"github.com/plugdev/manifestlint/pkg/diag"
)

const indexFixture = `version: 0.1.0
type: plugin
meta:
  arch:
    - amd64
    - x86
  runner:
    language: python
`

func TestLocateKey(t *testing.T) {
	ix := NewIndex(indexFixture)

	tests := []struct {
		name       string
		from       int
		key        string
		wantFound  bool
		wantLine   int
		wantCol    int
		wantIndent int
	}{
		{name: "top-level key", key: "version", wantFound: true, wantLine: 0, wantCol: 0, wantIndent: 0},
		{name: "nested key", key: "arch", wantFound: true, wantLine: 3, wantCol: 2, wantIndent: 2},
		{name: "deeply nested key", key: "language", wantFound: true, wantLine: 7, wantCol: 4, wantIndent: 4},
		{name: "missing key", key: "nope", wantFound: false},
		{name: "scoped past the only occurrence", from: strings.Index(indexFixture, "meta"), key: "version", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, found := ix.LocateKey(tt.from, tt.key)
			if found != tt.wantFound {
				t.Fatalf("LocateKey(%d, %q) found = %v, want %v", tt.from, tt.key, found, tt.wantFound)
			}
			if !found {
				return
			}
			pos := ix.PositionAt(m.Start)
			if pos.Line != tt.wantLine || pos.Column != tt.wantCol {
				t.Errorf("match at %d:%d, want %d:%d", pos.Line, pos.Column, tt.wantLine, tt.wantCol)
			}
			if m.Indent != tt.wantIndent {
				t.Errorf("indent = %d, want %d", m.Indent, tt.wantIndent)
			}
			if got := indexFixture[m.Start:m.End]; got != tt.key {
				t.Errorf("match covers %q, want the key token %q", got, tt.key)
			}
		})
	}
}

func TestLocateKeyScopeIsForwardOnly(t *testing.T) {
	ix := NewIndex(indexFixture)

	// From past the "meta" line, "type" must not be found by scanning backward.
	from := strings.Index(indexFixture, "arch")
	if _, found := ix.LocateKey(from, "type"); found {
		t.Error("LocateKey scanned backward from the scope start")
	}
}

func TestLocateListMarker(t *testing.T) {
	ix := NewIndex(indexFixture)

	tests := []struct {
		name      string
		indent    int
		n         int
		wantFound bool
		wantLine  int
	}{
		{name: "first marker", indent: 4, n: 0, wantFound: true, wantLine: 4},
		{name: "second marker", indent: 4, n: 1, wantFound: true, wantLine: 5},
		{name: "index out of range", indent: 4, n: 2, wantFound: false},
		{name: "wrong indent", indent: 2, n: 0, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, found := ix.LocateListMarker(0, tt.indent, tt.n)
			if found != tt.wantFound {
				t.Fatalf("LocateListMarker(0, %d, %d) found = %v, want %v", tt.indent, tt.n, found, tt.wantFound)
			}
			if !found {
				return
			}
			if pos := ix.PositionAt(m.Start); pos.Line != tt.wantLine || pos.Column != tt.indent {
				t.Errorf("marker at %d:%d, want %d:%d", pos.Line, pos.Column, tt.wantLine, tt.indent)
			}
		})
	}
}

func TestPositionAt(t *testing.T) {
	ix := NewIndex("ab\ncd\n")

	tests := []struct {
		offset int
		want   diag.Position
	}{
		{offset: 0, want: diag.Position{Line: 0, Column: 0}},
		{offset: 1, want: diag.Position{Line: 0, Column: 1}},
		{offset: 3, want: diag.Position{Line: 1, Column: 0}},
		{offset: 4, want: diag.Position{Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		if got := ix.PositionAt(tt.offset); got != tt.want {
			t.Errorf("PositionAt(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestLineRangeClampsToLastLine(t *testing.T) {
	ix := NewIndex("a: 1\nb: 2")

	got := ix.LineRange(99)
	want := diag.Range{
		Start: diag.Position{Line: 1, Column: 0},
		End:   diag.Position{Line: 1, Column: 4},
	}
	if got != want {
		t.Errorf("LineRange(99) = %+v, want %+v", got, want)
	}
}
