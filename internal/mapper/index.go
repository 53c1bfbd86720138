// Package mapper bridges structured validation failures back to the source
// text they came from. It deliberately does not parse YAML: the index is a
// scoped token search over raw lines, O(n) per lookup, which is approximate
// (duplicate key names, keys inside block scalars) but deterministic and
// never fails: callers always get a range, worst case document start.
package mapper

import (
	"regexp"
	"sort"
	"strings"

	"github.com/plugdev/manifestlint/pkg/diag"
)

// Match is a located token: byte offsets into the indexed text plus the
// column the token starts at, used as the indentation anchor for nested
// lookups.
type Match struct {
	Start  int
	End    int
	Indent int
}

// Index is a queryable view over one document's raw text. Build it once per
// validation pass and reuse it for every failure.
type Index struct {
	text        string
	lineOffsets []int
}

// NewIndex builds the newline-offset table for text
func NewIndex(text string) *Index {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Index{text: text, lineOffsets: offsets}
}

// LineCount returns the number of lines in the indexed text
func (ix *Index) LineCount() int {
	return len(ix.lineOffsets)
}

// PositionAt converts a byte offset to a zero-based line/column position
func (ix *Index) PositionAt(offset int) diag.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.text) {
		offset = len(ix.text)
	}
	line := sort.Search(len(ix.lineOffsets), func(i int) bool {
		return ix.lineOffsets[i] > offset
	}) - 1
	return diag.Position{Line: line, Column: offset - ix.lineOffsets[line]}
}

// RangeBetween converts a byte-offset span to a line/column range
func (ix *Index) RangeBetween(start, end int) diag.Range {
	return diag.Range{Start: ix.PositionAt(start), End: ix.PositionAt(end)}
}

// LineRange returns the range covering the whole of the given zero-based
// line, clamped to the last line of the text
func (ix *Index) LineRange(line int) diag.Range {
	if line < 0 {
		line = 0
	}
	if last := len(ix.lineOffsets) - 1; line > last {
		line = last
	}
	return diag.Range{
		Start: diag.Position{Line: line},
		End:   diag.Position{Line: line, Column: len(ix.line(line))},
	}
}

// line returns the text of line i without its trailing newline
func (ix *Index) line(i int) string {
	start := ix.lineOffsets[i]
	end := len(ix.text)
	if i+1 < len(ix.lineOffsets) {
		end = ix.lineOffsets[i+1] - 1
	}
	return ix.text[start:end]
}

// lineAt returns the index of the line containing offset
func (ix *Index) lineAt(offset int) int {
	line := sort.Search(len(ix.lineOffsets), func(i int) bool {
		return ix.lineOffsets[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return line
}

// keyPattern matches "key:" at the start of a line, optionally behind
// indentation and a list marker. Quoted keys and keys repeated inside
// scalar values are outside this heuristic's contract.
func keyPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`^([ \t]*)(?:- +)?(` + regexp.QuoteMeta(key) + `)[ \t]*:`)
}

// LocateKey finds the first occurrence of key followed by a colon at or
// after byte offset from, scanning forward only. The returned match covers
// exactly the key token, not its value.
func (ix *Index) LocateKey(from int, key string) (Match, bool) {
	re := keyPattern(key)
	for i := ix.lineAt(from); i < len(ix.lineOffsets); i++ {
		line := ix.line(i)
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		start := ix.lineOffsets[i] + loc[4]
		if start < from {
			continue
		}
		return Match{Start: start, End: ix.lineOffsets[i] + loc[5], Indent: loc[4]}, true
	}
	return Match{}, false
}

// LocateListMarker finds the n-th (0-indexed) "- " list marker at exactly
// indent spaces of indentation, restricted to text at or after from.
func (ix *Index) LocateListMarker(from, indent, n int) (Match, bool) {
	if indent < 0 {
		indent = 0
	}
	seen := 0
	for i := ix.lineAt(from); i < len(ix.lineOffsets); i++ {
		line := ix.line(i)
		if leadingSpaces(line) != indent {
			continue
		}
		rest := line[indent:]
		if rest != "-" && !strings.HasPrefix(rest, "- ") {
			continue
		}
		start := ix.lineOffsets[i] + indent
		if start < from {
			continue
		}
		if seen == n {
			return Match{Start: start, End: start + 1, Indent: indent}, true
		}
		seen++
	}
	return Match{}, false
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
