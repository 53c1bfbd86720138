package mapper

import (
	"github.com/plugdev/manifestlint/pkg/diag"
	"github.com/plugdev/manifestlint/pkg/schema"
)

// Resolve maps a validation failure to the source range it should be
// reported at. It walks the failure path left to right, narrowing the
// search scope at each step:
//
//   - key segments resolve to the key token via LocateKey; the final key's
//     token range is the result
//   - index segments resolve to the n-th list marker indented two columns
//     deeper than the containing key
//   - Required failures address the parent object, so the walk over the
//     full path ends on the parent key and that key's range is reported,
//     never a range for the missing child, which has no source text
//
// Any miss degrades to the document-start range immediately. Resolution
// never fails: a diagnostic with an imprecise range is still a diagnostic.
func Resolve(f schema.Failure, ix *Index) diag.Range {
	docStart := diag.Range{}

	if len(f.Path) == 0 {
		// Covers both root-level failures and missing top-level properties.
		return docStart
	}

	scope := 0
	indent := -1
	var last Match

	for _, segment := range f.Path {
		if isIndex(segment) {
			m, ok := ix.LocateListMarker(scope, indent+2, parseIndex(segment))
			if !ok {
				return docStart
			}
			scope = m.End
			indent = m.Indent
			last = m
			continue
		}

		m, ok := ix.LocateKey(scope, segment)
		if !ok {
			return docStart
		}
		scope = m.End
		indent = m.Indent
		last = m
	}

	return ix.RangeBetween(last.Start, last.End)
}
