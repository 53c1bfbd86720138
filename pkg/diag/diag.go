// Package diag defines the diagnostic model shared by the validation pipeline
// and its consumers: a source range, a message and a severity. Positions are
// zero-based; renderers that show positions to humans add one.
package diag

// Severity classifies a diagnostic
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// MarshalText renders the severity for JSON output
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Position is a zero-based line/column location in document text
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open span between two positions. The zero value is the
// document-start range, used as the fallback when a failure cannot be
// located in the source text.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic describes one validation problem anchored to source text.
// Diagnostics are ephemeral: the full set for a document is replaced on
// every validation pass, never patched incrementally.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Sink receives the complete diagnostic set for a document. Publishing nil
// or an empty list clears any previously published diagnostics for the URI.
type Sink interface {
	Publish(uri string, diags []Diagnostic)
}
