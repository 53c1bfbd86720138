package schema

// Kind selects which schema document applies to a file
type Kind string

const (
	KindManifest Kind = "manifest"
	KindTool     Kind = "tool"
	KindProvider Kind = "provider"
)

// Kinds lists all supported schema kinds
var Kinds = []Kind{KindManifest, KindTool, KindProvider}

// FailureKind classifies a single schema violation
type FailureKind int

const (
	Other FailureKind = iota
	Required
	Type
	Enum
	Pattern
	Format
	Minimum
	Maximum
	MinProperties
)

// Failure is one structured validation failure: a JSON-Pointer path into the
// validated value plus kind-specific parameters. Failures are produced fresh
// per validation call and never persisted.
type Failure struct {
	// Path holds the decoded JSON-Pointer segments. Array indices appear as
	// decimal strings, like the validator's instance locations.
	Path   []string
	Kind   FailureKind
	Params Params
}

// Params is a closed union of per-kind failure data. Each variant carries
// only the fields its kind needs, so consumers never probe dynamic maps.
type Params interface {
	isParams()
}

// RequiredParams names the property missing from the object at Path
type RequiredParams struct {
	MissingProperty string
}

// TypeParams names the expected type (or types joined with " or ")
type TypeParams struct {
	Want string
}

// EnumParams lists the values the instance is allowed to take. Const
// violations are reported as a single-value enum.
type EnumParams struct {
	AllowedValues []string
}

// PatternParams carries the regexp the string failed to match
type PatternParams struct {
	Pattern string
}

// FormatParams names the format the string failed, e.g. "date-time"
type FormatParams struct {
	Format string
}

// MinimumParams carries the rendered lower bound
type MinimumParams struct {
	Limit string
}

// MaximumParams carries the rendered upper bound
type MaximumParams struct {
	Limit string
}

// MinPropertiesParams carries the minimum property count
type MinPropertiesParams struct {
	Limit int
}

// OtherParams carries the engine's raw message for kinds the formatter has
// no dedicated template for
type OtherParams struct {
	Message string
}

func (RequiredParams) isParams()      {}
func (TypeParams) isParams()          {}
func (EnumParams) isParams()          {}
func (PatternParams) isParams()       {}
func (FormatParams) isParams()        {}
func (MinimumParams) isParams()       {}
func (MaximumParams) isParams()       {}
func (MinPropertiesParams) isParams() {}
func (OtherParams) isParams()         {}
