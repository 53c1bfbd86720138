package diag

import (
	"fmt"
	"strings"

	"github.com/plugdev/manifestlint/pkg/schema"
)

// Format renders a validation failure as a stable, human-readable message.
// It is a pure switch over the failure kind; identical failures always
// produce identical strings.
func Format(f schema.Failure) string {
	path := DotPath(f.Path)

	switch p := f.Params.(type) {
	case schema.RequiredParams:
		return fmt.Sprintf("Missing required property: '%s'", p.MissingProperty)
	case schema.TypeParams:
		return fmt.Sprintf("'%s' should be %s", path, p.Want)
	case schema.EnumParams:
		return fmt.Sprintf("'%s' should be one of: %s", path, strings.Join(p.AllowedValues, ", "))
	case schema.PatternParams:
		return fmt.Sprintf("'%s' should match pattern: %s", path, p.Pattern)
	case schema.FormatParams:
		return fmt.Sprintf("'%s' should be a valid %s", path, p.Format)
	case schema.MinimumParams:
		return fmt.Sprintf("'%s' should be >= %s", path, p.Limit)
	case schema.MaximumParams:
		return fmt.Sprintf("'%s' should be <= %s", path, p.Limit)
	case schema.MinPropertiesParams:
		return fmt.Sprintf("'%s' should have at least %d properties", path, p.Limit)
	case schema.OtherParams:
		if p.Message != "" {
			return p.Message
		}
	}

	if path == "" {
		path = "manifest"
	}
	return fmt.Sprintf("Validation error in %s", path)
}

// DotPath renders JSON-Pointer segments as a dot-joined path with the
// leading separator stripped: ["meta","runner","language"] becomes
// "meta.runner.language", ["tools","1"] becomes "tools.1".
func DotPath(segments []string) string {
	return strings.Join(segments, ".")
}
