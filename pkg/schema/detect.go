package schema

import (
	"path/filepath"
	"strings"

	"github.com/plugdev/manifestlint/pkg/constants"
)

// KindForPath maps a file path to the schema kind that governs it:
// manifest.yaml, tools/*.yaml and provider/*.yaml. The second return is
// false for files this system does not validate.
func KindForPath(path string) (Kind, bool) {
	base := filepath.Base(path)
	if base == constants.ManifestFileName {
		return KindManifest, true
	}

	if !strings.HasSuffix(base, ".yaml") {
		return "", false
	}

	switch filepath.Base(filepath.Dir(path)) {
	case constants.ToolsDirName:
		return KindTool, true
	case constants.ProviderDirName:
		return KindProvider, true
	}
	return "", false
}
