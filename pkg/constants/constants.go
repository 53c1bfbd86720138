package constants

import "time"

// CLIName is the binary name used in user-facing output
const CLIName = "manifestlint"

// ManifestFileName is the project manifest validated against the manifest schema
const ManifestFileName = "manifest.yaml"

// ToolsDirName holds tool definitions validated against the tool schema
const ToolsDirName = "tools"

// ProviderDirName holds provider definitions validated against the provider schema
const ProviderDirName = "provider"

// ConfigFileName is the optional per-workspace configuration file
const ConfigFileName = ".manifestlint.yml"

// DefaultProjectMarkers is the default set of marker files that must all
// coexist in a directory for it to be recognized as a plugin project.
// The set is configuration, not a hardwired contract.
var DefaultProjectMarkers = []string{".projectignore", "manifest.yaml", "main.py"}

// WatchDebounce is how long the watcher coalesces file events before revalidating
const WatchDebounce = 300 * time.Millisecond

// DefaultMaxConcurrency bounds parallel per-file validation in the CLI
const DefaultMaxConcurrency = 4
