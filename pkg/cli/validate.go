package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/plugdev/manifestlint/pkg/console"
	"github.com/plugdev/manifestlint/pkg/constants"
	"github.com/plugdev/manifestlint/pkg/diag"
	"github.com/plugdev/manifestlint/pkg/pipeline"
	"github.com/plugdev/manifestlint/pkg/project"
	"github.com/plugdev/manifestlint/pkg/schema"
)

type fileResult struct {
	path  string
	diags []diag.Diagnostic
	text  string
	err   error
}

// ValidateFiles validates the given paths. A file argument is validated
// directly when its name maps to a schema kind; a directory argument is
// classified first and, when recognized, all of its schema-governed
// documents are validated. Returns an error when any diagnostics were
// reported, so the command can exit nonzero.
func ValidateFiles(paths []string, verbose bool) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := LoadConfig(".")
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	files, err := collectFiles(paths, cfg, verbose)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println(console.FormatInfoMessage("no documents to validate"))
		return nil
	}

	spin := console.NewSpinner(fmt.Sprintf("Validating %d documents...", len(files)))
	spin.Start()

	workers := pool.NewWithResults[fileResult]().WithMaxGoroutines(cfg.Concurrency())
	for _, file := range files {
		workers.Go(func() fileResult {
			return validateOne(p, file)
		})
	}
	results := workers.Wait()
	spin.Stop()

	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	total := 0
	for _, res := range results {
		if res.err != nil {
			fmt.Println(console.FormatErrorMessage(fmt.Sprintf("%s: %v", res.path, res.err)))
			total++
			continue
		}
		if len(res.diags) == 0 {
			if verbose {
				fmt.Println(console.FormatSuccessMessage(res.path))
			}
			continue
		}
		for _, d := range res.diags {
			fmt.Print(console.FormatDiagnostic(res.path, d, res.text))
		}
		total += len(res.diags)
	}

	if total > 0 {
		return fmt.Errorf("%d problem(s) found", total)
	}
	if verbose {
		fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("%d documents valid", len(files))))
	}
	return nil
}

// buildPipeline compiles the schema registry, applies any override
// directory and reports configuration errors without failing: affected
// kinds validate inertly.
func buildPipeline(cfg Config) (*pipeline.Pipeline, error) {
	reg, err := schema.NewRegistry()
	if err != nil {
		return nil, err
	}
	if cfg.SchemaDir != "" {
		for _, cfgErr := range reg.LoadOverrides(cfg.SchemaDir) {
			fmt.Println(console.FormatWarningMessage(cfgErr.Error()))
		}
	}
	return pipeline.New(reg), nil
}

// collectFiles expands path arguments into validatable documents
func collectFiles(paths []string, cfg Config, verbose bool) ([]string, error) {
	classifier := project.NewClassifier(cfg.Markers)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !info.IsDir() {
			if _, ok := schema.KindForPath(path); !ok {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("skipping %s: not a recognized document name", path)))
				continue
			}
			files = append(files, path)
			continue
		}

		classifier.CheckDirectoryFS(path)
		if !classifier.Recognized(path) {
			if verbose {
				fmt.Println(console.FormatInfoMessage(fmt.Sprintf("skipping %s: not a recognized project (markers: %v)", path, classifier.Markers())))
			}
			continue
		}
		files = append(files, projectDocuments(path)...)
	}
	return files, nil
}

// projectDocuments lists the schema-governed documents under a recognized
// project root
func projectDocuments(root string) []string {
	var files []string
	manifest := filepath.Join(root, constants.ManifestFileName)
	if _, err := os.Stat(manifest); err == nil {
		files = append(files, manifest)
	}
	for _, sub := range []string{constants.ToolsDirName, constants.ProviderDirName} {
		matches, _ := filepath.Glob(filepath.Join(root, sub, "*.yaml"))
		files = append(files, matches...)
	}
	return files
}

func validateOne(p *pipeline.Pipeline, path string) fileResult {
	kind, ok := schema.KindForPath(path)
	if !ok {
		return fileResult{path: path, err: fmt.Errorf("no schema kind for file")}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}
	text := string(content)
	doc := pipeline.Document{URI: path, Text: text, Version: 1}
	return fileResult{path: path, text: text, diags: p.Run(doc, kind)}
}
