package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/plugdev/manifestlint/pkg/console"
	"github.com/plugdev/manifestlint/pkg/diag"
	"github.com/plugdev/manifestlint/pkg/project"
)

// consoleSink prints published diagnostic sets. It remembers which URIs
// currently have diagnostics so retractions can be announced.
type consoleSink struct {
	mu      sync.Mutex
	active  map[string]bool
	verbose bool
}

func newConsoleSink(verbose bool) *consoleSink {
	return &consoleSink{active: make(map[string]bool), verbose: verbose}
}

// Publish replaces the diagnostic set for uri
func (s *consoleSink) Publish(uri string, diags []diag.Diagnostic) {
	s.mu.Lock()
	had := s.active[uri]
	s.active[uri] = len(diags) > 0
	s.mu.Unlock()

	if len(diags) == 0 {
		if had {
			fmt.Println(console.FormatSuccessMessage(console.ToRelativePath(uri)))
		} else if s.verbose {
			fmt.Println(console.FormatSuccessMessage(console.ToRelativePath(uri)))
		}
		return
	}

	source := ""
	if content, err := os.ReadFile(uri); err == nil {
		source = string(content)
	}
	for _, d := range diags {
		fmt.Print(console.FormatDiagnostic(uri, d, source))
	}
}

// WatchProjects watches the given roots (default: the working directory)
// and revalidates documents as they change, until interrupted
func WatchProjects(roots []string, verbose bool) error {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for i, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("cannot resolve %s: %w", root, err)
		}
		roots[i] = abs
	}

	cfg, err := LoadConfig(".")
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	classifier := project.NewClassifier(cfg.Markers)
	watcher := project.NewWatcher(classifier, p, newConsoleSink(verbose))

	fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Watching %d root(s) for changes. Press Ctrl+C to stop.", len(roots))))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watcher.Watch(ctx, roots)
}
