package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/plugdev/manifestlint/pkg/constants"
	"github.com/plugdev/manifestlint/pkg/diag"
	"github.com/plugdev/manifestlint/pkg/pipeline"
	"github.com/plugdev/manifestlint/pkg/schema"
)

// Watcher wires filesystem events into the classifier and the validation
// pipeline: marker changes drive recognition transitions, YAML changes
// drive debounced re-validation, and removals clear published diagnostics.
type Watcher struct {
	classifier *Classifier
	pipeline   *pipeline.Pipeline
	sink       diag.Sink
	debounce   time.Duration

	mu        sync.Mutex
	versions  map[string]int
	published map[string]map[string]bool // root -> URIs with published diagnostics
}

// NewWatcher builds a watcher over the given collaborators
func NewWatcher(classifier *Classifier, p *pipeline.Pipeline, sink diag.Sink) *Watcher {
	return &Watcher{
		classifier: classifier,
		pipeline:   p,
		sink:       sink,
		debounce:   constants.WatchDebounce,
		versions:   make(map[string]int),
		published:  make(map[string]map[string]bool),
	}
}

// Watch blocks watching the given roots until ctx is done. Each root is
// classified up front; recognized roots get their documents validated
// immediately and re-validated on change. Document directories created
// under a root after startup are picked up as they appear.
func (w *Watcher) Watch(ctx context.Context, roots []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	w.classifier.Subscribe(func(ev Event) {
		switch ev.Kind {
		case ProjectAdded:
			w.validateRoot(ev.Root)
		case ProjectRemoved:
			w.clearRoot(ev.Root)
		}
	})

	for _, root := range roots {
		if err := watcher.Add(root); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", root, err)
		}
		for _, sub := range []string{constants.ToolsDirName, constants.ProviderDirName} {
			dir := filepath.Join(root, sub)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				if err := watcher.Add(dir); err != nil {
					return fmt.Errorf("failed to watch directory %s: %w", dir, err)
				}
			}
		}
		w.classifier.CheckDirectoryFS(root)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()
	pending := make(map[string]struct{})
	var pendingMu sync.Mutex

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			name := event.Name
			root := rootFor(roots, name)
			if root == "" {
				continue
			}

			if watchNewSubdir(watcher, root, event) && w.classifier.Recognized(root) {
				// Files may land in the directory before the watch is in
				// place; sweep whatever is already there.
				w.validateRoot(root)
				continue
			}

			if w.classifier.IsMarker(filepath.Base(name)) && filepath.Dir(name) == root {
				w.classifier.CheckDirectoryFS(root)
			}

			if _, ok := schema.KindForPath(name); !ok {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				w.clearFile(root, name)
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				if !w.classifier.Recognized(root) {
					continue
				}
				pendingMu.Lock()
				pending[name] = struct{}{}
				pendingMu.Unlock()

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(w.debounce, func() {
					pendingMu.Lock()
					files := make([]string, 0, len(pending))
					for f := range pending {
						files = append(files, f)
					}
					pending = make(map[string]struct{})
					pendingMu.Unlock()

					for _, f := range files {
						w.validateFile(rootFor(roots, f), f)
					}
				})
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}

		case <-ctx.Done():
			return nil
		}
	}
}

// watchNewSubdir adds a watch when a tools/ or provider/ directory appears
// directly under a watched root after startup. Reports whether a watch was
// added.
func watchNewSubdir(fw *fsnotify.Watcher, root string, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	base := filepath.Base(event.Name)
	if base != constants.ToolsDirName && base != constants.ProviderDirName {
		return false
	}
	if filepath.Dir(event.Name) != root {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	return fw.Add(event.Name) == nil
}

// validateRoot validates every schema-governed document currently present
// under a recognized root
func (w *Watcher) validateRoot(root string) {
	for _, path := range projectFiles(root) {
		w.validateFile(root, path)
	}
}

// projectFiles lists the validatable documents under root
func projectFiles(root string) []string {
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

// validateFile runs one pass and publishes the full replacement set
func (w *Watcher) validateFile(root, path string) {
	kind, ok := schema.KindForPath(path)
	if !ok {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		w.clearFile(root, path)
		return
	}

	w.mu.Lock()
	w.versions[path]++
	doc := pipeline.Document{URI: path, Text: string(content), Version: w.versions[path]}
	if w.published[root] == nil {
		w.published[root] = make(map[string]bool)
	}
	w.published[root][path] = true
	w.mu.Unlock()

	w.sink.Publish(path, w.pipeline.Run(doc, kind))
}

// clearFile retracts diagnostics for one document
func (w *Watcher) clearFile(root, path string) {
	w.mu.Lock()
	if w.published[root] != nil {
		delete(w.published[root], path)
	}
	w.mu.Unlock()
	w.sink.Publish(path, nil)
}

// clearRoot retracts every diagnostic previously published for a root
func (w *Watcher) clearRoot(root string) {
	w.mu.Lock()
	uris := make([]string, 0, len(w.published[root]))
	for uri := range w.published[root] {
		uris = append(uris, uri)
	}
	delete(w.published, root)
	w.mu.Unlock()

	for _, uri := range uris {
		w.sink.Publish(uri, nil)
	}
}

// rootFor returns the watched root containing path, or ""
func rootFor(roots []string, path string) string {
	for _, root := range roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return root
		}
	}
	return ""
}
