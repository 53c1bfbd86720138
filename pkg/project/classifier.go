// Package project decides, from filesystem evidence, which directories are
// recognized plugin projects, and keeps that decision current as files
// change. Recognition is a per-directory state machine: a root is
// recognized exactly while every configured marker file exists under it.
package project

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/plugdev/manifestlint/pkg/constants"
)

// EventKind distinguishes recognition transitions
type EventKind int

const (
	ProjectAdded EventKind = iota
	ProjectRemoved
)

func (k EventKind) String() string {
	if k == ProjectRemoved {
		return "removed"
	}
	return "added"
}

// Event notifies subscribers of a recognition transition for a root
type Event struct {
	Root string
	Kind EventKind
}

// Classifier tracks recognition state per candidate root. Transitions
// happen only on explicit checks; there is no polling. State is guarded by
// a mutex so callers driving checks from watcher goroutines stay safe; the
// single-threaded case pays nothing for it.
type Classifier struct {
	markers []string

	mu          sync.Mutex
	recognized  map[string]bool
	subscribers []func(Event)
}

// NewClassifier builds a classifier over the given marker filenames, or the
// default set when none are given
func NewClassifier(markers []string) *Classifier {
	if len(markers) == 0 {
		markers = constants.DefaultProjectMarkers
	}
	return &Classifier{
		markers:    append([]string(nil), markers...),
		recognized: make(map[string]bool),
	}
}

// Markers returns the configured marker filenames
func (c *Classifier) Markers() []string {
	return append([]string(nil), c.markers...)
}

// Subscribe registers a callback for recognition transitions. Callbacks run
// synchronously on the goroutine driving the check, after state has been
// updated.
func (c *Classifier) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// CheckDirectory applies the marker evidence for root and transitions state
// if needed. Redundant checks emit no events.
func (c *Classifier) CheckDirectory(root string, markers map[string]bool) {
	all := true
	for _, m := range c.markers {
		if !markers[m] {
			all = false
			break
		}
	}

	c.mu.Lock()
	was := c.recognized[root]
	var event *Event
	switch {
	case all && !was:
		c.recognized[root] = true
		event = &Event{Root: root, Kind: ProjectAdded}
	case !all && was:
		c.recognized[root] = false
		event = &Event{Root: root, Kind: ProjectRemoved}
	}
	subscribers := c.subscribers
	c.mu.Unlock()

	if event != nil {
		for _, fn := range subscribers {
			fn(*event)
		}
	}
}

// CheckDirectoryFS stats each marker under root and applies the result
func (c *Classifier) CheckDirectoryFS(root string) {
	markers := make(map[string]bool, len(c.markers))
	for _, m := range c.markers {
		if _, err := os.Stat(filepath.Join(root, m)); err == nil {
			markers[m] = true
		}
	}
	c.CheckDirectory(root, markers)
}

// Forget drops a root from tracking, emitting a removed event if it was
// recognized. Used when a workspace root goes away entirely.
func (c *Classifier) Forget(root string) {
	c.mu.Lock()
	was := c.recognized[root]
	delete(c.recognized, root)
	subscribers := c.subscribers
	c.mu.Unlock()

	if was {
		for _, fn := range subscribers {
			fn(Event{Root: root, Kind: ProjectRemoved})
		}
	}
}

// Recognized reports whether root is currently a recognized project
func (c *Classifier) Recognized(root string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recognized[root]
}

// Roots returns the currently recognized roots in sorted order
func (c *Classifier) Roots() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	roots := make([]string, 0, len(c.recognized))
	for root, ok := range c.recognized {
		if ok {
			roots = append(roots, root)
		}
	}
	sort.Strings(roots)
	return roots
}

// IsMarker reports whether name is one of the configured marker filenames
func (c *Classifier) IsMarker(name string) bool {
	for _, m := range c.markers {
		if m == name {
			return true
		}
	}
	return false
}
