package project

import (
	"os"
	"path/filepath"
	"testing"
)

func markerSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func TestCheckDirectoryTransitions(t *testing.T) {
	c := NewClassifier([]string{".projectignore", "manifest.yaml", "main.py"})

	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })

	// Two of three markers: not recognized, no event.
	c.CheckDirectory("/proj", markerSet(".projectignore", "manifest.yaml"))
	if len(events) != 0 {
		t.Fatalf("partial markers emitted events: %v", events)
	}
	if c.Recognized("/proj") {
		t.Fatal("root recognized with a marker missing")
	}

	// All markers appear: exactly one added event.
	c.CheckDirectory("/proj", markerSet(".projectignore", "manifest.yaml", "main.py"))
	if len(events) != 1 || events[0] != (Event{Root: "/proj", Kind: ProjectAdded}) {
		t.Fatalf("events = %v, want single added event", events)
	}
	if !c.Recognized("/proj") {
		t.Fatal("root not recognized with all markers present")
	}

	// Re-checking the same state is a no-op.
	c.CheckDirectory("/proj", markerSet(".projectignore", "manifest.yaml", "main.py"))
	if len(events) != 1 {
		t.Fatalf("redundant check emitted events: %v", events[1:])
	}

	// A marker disappears: exactly one removed event.
	c.CheckDirectory("/proj", markerSet("manifest.yaml", "main.py"))
	if len(events) != 2 || events[1] != (Event{Root: "/proj", Kind: ProjectRemoved}) {
		t.Fatalf("events = %v, want added then removed", events)
	}
	if c.Recognized("/proj") {
		t.Fatal("root still recognized after a marker vanished")
	}

	// Still missing: no further events.
	c.CheckDirectory("/proj", markerSet("manifest.yaml"))
	if len(events) != 2 {
		t.Fatalf("redundant unrecognized check emitted events: %v", events[2:])
	}
}

func TestCheckDirectoryFS(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(nil)

	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })

	for _, name := range []string{".projectignore", "manifest.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	c.CheckDirectoryFS(dir)
	if len(events) != 0 {
		t.Fatalf("incomplete directory emitted events: %v", events)
	}

	if err := os.WriteFile(filepath.Join(dir, "main.py"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c.CheckDirectoryFS(dir)
	if len(events) != 1 || events[0].Kind != ProjectAdded {
		t.Fatalf("events = %v, want single added event", events)
	}

	if err := os.Remove(filepath.Join(dir, ".projectignore")); err != nil {
		t.Fatal(err)
	}
	c.CheckDirectoryFS(dir)
	if len(events) != 2 || events[1].Kind != ProjectRemoved {
		t.Fatalf("events = %v, want added then removed", events)
	}
}

func TestForget(t *testing.T) {
	c := NewClassifier(nil)

	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })

	c.CheckDirectory("/proj", markerSet(".projectignore", "manifest.yaml", "main.py"))
	c.Forget("/proj")
	if len(events) != 2 || events[1] != (Event{Root: "/proj", Kind: ProjectRemoved}) {
		t.Fatalf("events = %v, want added then removed", events)
	}

	// Forgetting an unknown root emits nothing.
	c.Forget("/other")
	if len(events) != 2 {
		t.Fatalf("forget of unknown root emitted events: %v", events[2:])
	}
}

func TestRootsSorted(t *testing.T) {
	c := NewClassifier([]string{"manifest.yaml"})
	for _, root := range []string{"/b", "/a", "/c"} {
		c.CheckDirectory(root, markerSet("manifest.yaml"))
	}
	roots := c.Roots()
	want := []string{"/a", "/b", "/c"}
	if len(roots) != len(want) {
		t.Fatalf("roots = %v, want %v", roots, want)
	}
	for i := range want {
		if roots[i] != want[i] {
			t.Fatalf("roots = %v, want %v", roots, want)
		}
	}
}

func TestIsMarker(t *testing.T) {
	c := NewClassifier(nil)
	if !c.IsMarker("manifest.yaml") {
		t.Error("manifest.yaml should be a marker")
	}
	if c.IsMarker("readme.md") {
		t.Error("readme.md should not be a marker")
	}
}
