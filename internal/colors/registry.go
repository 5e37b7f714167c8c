// Package colors resolves sensor labels to stable fill and border colors.
package colors

import (
	"strings"
	"sync"
)

// Registry hands out palette colors to sensors that have no semantic style.
// Assignments are append-only: once a label has a color it keeps it for the
// lifetime of the Registry, which is meant to be the lifetime of the process.
// The zero value is ready to use.
type Registry struct {
	mu       sync.Mutex
	assigned map[string]Assignment
	next     int
}

func NewRegistry() *Registry {
	return &Registry{assigned: make(map[string]Assignment)}
}

// Resolve returns the colors for label. Surrounding whitespace is ignored.
// Known labels map to their semantic style; any other label gets the next
// palette slot on first use. Slots repeat once more distinct labels than
// palette entries have been seen.
func (registry *Registry) Resolve(label string) Assignment {
	label = strings.TrimSpace(label)
	if style, ok := Override(label); ok {
		return style
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if existing, ok := registry.assigned[label]; ok {
		return existing
	}
	if registry.assigned == nil {
		registry.assigned = make(map[string]Assignment)
	}
	assignment := assignmentFor(Palette[registry.next%len(Palette)])
	registry.assigned[label] = assignment
	registry.next++
	return assignment
}

// Len reports how many labels have been given a palette slot.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.assigned)
}
