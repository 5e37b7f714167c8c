package colors

import (
	"fmt"
	"sync"
	"testing"
)

func TestResolveIsDeterministic(t *testing.T) {
	registry := NewRegistry()

	first := registry.Resolve("Battery SoC")
	second := registry.Resolve("Battery SoC")
	if first != second {
		t.Fatalf("Resolve returned %v then %v", first, second)
	}
	if registry.Len() != 1 {
		t.Errorf("Len() = %d, want 1", registry.Len())
	}
}

func TestResolveTrimsWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
	}{
		{name: "override", left: " Total load ", right: "Total load"},
		{name: "registry", left: "\tInverter 2\n", right: "Inverter 2"},
		{name: "empty", left: "   ", right: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			if got, want := registry.Resolve(tt.left), registry.Resolve(tt.right); got != want {
				t.Errorf("Resolve(%q) = %v, Resolve(%q) = %v", tt.left, got, tt.right, want)
			}
		})
	}
}

func TestResolveOverrides(t *testing.T) {
	tests := []struct {
		label string
		want  Assignment
	}{
		{"Total Load Energy", Teal},
		{"Total load", Teal},
		{"Total Grid Energy", Red},
		{"Grid import", Red},
		{"Total PV Energy", Green},
		{"Solar generated", Green},
		{"Total PV Charge", Green},
		{"Total Generator Energy", Purple},
		{"DG generated", Purple},
	}

	registry := NewRegistry()
	// Fill the registry first so overrides are checked against a dirty counter.
	for i := 0; i < 20; i++ {
		registry.Resolve(fmt.Sprintf("sensor-%d", i))
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := registry.Resolve(tt.label); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
	if registry.Len() != 20 {
		t.Errorf("overrides must not be stored, Len() = %d", registry.Len())
	}
}

func TestResolveOverridesAreCaseSensitive(t *testing.T) {
	registry := NewRegistry()
	if got := registry.Resolve("total load"); got == Teal {
		t.Errorf("lower-case alias must not match the teal override")
	}
}

func TestResolveRoundRobinWithinPalette(t *testing.T) {
	registry := NewRegistry()
	seen := make(map[Assignment]string)
	for i := range Palette {
		label := fmt.Sprintf("unknown-%d", i)
		got := registry.Resolve(label)
		if other, dup := seen[got]; dup {
			t.Fatalf("%q and %q share color %v", label, other, got)
		}
		seen[got] = label
		if got.Fill != Palette[i] {
			t.Errorf("slot %d fill = %v, want %v", i, got.Fill, Palette[i])
		}
		if got.Border.A != 0xFF || got.Border.R != Palette[i].R {
			t.Errorf("slot %d border = %v", i, got.Border)
		}
	}

	wrapped := registry.Resolve("one-too-many")
	if wrapped != registry.Resolve("unknown-0") {
		t.Errorf("label past palette size should reuse slot 0, got %v", wrapped)
	}
}

func TestResolveConcurrentFirstUse(t *testing.T) {
	registry := NewRegistry()

	const workers = 32
	results := make([]Assignment, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = registry.Resolve("Shared sensor")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d got %v, worker 0 got %v", i, results[i], results[0])
		}
	}
	if registry.Len() != 1 {
		t.Errorf("Len() = %d, want 1", registry.Len())
	}
	if next := registry.Resolve("Second sensor"); next.Fill != Palette[1] {
		t.Errorf("counter advanced more than once: second label got %v", next.Fill)
	}
}

func TestZeroValueRegistry(t *testing.T) {
	var registry Registry

	if got, want := registry.Resolve("Inverter 1"), assignmentFor(Palette[0]); got != want {
		t.Errorf("Resolve on zero Registry = %v, want %v", got, want)
	}
	if got, want := registry.Resolve("Inverter 2"), assignmentFor(Palette[1]); got != want {
		t.Errorf("second label = %v, want %v", got, want)
	}
	if got := registry.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
}
