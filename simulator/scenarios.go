package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/noahaxio/renderers/internal/app"
	"github.com/noahaxio/renderers/internal/assets"
	"github.com/noahaxio/renderers/internal/readings"
	"github.com/noahaxio/renderers/internal/render"
)

// Scenario is a canned dashboard input.
type Scenario struct {
	Dashboard app.Dashboard
	// IconSeed, when set, prepares an icon directory the scenario renders with.
	IconSeed func(dir string) error
}

var scenarios = map[string]func() Scenario{
	"typical":      typicalScenario,
	"empty":        func() Scenario { return Scenario{Dashboard: app.Dashboard{}} },
	"missing-icon": missingIconScenario,
	"many-sensors": manySensorsScenario,
}

// ScenarioNames lists the known scenarios in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupScenario(name string) (Scenario, error) {
	build, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q", name)
	}
	return build(), nil
}

func typicalScenario() Scenario {
	return Scenario{Dashboard: app.Dashboard{
		Readings: []readings.Reading{
			{Label: "Total Grid Energy", Value: readings.Known(182.4)},
			{Label: "Total PV Energy", Value: readings.Known(241.9)},
			{Label: "Total Generator Energy", Value: readings.Known(35.2)},
			{Label: "Total Load Energy", Value: readings.Known(410.7)},
		},
		Monthly: typicalYear(),
		CO2Mass: 12.6,
	}}
}

func typicalYear() []readings.MonthlyRecord {
	records := make([]readings.MonthlyRecord, 0, 12)
	for m := 12; m >= 1; m-- {
		season := float64((m+5)%12) / 11
		records = append(records, readings.MonthlyRecord{
			Month:     fmt.Sprintf("2024-%02d", m),
			Grid:      readings.Known(900 - 400*season),
			Load:      readings.Known(1500 + 200*season),
			PV:        readings.Known(300 + 700*season),
			Generator: readings.Known(50),
		})
	}
	return records
}

func missingIconScenario() Scenario {
	sc := typicalScenario()
	sc.IconSeed = func(dir string) error {
		return seedIcons(dir, "car.svg", "pine-tree.svg")
	}
	return sc
}

func manySensorsScenario() Scenario {
	sc := typicalScenario()
	sc.Dashboard.Readings = nil
	for i := 1; i <= 14; i++ {
		sc.Dashboard.Readings = append(sc.Dashboard.Readings, readings.Reading{
			Label: fmt.Sprintf("Inverter %d", i),
			Value: readings.Known(float64(10 + 7*i)),
		})
	}
	sc.Dashboard.Readings = append(sc.Dashboard.Readings,
		readings.Reading{Label: "Offline meter", Value: readings.Quantity{}},
		readings.Reading{Label: "Export", Value: readings.Known(-12)},
	)
	sc.Dashboard.CO2Mass = 1843.25
	return sc
}

// seedIcons copies the named embedded icons into dir, leaving every other
// icon missing.
func seedIcons(dir string, names ...string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range names {
		data, err := fs.ReadFile(assets.Icons, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeDataURL(path, url string) error {
	png, err := render.DecodeDataURL(url)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}
