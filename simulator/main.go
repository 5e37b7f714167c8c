// Command simulator renders every dashboard image for a canned scenario so
// layouts can be previewed without a live data feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/noahaxio/renderers/internal/app"
	"github.com/noahaxio/renderers/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	scenario := flag.String("scenario", "typical", "preview scenario: "+strings.Join(ScenarioNames(), " | "))
	outDir := flag.String("out", "/tmp/renderers-sim", "directory the PNG previews are written to")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		cfg.Log.Level = "debug"
	}
	logger := cfg.Log.NewLogger()

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := filepath.Clean(*outDir)
	name := strings.TrimSpace(*scenario)
	if name == "" {
		name = "typical"
	}

	written, err := Run(processCtx, *cfg, name, root, logger)
	if err != nil {
		fmt.Println("scenario error:", err)
		os.Exit(1)
	}

	fmt.Println("Scenario:", name)
	for _, path := range written {
		fmt.Println("  wrote", path)
	}
}

// Run renders scenario name into root and returns the files written.
func Run(ctx context.Context, cfg config.Config, name, root string, logger logrus.FieldLogger) ([]string, error) {
	sc, err := LookupScenario(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	if sc.IconSeed != nil {
		iconDir := filepath.Join(root, "icons")
		if err := sc.IconSeed(iconDir); err != nil {
			return nil, fmt.Errorf("seed icons: %w", err)
		}
		cfg.Icons.Dir = iconDir
	}

	a := app.New(cfg, logger)
	images, err := a.RenderDashboard(ctx, sc.Dashboard)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, out := range []struct {
		file string
		url  string
	}{
		{"bar.png", images.Bar},
		{"pie.png", images.Pie},
		{"yearly.png", images.Yearly},
		{"co2.png", images.CO2},
	} {
		path := filepath.Join(root, out.file)
		if out.url == "" {
			// Nothing to draw; drop any stale preview from an earlier run.
			_ = os.Remove(path)
			logger.WithField("file", out.file).Info("empty result, no preview written")
			continue
		}
		if err := writeDataURL(path, out.url); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
