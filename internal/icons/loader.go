// Package icons rasterizes the SVG artwork used on equivalence cards.
package icons

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/sync/errgroup"

	"github.com/noahaxio/renderers/internal/assets"
)

// DefaultSize is the edge length icons are rasterized at before the panel
// scales them down to their card slot.
const DefaultSize = 512

// Loader reads SVG files from FS and rasterizes them to Size×Size images.
type Loader struct {
	FS     fs.FS
	Size   int
	Logger logrus.FieldLogger
}

// NewLoader returns a loader reading from dir, or from the embedded icon set
// when dir is empty.
func NewLoader(dir string, size int, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	source := assets.Icons
	mode := "embedded"
	if dir != "" {
		source = os.DirFS(dir)
		mode = "directory"
	}
	if size <= 0 {
		size = DefaultSize
	}
	logger = logger.WithField("component", "icons")
	logger.WithFields(logrus.Fields{"mode": mode, "dir": dir, "size": size}).Debug("icon loader ready")
	return &Loader{FS: source, Size: size, Logger: logger}
}

// Load rasterizes every path in files concurrently and returns the images
// keyed like files. Icons that fail to load are logged and left out of the
// result; callers draw a placeholder for missing keys.
func (l *Loader) Load(ctx context.Context, files map[string]string) map[string]image.Image {
	var (
		mu     sync.Mutex
		images = make(map[string]image.Image, len(files))
	)

	g, ctx := errgroup.WithContext(ctx)
	for key, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				l.logger().WithError(err).WithField("icon", key).Warn("icon load cancelled")
				return nil
			}
			img, err := l.Rasterize(path)
			if err != nil {
				// Non-fatal: the card falls back to a placeholder.
				l.logger().WithError(err).WithFields(logrus.Fields{"icon": key, "path": path}).Warn("failed to load icon")
				return nil
			}
			mu.Lock()
			images[key] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return images
}

// Rasterize reads one SVG file and renders it centred in a Size×Size
// transparent image, preserving its aspect ratio.
func (l *Loader) Rasterize(path string) (image.Image, error) {
	if l.FS == nil {
		return nil, fmt.Errorf("no icon source configured")
	}
	f, err := l.FS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	size := l.Size
	if size <= 0 {
		size = DefaultSize
	}
	s := float64(size)
	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = s, s
	}
	scale := math.Min(s/w, s/h)
	tw, th := w*scale, h*scale
	icon.SetTarget((s-tw)/2, (s-th)/2, tw, th)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1)
	return img, nil
}

func (l *Loader) logger() logrus.FieldLogger {
	if l.Logger == nil {
		return logrus.StandardLogger()
	}
	return l.Logger
}
