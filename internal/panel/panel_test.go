package panel

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io/fs"
	"math"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/noahaxio/renderers/internal/assets"
	"github.com/noahaxio/renderers/internal/icons"
	"github.com/noahaxio/renderers/internal/render"
	"github.com/noahaxio/renderers/internal/render/layout"
)

func TestCardsValues(t *testing.T) {
	cards, err := Cards(10000)
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}

	want := []struct {
		icon  string
		title string
		value string
	}{
		{"car", "Passenger Cars Removed", "2,174"},
		{"plane", "NY ↔ London Flights Avoided", "10,000"},
		{"fuel", "Liters of Fuel Not Burned", "4,347,826"},
		{"tree", "Trees Absorbing CO₂", "400,000"},
	}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i, w := range want {
		got := cards[i]
		if got.IconKey != w.icon || got.Title != w.title || got.Value != w.value {
			t.Errorf("card %d = %+v, want %s %q %q", i, got, w.icon, w.title, w.value)
		}
		if got.Accent != Accent {
			t.Errorf("card %d accent = %v, want %v", i, got.Accent, Accent)
		}
	}
}

func TestCardsRejectNonFinite(t *testing.T) {
	for _, mass := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Cards(mass); !errors.Is(err, ErrInvalidMass) {
			t.Errorf("Cards(%v) error = %v, want ErrInvalidMass", mass, err)
		}
	}
}

func TestCardsZeroAndNegative(t *testing.T) {
	tests := []struct {
		mass float64
		want []string
	}{
		{mass: 0, want: []string{"0", "0", "0", "0"}},
		{mass: -4.6, want: []string{"-1", "-5", "-2,000", "-184"}},
	}
	for _, tt := range tests {
		cards, err := Cards(tt.mass)
		if err != nil {
			t.Fatalf("Cards(%v): %v", tt.mass, err)
		}
		for i, card := range cards {
			if card.Value != tt.want[i] {
				t.Errorf("Cards(%v)[%d] = %q, want %q", tt.mass, i, card.Value, tt.want[i])
			}
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{2.5, 3},
		{2.4999, 2},
		{-2.5, -2},
		{-2.6, -3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{4347826, "4,347,826"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type op struct {
	kind string
	rect layout.Rect
	text string
	x, y float64
	fill color.Color
}

// recorder is a Drawer that logs calls and measures 7px per rune.
type recorder struct {
	ops []op
}

func (r *recorder) Size() (float64, float64)  { return 0, 0 }
func (r *recorder) FillBackground(color.Color) { r.ops = append(r.ops, op{kind: "background"}) }

func (r *recorder) MeasureText(text string, style render.TextStyle) render.TextMetrics {
	return render.TextMetrics{Width: float64(utf8.RuneCountInString(text) * 7), LineHeight: style.Size}
}

func (r *recorder) DrawText(text string, x, y float64, style render.TextStyle) render.TextMetrics {
	r.ops = append(r.ops, op{kind: "text", text: text, x: x, y: y, fill: style.Color})
	return r.MeasureText(text, style)
}

func (r *recorder) FillRect(rect layout.Rect, c color.Color) {
	r.ops = append(r.ops, op{kind: "rect", rect: rect, fill: c})
}

func (r *recorder) FillRoundedRect(rect layout.Rect, _ float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "rounded", rect: rect, fill: c})
}

func (r *recorder) FillCircle(cx, cy, _ float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "circle", x: cx, y: cy, fill: c})
}

func (r *recorder) DrawImageInRect(_ image.Image, rect layout.Rect, _ render.ScaleMode) {
	r.ops = append(r.ops, op{kind: "image", rect: rect})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func TestDrawCardOrderAndPlacement(t *testing.T) {
	cards, err := Cards(12.34)
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	icon := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rec := &recorder{}

	Draw(rec, Grid, 12.34, cards, map[string]image.Image{"car": icon, "fuel": icon})

	if rec.ops[0].kind != "background" {
		t.Fatalf("first op = %s, want background", rec.ops[0].kind)
	}
	if got := rec.ops[1]; got.text != "Carbon Savings" || got.x != 20 || got.y != 40 {
		t.Errorf("title op = %+v", got)
	}
	if got := rec.ops[2]; got.text != "12.3 t CO₂" || got.y != 85 {
		t.Errorf("mass op = %+v", got)
	}

	if got := rec.count("rounded"); got != 8 {
		t.Errorf("rounded rects = %d, want 8 (shadow and face per card)", got)
	}
	if got := rec.count("image"); got != 2 {
		t.Errorf("images = %d, want 2", got)
	}
	if got := rec.count("circle"); got != 2 {
		t.Errorf("placeholders = %d, want 2", got)
	}

	// The first card: shadow, face, icon, then text.
	cell := Grid.Cell(0)
	shadow, face, img := rec.ops[3], rec.ops[4], rec.ops[5]
	if shadow.rect != cell.Offset(2, 2) || shadow.fill != shadowColor {
		t.Errorf("shadow = %+v, want %v", shadow, cell.Offset(2, 2))
	}
	if face.rect != cell || face.fill != cardColor {
		t.Errorf("face = %+v, want %v", face, cell)
	}
	if want := (layout.Rect{X: cell.X + 15, Y: cell.Y + 30, W: 40, H: 40}); img.rect != want {
		t.Errorf("icon rect = %v, want %v", img.rect, want)
	}

	// The second card has no icon and gets the placeholder disc.
	second := Grid.Cell(1)
	for _, o := range rec.ops {
		if o.kind == "circle" {
			if o.x != second.X+35 || o.y != second.Y+50 || o.fill != placeholderColor {
				t.Errorf("placeholder = %+v, want at (%v, %v)", o, second.X+35, second.Y+50)
			}
			break
		}
	}
}

func TestDrawWrapsTitles(t *testing.T) {
	rec := &recorder{}
	cards := []Card{{IconKey: "x", Title: "NY ↔ London Flights Avoided", Value: "1", Accent: Accent}}

	Draw(rec, Grid, 1, cards, nil)

	cell := Grid.Cell(0)
	var lines []op
	for _, o := range rec.ops {
		if o.kind == "text" && o.fill == cardTitleColor {
			lines = append(lines, o)
		}
	}
	// Column width 232.5 leaves 152.5 for text; at 7px per rune that wraps.
	if len(lines) < 2 {
		t.Fatalf("title drawn on %d lines, want wrapping", len(lines))
	}
	for i, line := range lines {
		if want := cell.Y + 25 + float64(i)*16; line.y != want {
			t.Errorf("line %d baseline = %v, want %v", i, line.y, want)
		}
		if line.x != cell.X+70 {
			t.Errorf("line %d x = %v, want %v", i, line.x, cell.X+70)
		}
		if w := float64(utf8.RuneCountInString(line.text) * 7); w > cell.W-80 {
			t.Errorf("line %q is %vpx wide, limit %v", line.text, w, cell.W-80)
		}
	}
}

type fakeLoader struct {
	calls int
	files map[string]string
	out   map[string]image.Image
}

func (f *fakeLoader) Load(_ context.Context, files map[string]string) map[string]image.Image {
	f.calls++
	f.files = files
	return f.out
}

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestRenderDimensions(t *testing.T) {
	loader := &fakeLoader{}
	renderer := NewRenderer(render.LoadFonts(quietLogger()), loader, quietLogger())

	png, err := renderer.Render(context.Background(), 10000, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := render.DecodePNG(png)
	if err != nil {
		t.Fatalf("DecodePNG: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(2080, 1380) {
		t.Errorf("size = %v, want 2080x1380", got)
	}
	if loader.calls != 1 || len(loader.files) != 4 {
		t.Errorf("loader called %d times with %d files, want once with 4", loader.calls, len(loader.files))
	}
}

func TestRenderCustomWidthAndRatio(t *testing.T) {
	renderer := NewRenderer(render.LoadFonts(quietLogger()), nil, quietLogger())

	png, err := renderer.Render(context.Background(), 1, Options{Width: 400, PixelRatio: 1})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := render.DecodePNG(png)
	if err != nil {
		t.Fatalf("DecodePNG: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(400, 345) {
		t.Errorf("size = %v, want 400x345", got)
	}
}

func TestRenderMissingIconsFallBack(t *testing.T) {
	logger, hook := test.NewNullLogger()
	loader := &icons.Loader{FS: emptyFS{}, Size: 32, Logger: logger}
	renderer := NewRenderer(render.LoadFonts(logger), loader, logger)

	png, err := renderer.Render(context.Background(), 5, Options{PixelRatio: 1})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("Render returned no image")
	}
	warnings := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 4 {
		t.Errorf("logged %d warnings, want one per missing icon", warnings)
	}
}

func TestRenderRejectsNonFiniteMass(t *testing.T) {
	renderer := NewRenderer(render.LoadFonts(quietLogger()), nil, quietLogger())
	if _, err := renderer.Render(context.Background(), math.NaN(), Options{}); !errors.Is(err, ErrInvalidMass) {
		t.Errorf("Render(NaN) error = %v, want ErrInvalidMass", err)
	}
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func TestOneMissingIconFallsBackToPlaceholder(t *testing.T) {
	logger, hook := test.NewNullLogger()
	fsys := fstest.MapFS{}
	for _, name := range []string{"car.svg", "gas-tank.svg", "pine-tree.svg"} {
		data, err := fs.ReadFile(assets.Icons, name)
		if err != nil {
			t.Fatalf("read embedded %s: %v", name, err)
		}
		fsys[name] = &fstest.MapFile{Data: data}
	}
	renderer := NewRenderer(render.LoadFonts(logger), &icons.Loader{FS: fsys, Size: 32, Logger: logger}, logger)

	cards, err := Cards(100)
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	rec := &recorder{}
	Draw(rec, Grid, 100, cards, renderer.loadIcons(context.Background(), cards))

	if got := rec.count("image"); got != 3 {
		t.Errorf("icons drawn = %d, want 3", got)
	}
	if got := rec.count("circle"); got != 1 {
		t.Errorf("placeholders drawn = %d, want 1", got)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Data["icon"] != "plane" {
		t.Errorf("last log entry = %v, want a warning about plane", entry)
	}

	if _, err := renderer.Render(context.Background(), 100, Options{PixelRatio: 1}); err != nil {
		t.Errorf("Render with a missing icon failed: %v", err)
	}
}
