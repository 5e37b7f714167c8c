package render

import (
	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSet holds the parsed fonts shared by every render call. Parsed fonts
// are immutable; faces are created per canvas because they are not safe
// for concurrent use.
type FontSet struct {
	Regular *opentype.Font
	Bold    *opentype.Font

	// Chart is handed to the charting library, which wants a freetype font.
	Chart *truetype.Font

	logger logrus.FieldLogger
}

// LoadFonts parses the embedded Go fonts. Parse failures are logged and the
// affected faces fall back to basicfont at draw time.
func LoadFonts(logger logrus.FieldLogger) *FontSet {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("component", "fonts")
	set := &FontSet{logger: logger}

	if fnt, err := opentype.Parse(goregular.TTF); err != nil {
		logger.WithError(err).Error("regular font parse failed, using basicfont")
	} else {
		set.Regular = fnt
	}
	if fnt, err := opentype.Parse(gobold.TTF); err != nil {
		logger.WithError(err).Error("bold font parse failed, using basicfont")
	} else {
		set.Bold = fnt
	}
	// Also parse truetype for the chart library
	if tt, err := truetype.Parse(goregular.TTF); err != nil {
		logger.WithError(err).Error("truetype parse failed, charts use their default font")
	} else {
		set.Chart = tt
	}
	return set
}

// newFace builds a face at sizePx physical pixels.
func (set *FontSet) newFace(bold bool, sizePx float64) font.Face {
	fnt := set.Regular
	if bold && set.Bold != nil {
		fnt = set.Bold
	}
	if fnt == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		set.logger.WithError(err).WithField("size", sizePx).Error("font face create failed, using basicfont")
		return basicfont.Face7x13
	}
	return face
}
