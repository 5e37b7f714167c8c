package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const dataURLPrefix = "data:image/png;base64,"

// DataURL wraps PNG bytes in a base64 data URL.
func DataURL(pngData []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(pngData)
}

// DecodeDataURL is the inverse of DataURL.
func DecodeDataURL(url string) ([]byte, error) {
	if !strings.HasPrefix(url, dataURLPrefix) {
		return nil, errors.New("not a PNG data URL")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, dataURLPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	return data, nil
}

// DecodePNG decodes PNG bytes produced by a chart library.
func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	return img, nil
}

// Placeholder renders a blank canvas carrying a centred message. Used when
// a chart has nothing to plot.
func Placeholder(width, height float64, message string, fonts *FontSet) ([]byte, error) {
	canvas, err := NewCanvas(width, height, 1, fonts)
	if err != nil {
		return nil, err
	}
	canvas.FillBackground(Background)
	canvas.DrawText(message, width/2, height/2, TextStyle{Color: Foreground, Size: DefaultFontSize, Align: TextAlignCenter})
	return canvas.EncodePNG()
}
