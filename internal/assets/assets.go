package assets

import (
	"embed"
	"io/fs"
)

//go:embed icons/*.svg
var iconsFS embed.FS

// Icons is an embedded filesystem rooted at internal/assets/icons.
// It holds the equivalence card artwork as SVG.
var Icons fs.FS

func init() {
	// Embed paths include the leading directory; strip it so names match
	// a plain icons directory on disk.
	sub, err := fs.Sub(iconsFS, "icons")
	if err != nil {
		panic(err)
	}
	Icons = sub
}
