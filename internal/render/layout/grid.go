package layout

// Grid describes a fixed-column card grid placed below a header band.
type Grid struct {
	Width        float64
	Columns      int
	Padding      float64
	Gap          float64
	CardHeight   float64
	HeaderHeight float64
}

// Rows returns how many rows are needed for count cards.
func (grid Grid) Rows(count int) int {
	if count <= 0 || grid.Columns <= 0 {
		return 0
	}
	return (count + grid.Columns - 1) / grid.Columns
}

// Height returns the exact logical canvas height for count cards: header,
// rows, the gaps between rows and the bottom padding. Nothing trails the
// last row beyond the padding.
func (grid Grid) Height(count int) float64 {
	rows := grid.Rows(count)
	if rows == 0 {
		return grid.HeaderHeight + grid.Padding
	}
	return grid.HeaderHeight + float64(rows)*grid.CardHeight + float64(rows-1)*grid.Gap + grid.Padding
}

// ColumnWidth returns the width of a single card.
func (grid Grid) ColumnWidth() float64 {
	if grid.Columns <= 0 {
		return 0
	}
	return (grid.Width - 2*grid.Padding - float64(grid.Columns-1)*grid.Gap) / float64(grid.Columns)
}

// Cell returns the card rectangle for index. Cards fill rows left to right;
// a new row starts after every Columns cards.
func (grid Grid) Cell(index int) Rect {
	if grid.Columns <= 0 || index < 0 {
		return Rect{}
	}
	column := index % grid.Columns
	row := index / grid.Columns
	width := grid.ColumnWidth()
	return Rect{
		X: grid.Padding + float64(column)*(width+grid.Gap),
		Y: grid.HeaderHeight + float64(row)*(grid.CardHeight+grid.Gap),
		W: width,
		H: grid.CardHeight,
	}
}
