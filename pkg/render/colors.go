package render

import (
	"image/color"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/path"
)

var (
	borderColor  = color.RGBA{0, 0, 0, 255}
	invalidColor = color.RGBA{255, 0, 255, 255}

	tileColors = map[grid.Tile]color.RGBA{
		grid.Passable: {255, 255, 255, 255},
		grid.Blocked:  {127, 127, 127, 255},
	}

	// Plain cells are drawn with their tile colour.
	classificationColors = map[path.Classification]color.RGBA{
		path.Start:    {255, 127, 127, 255},
		path.Goal:     {127, 0, 0, 255},
		path.OnPath:   {255, 0, 0, 255},
		path.Frontier: {255, 255, 0, 255},
		path.Visited:  {255, 192, 0, 255},
	}
)

// console glyphs, three characters wide
const borderGlyph = "###"

var (
	tileGlyphs = map[grid.Tile]string{
		grid.Passable: "   ",
		grid.Blocked:  "[#]",
	}

	classificationGlyphs = map[path.Classification]string{
		path.Start:    "[S]",
		path.Goal:     "[E]",
		path.OnPath:   "[+]",
		path.Frontier: " - ",
		path.Visited:  " + ",
	}
)

func TileColor(t grid.Tile) color.RGBA {
	if c, ok := tileColors[t]; ok {
		return c
	}
	return invalidColor
}

// CellColor is the colour of a classified cell with the given tile.
func CellColor(c path.Classification, t grid.Tile) color.RGBA {
	if col, ok := classificationColors[c]; ok {
		return col
	}
	return TileColor(t)
}

func tileGlyph(t grid.Tile) string {
	if g, ok := tileGlyphs[t]; ok {
		return g
	}
	return "???"
}

func cellGlyph(c path.Classification, t grid.Tile) string {
	if g, ok := classificationGlyphs[c]; ok {
		return g
	}
	return tileGlyph(t)
}
