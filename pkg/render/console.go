package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/natevvv/grid-astar/pkg/grid"
)

// PrintTiles writes the grid framed by a border, one glyph per tile.
func PrintTiles(w io.Writer, g *grid.Grid) error {
	var sb strings.Builder
	writeFrame(&sb, g, func(row, col int) string {
		return tileGlyph(tileAt(g, row, col))
	})
	_, err := io.WriteString(w, sb.String())
	return err
}

// PrintSearch writes the classified cells of s followed by its iteration count and state.
func PrintSearch(w io.Writer, s Search) error {
	g := s.Grid()
	var sb strings.Builder
	writeFrame(&sb, g, func(row, col int) string {
		return cellGlyph(s.Classify(row, col), tileAt(g, row, col))
	})
	sb.WriteString(fmt.Sprintf("iteration: %v %v\n", s.Iterations(), s.State()))
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFrame(sb *strings.Builder, g *grid.Grid, glyph func(row, col int) string) {
	border := strings.Repeat(borderGlyph, g.Cols()+2) + "\n"
	sb.WriteString("\n")
	sb.WriteString(border)
	for row := 0; row < g.Rows(); row++ {
		sb.WriteString(borderGlyph)
		for col := 0; col < g.Cols(); col++ {
			sb.WriteString(glyph(row, col))
		}
		sb.WriteString(borderGlyph)
		sb.WriteString("\n")
	}
	sb.WriteString(border)
}
