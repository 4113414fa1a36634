package render

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/natevvv/grid-astar/pkg/grid"
	"golang.org/x/image/bmp"
)

const (
	TileSize   = 3 // pixels per cell edge
	BorderSize = 5 // black frame around the map
)

// Picture is a rendered map, encodable as BMP or PNG.
type Picture struct {
	dc *gg.Context
}

// DrawTiles renders the bare map.
func DrawTiles(g *grid.Grid) *Picture {
	p := newPicture(g)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			p.drawCell(row, col, TileColor(tileAt(g, row, col)))
		}
	}
	return p
}

// DrawSearch renders every cell of the search's grid in the colour of its classification.
func DrawSearch(s Search) *Picture {
	g := s.Grid()
	p := newPicture(g)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			p.drawCell(row, col, CellColor(s.Classify(row, col), tileAt(g, row, col)))
		}
	}
	return p
}

func newPicture(g *grid.Grid) *Picture {
	width := g.Cols()*TileSize + 2*BorderSize
	height := g.Rows()*TileSize + 2*BorderSize
	dc := gg.NewContext(width, height)
	dc.SetColor(borderColor)
	dc.Clear()
	return &Picture{dc: dc}
}

func (p *Picture) drawCell(row, col int, c color.Color) {
	x := float64(BorderSize + col*TileSize)
	y := float64(BorderSize + row*TileSize)
	p.dc.SetColor(c)
	p.dc.DrawRectangle(x, y, TileSize, TileSize)
	p.dc.Fill()
}

func (p *Picture) Image() image.Image { return p.dc.Image() }
func (p *Picture) Width() int         { return p.dc.Width() }
func (p *Picture) Height() int        { return p.dc.Height() }

func (p *Picture) EncodePNG(w io.Writer) error { return p.dc.EncodePNG(w) }
func (p *Picture) EncodeBMP(w io.Writer) error { return bmp.Encode(w, p.dc.Image()) }

// Save writes a PNG for a ".png" filename and a BMP otherwise.
func (p *Picture) Save(filename string) error {
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return p.dc.SavePNG(filename)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := p.EncodeBMP(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
