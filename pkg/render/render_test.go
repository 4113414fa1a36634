package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/path"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func resolvedLine(t *testing.T) *path.AStar {
	g, err := grid.NewGrid(1, 5)
	require.NoError(t, err)
	a, err := path.NewAStar(g, geo.MakePoint(0, 0), geo.MakePoint(0, 4))
	require.NoError(t, err)
	require.Equal(t, path.Succeeded, a.Resolve())
	return a
}

func TestPrintTiles(t *testing.T) {
	g, err := grid.NewGridFromString("1 2\n.#\n")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, PrintTiles(&out, g))
	expected := "\n" +
		"############\n" +
		"###   [#]###\n" +
		"############\n"
	assert.Equal(t, expected, out.String())
}

func TestPrintSearch(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintSearch(&out, resolvedLine(t)))

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "###[S][+][+][+][E]###", lines[2])
	assert.Equal(t, "iteration: 4 SUCCEEDED", lines[4])
}

func TestDrawSearch(t *testing.T) {
	picture := DrawSearch(resolvedLine(t))
	assert.Equal(t, 5*TileSize+2*BorderSize, picture.Width())
	assert.Equal(t, TileSize+2*BorderSize, picture.Height())

	img := picture.Image()
	center := func(col int) (int, int) {
		return BorderSize + col*TileSize + 1, BorderSize + 1
	}
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.At(0, 0))
	x, y := center(0)
	assert.Equal(t, color.RGBA{255, 127, 127, 255}, img.At(x, y))
	x, y = center(2)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.At(x, y))
	x, y = center(4)
	assert.Equal(t, color.RGBA{127, 0, 0, 255}, img.At(x, y))
}

func TestDrawTiles(t *testing.T) {
	g, err := grid.NewGridFromString("2 2\n.#\n#.\n")
	require.NoError(t, err)
	img := DrawTiles(g).Image()

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.At(BorderSize+1, BorderSize+1))
	assert.Equal(t, color.RGBA{127, 127, 127, 255}, img.At(BorderSize+TileSize+1, BorderSize+1))
}

func TestCellColor(t *testing.T) {
	assert.Equal(t, TileColor(grid.Blocked), CellColor(path.Plain, grid.Blocked))
	assert.Equal(t, color.RGBA{255, 192, 0, 255}, CellColor(path.Visited, grid.Passable))
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, CellColor(path.Frontier, grid.Passable))
}

func TestPictureSave(t *testing.T) {
	picture := DrawSearch(resolvedLine(t))
	dir := t.TempDir()

	bmpFile := filepath.Join(dir, "result.bmp")
	require.NoError(t, picture.Save(bmpFile))
	file, err := os.Open(bmpFile)
	require.NoError(t, err)
	defer file.Close()
	decoded, err := bmp.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, picture.Image().Bounds(), decoded.Bounds())

	pngFile := filepath.Join(dir, "result.png")
	require.NoError(t, picture.Save(pngFile))
	info, err := os.Stat(pngFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSearchFeatures(t *testing.T) {
	fc := SearchFeatures(resolvedLine(t))
	require.Len(t, fc.Features, 3)

	pathFeature := fc.Features[2]
	assert.Equal(t, "path", pathFeature.Properties["role"])
	line, ok := pathFeature.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, line)
	assert.Equal(t, 4, pathFeature.Properties["iterations"])

	filename := filepath.Join(t.TempDir(), "result.geojson")
	require.NoError(t, WriteGeoJSON(fc, filename))
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	read, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, read.Features, 3)
}

func TestSearchFeaturesWithoutPath(t *testing.T) {
	g, err := grid.NewGridFromString("1 3\n.#.\n")
	require.NoError(t, err)
	a, err := path.NewAStar(g, geo.MakePoint(0, 0), geo.MakePoint(0, 2))
	require.NoError(t, err)
	require.Equal(t, path.Failed, a.Resolve())

	fc := SearchFeatures(a)
	assert.Len(t, fc.Features, 2)
}
