package render

import (
	"os"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// cellPoint maps a cell to planar coordinates, x = column and y = row.
func cellPoint(p geo.Point) orb.Point {
	return orb.Point{float64(p.Col), float64(p.Row)}
}

// SearchFeatures exports start, goal and, if one was found, the path of r.
// The path feature carries the search statistics.
func SearchFeatures(r Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	start := geojson.NewFeature(cellPoint(r.Start()))
	start.Properties["role"] = "start"
	fc.Append(start)

	goal := geojson.NewFeature(cellPoint(r.Goal()))
	goal.Properties["role"] = "goal"
	fc.Append(goal)

	line := make(orb.LineString, 0, r.PathLength())
	for _, p := range r.Path() {
		line = append(line, cellPoint(p))
	}
	if len(line) == 1 {
		// a LineString needs two positions
		line = append(line, line[0])
	}
	if len(line) > 0 {
		path := geojson.NewFeature(line)
		path.Properties["role"] = "path"
		path.Properties["state"] = r.State().String()
		path.Properties["iterations"] = r.Iterations()
		path.Properties["length"] = r.PathLength()
		path.Properties["cost"] = r.PathCost()
		fc.Append(path)
	}
	return fc
}

func WriteGeoJSON(fc *geojson.FeatureCollection, filename string) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
