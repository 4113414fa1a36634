package pbf

import (
	"os"

	"github.com/paulmach/orb/geojson"
)

// ExportObstacles writes the imported obstacles as GeoJSON line strings in lon/lat.
func ExportObstacles(importer *ObstacleImporter, filename string) error {
	fc := geojson.NewFeatureCollection()
	for _, obstacle := range importer.Obstacles() {
		feature := geojson.NewFeature(obstacle.Points)
		feature.ID = obstacle.ID
		feature.Properties["kind"] = obstacle.Kind
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
