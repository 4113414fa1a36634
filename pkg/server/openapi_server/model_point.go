// SPDX-License-Identifier: MIT

package openapi_server

import geo "github.com/natevvv/grid-astar/pkg/geometry"

// Point is a cell position; both components are zero based.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func newPoint(p geo.Point) Point {
	return Point{Row: p.Row, Col: p.Col}
}

func (p Point) toGeometry() geo.Point {
	return geo.MakePoint(p.Row, p.Col)
}

func newPoints(points []geo.Point) []Point {
	waypoints := make([]Point, 0, len(points))
	for _, p := range points {
		waypoints = append(waypoints, newPoint(p))
	}
	return waypoints
}
