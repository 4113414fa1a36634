package pbf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/qedus/osmpbf"
)

// Obstacle is a way that blocks movement, with its nodes resolved to lon/lat points.
type Obstacle struct {
	ID     int64
	Kind   string // tag key that marked the way, e.g. "building" or "natural"
	Points orb.LineString
}

type obstacleWay struct {
	id      int64
	kind    string
	nodeIDs []int64
}

// ObstacleImporter reads an OSM extract, either .osm.pbf or .osm XML, and
// keeps the ways tagged as obstacles.
type ObstacleImporter struct {
	filename  string
	obstacles []Obstacle
	nodes     map[int64]orb.Point
	ways      []obstacleWay
}

func NewObstacleImporter(filename string) *ObstacleImporter {
	return &ObstacleImporter{
		filename:  filename,
		obstacles: make([]Obstacle, 0),
		nodes:     make(map[int64]orb.Point),
		ways:      make([]obstacleWay, 0),
	}
}

// Import reads the file given to NewObstacleImporter, choosing the decoder by extension.
func (oi *ObstacleImporter) Import(ctx context.Context) error {
	file, err := os.Open(oi.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(oi.filename), ".pbf") {
		return oi.ImportPBF(file)
	}
	return oi.ImportXML(ctx, file)
}

func (oi *ObstacleImporter) ImportPBF(r io.Reader) error {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("decode pbf: %w", err)
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			oi.nodes[v.ID] = orb.Point{v.Lon, v.Lat}
		case *osmpbf.Way:
			if kind, ok := ObstacleKind(v.Tags); ok {
				oi.ways = append(oi.ways, obstacleWay{id: v.ID, kind: kind, nodeIDs: v.NodeIDs})
			}
		}
	}
	oi.resolveWays()
	return nil
}

func (oi *ObstacleImporter) ImportXML(ctx context.Context, r io.Reader) error {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		switch v := scanner.Object().(type) {
		case *osm.Node:
			oi.nodes[int64(v.ID)] = orb.Point{v.Lon, v.Lat}
		case *osm.Way:
			if kind, ok := ObstacleKind(v.Tags.Map()); ok {
				nodeIDs := make([]int64, 0, len(v.Nodes))
				for _, node := range v.Nodes {
					nodeIDs = append(nodeIDs, int64(node.ID))
				}
				oi.ways = append(oi.ways, obstacleWay{id: int64(v.ID), kind: kind, nodeIDs: nodeIDs})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("decode xml: %w", err)
	}
	oi.resolveWays()
	return nil
}

// resolveWays turns the collected ways into obstacles. Ways may precede their
// nodes in a file, so this runs after the whole input was read.
func (oi *ObstacleImporter) resolveWays() {
	for _, way := range oi.ways {
		obstacle := Obstacle{ID: way.id, Kind: way.kind, Points: make(orb.LineString, 0, len(way.nodeIDs))}
		for _, nodeID := range way.nodeIDs {
			if point, ok := oi.nodes[nodeID]; ok {
				obstacle.Points = append(obstacle.Points, point)
			}
		}
		if len(obstacle.Points) > 0 {
			oi.obstacles = append(oi.obstacles, obstacle)
		}
	}
	oi.ways = oi.ways[:0]
}

func (oi *ObstacleImporter) Obstacles() []Obstacle {
	return oi.obstacles
}

// Bounds spans every node of the input, not only the obstacle nodes.
func (oi *ObstacleImporter) Bounds() orb.Bound {
	points := make(orb.MultiPoint, 0, len(oi.nodes))
	for _, p := range oi.nodes {
		points = append(points, p)
	}
	return points.Bound()
}

// ObstacleKind reports whether the tags mark an obstacle and which tag key did.
func ObstacleKind(tags map[string]string) (string, bool) {
	if _, ok := tags["building"]; ok {
		return "building", true
	}
	if _, ok := tags["barrier"]; ok {
		return "barrier", true
	}
	if _, ok := tags["waterway"]; ok {
		return "waterway", true
	}
	switch tags["natural"] {
	case "water", "coastline", "cliff", "wood":
		return "natural", true
	}
	if tags["landuse"] == "reservoir" {
		return "landuse", true
	}
	return "", false
}
