package workspace

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"rrt-planner/internal/geometry"
)

// KindProperty and ObstacleKind let exported scenes be read back: features
// tagged with any other kind (edges, start, goal) are skipped.
const (
	KindProperty = "kind"
	ObstacleKind = "obstacle"
)

// LoadObstaclesFile reads obstacle anchors from a GeoJSON file.
func LoadObstaclesFile(path string) ([]geometry.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	anchors, err := ParseObstacles(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return anchors, nil
}

// ParseObstacles converts a GeoJSON FeatureCollection to obstacle anchors.
// Point features are anchors as-is; Polygon and MultiPolygon features are
// anchored at the minimum corner of their bounding box. Other geometries,
// and features tagged with a non-obstacle kind, are ignored.
func ParseObstacles(data []byte) ([]geometry.Point, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal feature collection")
	}

	var anchors []geometry.Point
	for _, feature := range fc.Features {
		if kind, ok := feature.Properties[KindProperty].(string); ok && kind != ObstacleKind {
			continue
		}
		switch g := feature.Geometry.(type) {
		case orb.Point:
			anchors = append(anchors, toPoint(g))
		case orb.Polygon:
			anchors = append(anchors, toPoint(g.Bound().Min))
		case orb.MultiPolygon:
			for _, poly := range g {
				anchors = append(anchors, toPoint(poly.Bound().Min))
			}
		}
	}
	return anchors, nil
}

func toPoint(p orb.Point) geometry.Point {
	return geometry.Point{X: int(p.X()), Y: int(p.Y())}
}
