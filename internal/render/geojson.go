package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"rrt-planner/internal/geometry"
	"rrt-planner/internal/rrt"
	"rrt-planner/internal/workspace"
)

// Feature kinds written to the workspace.KindProperty property.
const (
	KindObstacle = workspace.ObstacleKind
	KindEdge     = "edge"
	KindPath     = "path"
	KindStart    = "start"
	KindGoal     = "goal"
)

// FeatureCollection converts res into GeoJSON in workspace coordinates.
// Obstacles become polygons, tree edges and the path become line strings,
// and start and goal become points.
func FeatureCollection(res *rrt.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, o := range res.Obstacles {
		far := o.Max()
		bound := orb.Bound{Min: toOrb(o.Min), Max: toOrb(far)}
		f := geojson.NewFeature(bound.ToPolygon())
		f.Properties[workspace.KindProperty] = KindObstacle
		fc.Append(f)
	}

	for _, e := range res.Edges {
		f := geojson.NewFeature(orb.LineString{toOrb(e.From), toOrb(e.To)})
		f.Properties[workspace.KindProperty] = KindEdge
		fc.Append(f)
	}

	if len(res.Path) > 1 {
		line := make(orb.LineString, 0, len(res.Path))
		for _, p := range res.Path {
			line = append(line, toOrb(p))
		}
		f := geojson.NewFeature(line)
		f.Properties[workspace.KindProperty] = KindPath
		f.Properties["length"] = res.PathLength
		fc.Append(f)
	}

	start := geojson.NewFeature(toOrb(res.Start))
	start.Properties[workspace.KindProperty] = KindStart
	fc.Append(start)

	goal := geojson.NewFeature(toOrb(res.Goal))
	goal.Properties[workspace.KindProperty] = KindGoal
	goal.Properties["connected"] = res.Success
	fc.Append(goal)

	return fc
}

// GeoJSON marshals the feature collection for res.
func GeoJSON(res *rrt.Result) ([]byte, error) {
	data, err := FeatureCollection(res).MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "render: marshal geojson")
	}
	return data, nil
}

func toOrb(p geometry.Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}
