// Package render turns completed run results into pictures and exchange
// formats. Renderers only read a Result; they never touch a live search.
package render

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"rrt-planner/internal/rrt"
)

// Margin is the blank border around the space, in pixels.
const Margin = 25

var (
	boundaryColor = color.Gray{Y: 128}
	obstacleColor = color.Black
	edgeColor     = color.Gray{Y: 192}
	pathColor     = color.RGBA{B: 255, A: 255}
	endpointColor = color.RGBA{R: 255, A: 255}
)

// Draw paints res onto a new context: boundary, obstacles, tree edges, the
// final path, and labelled start and goal markers.
func Draw(res *rrt.Result) *gg.Context {
	side := res.SpaceSize + 2*Margin
	dc := gg.NewContext(side, side)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Translate(Margin, Margin)

	dc.SetColor(boundaryColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0, 0, float64(res.SpaceSize), float64(res.SpaceSize))
	dc.Stroke()

	dc.SetColor(obstacleColor)
	for _, o := range res.Obstacles {
		dc.DrawRectangle(float64(o.Min.X), float64(o.Min.Y), float64(o.Size), float64(o.Size))
		dc.Fill()
	}

	dc.SetColor(edgeColor)
	for _, e := range res.Edges {
		dc.DrawLine(float64(e.From.X), float64(e.From.Y), float64(e.To.X), float64(e.To.Y))
		dc.Stroke()
	}

	dc.SetColor(pathColor)
	dc.SetLineWidth(2)
	for i := 0; i+1 < len(res.Path); i++ {
		a, b := res.Path[i], res.Path[i+1]
		dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
		dc.Stroke()
	}

	dc.SetColor(endpointColor)
	for _, mark := range []struct {
		label string
		x, y  float64
	}{
		{"S", float64(res.Start.X), float64(res.Start.Y)},
		{"G", float64(res.Goal.X), float64(res.Goal.Y)},
	} {
		dc.DrawCircle(mark.x, mark.y, 5)
		dc.Fill()
		dc.DrawString(mark.label, mark.x-12, mark.y)
	}
	return dc
}

// PNG encodes the drawing of res to w.
func PNG(w io.Writer, res *rrt.Result) error {
	if err := Draw(res).EncodePNG(w); err != nil {
		return errors.Wrap(err, "render: encode png")
	}
	return nil
}

// SavePNG writes the drawing of res to path.
func SavePNG(path string, res *rrt.Result) error {
	if err := Draw(res).SavePNG(path); err != nil {
		return errors.Wrapf(err, "render: save %s", path)
	}
	return nil
}
