package main

import (
	"fmt"
	"image/color"

	"github.com/clustercore/cmeans/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	objectColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	pathColor   = color.RGBA{R: 30, G: 120, B: 220, A: 255}
	centerColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

func toXYs(points []model.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return xys
}

// writePlot renders the objects, the per-cluster center path (if any) and
// the final centers. The file extension selects the image format.
func writePlot(file, title string, objects model.ObjectSet, path model.Path, centers []model.Point) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true

	scatter, err := plotter.NewScatter(toXYs(objects))
	if err != nil {
		return fmt.Errorf("plot objects: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = objectColor
	p.Add(scatter)
	p.Legend.Add("objects", scatter)

	if snaps := path.Snapshots(len(centers)); len(snaps) > 1 {
		for k := range centers {
			trail := make([]model.Point, len(snaps))
			for i, snap := range snaps {
				trail[i] = snap[k]
			}
			line, err := plotter.NewLine(toXYs(trail))
			if err != nil {
				return fmt.Errorf("plot path of cluster %d: %w", k, err)
			}
			line.LineStyle.Color = pathColor
			line.LineStyle.Width = vg.Points(1)
			p.Add(line)
			if k == 0 {
				p.Legend.Add("path", line)
			}
		}
	}

	cs, err := plotter.NewScatter(toXYs(centers))
	if err != nil {
		return fmt.Errorf("plot centers: %w", err)
	}
	cs.GlyphStyle.Radius = vg.Points(5)
	cs.GlyphStyle.Shape = draw.CrossGlyph{}
	cs.GlyphStyle.Color = centerColor
	p.Add(cs)
	p.Legend.Add("centers", cs)

	return p.Save(6*vg.Inch, 6*vg.Inch, file)
}
