package chart

import (
	"strconv"

	"chitieu/internal/core"
)

// TrackColor is the ring drawn underneath the arcs.
const TrackColor = "#e9e9e9"

type (
	// Donut is the render model consumed by the SVG template.
	Donut struct {
		Size          float64
		StrokeWidth   float64
		Center        float64
		Radius        float64
		Circumference float64
		Track         string
		CenterLabel   string
		Arcs          []DonutArc
	}

	// DonutArc is one arc expressed as SVG stroke-dash attributes.
	DonutArc struct {
		ID         string
		Color      string
		DashArray  string
		DashOffset string
	}
)

// NewDonut lays out the categories and translates every arc into a dash
// pattern: a visible run of the arc's length followed by a gap for the rest of
// the circumference, shifted back by the arc's offset.
func NewDonut(g Geometry, categories []core.Category, centerLabel string) (Donut, error) {
	arcs, err := g.Arcs(categories)
	if err != nil {
		return Donut{}, err
	}
	circumference := g.Circumference()

	d := Donut{
		Size:          g.Size,
		StrokeWidth:   g.StrokeWidth,
		Center:        g.Size / 2,
		Radius:        g.Radius(),
		Circumference: circumference,
		Track:         TrackColor,
		CenterLabel:   centerLabel,
		Arcs:          make([]DonutArc, 0, len(arcs)),
	}
	for _, a := range arcs {
		d.Arcs = append(d.Arcs, DonutArc{
			ID:         a.ID,
			Color:      a.Color,
			DashArray:  DashArray(a, circumference),
			DashOffset: DashOffset(a),
		})
	}
	return d, nil
}

// DashArray returns "<length> <circumference-length>".
func DashArray(a Arc, circumference float64) string {
	return formatFloat(a.Length) + " " + formatFloat(circumference-a.Length)
}

// DashOffset returns the negated arc offset.
func DashOffset(a Arc) string {
	if a.Offset == 0 {
		return "0"
	}
	return formatFloat(-a.Offset)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
