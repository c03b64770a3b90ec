package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"

	"chitieu/internal/chart"
	"chitieu/internal/core"
)

type (
	arcRow struct {
		ID         string  `csv:"id" json:"id"`
		Name       string  `csv:"name" json:"name"`
		Icon       string  `csv:"icon" json:"icon"`
		Color      string  `csv:"color" json:"color"`
		Amount     int64   `csv:"amount" json:"amount"`
		Percent    int     `csv:"percent" json:"percent"`
		ArcLength  float64 `csv:"arc_length" json:"arcLength"`
		ArcOffset  float64 `csv:"arc_offset" json:"arcOffset"`
		DashArray  string  `csv:"dasharray" json:"dashArray"`
		DashOffset string  `csv:"dashoffset" json:"dashOffset"`
	}

	layout struct {
		Size          float64  `json:"size"`
		StrokeWidth   float64  `json:"strokeWidth"`
		Radius        float64  `json:"radius"`
		Circumference float64  `json:"circumference"`
		Total         int64    `json:"total"`
		Arcs          []arcRow `json:"arcs"`
	}
)

func newLayout(g chart.Geometry, cats []core.Category) (layout, error) {
	arcs, err := g.Arcs(cats)
	if err != nil {
		return layout{}, err
	}
	circumference := g.Circumference()
	l := layout{
		Size:          g.Size,
		StrokeWidth:   g.StrokeWidth,
		Radius:        g.Radius(),
		Circumference: round3(circumference),
		Arcs:          make([]arcRow, 0, len(arcs)),
	}
	for _, a := range arcs {
		l.Total += a.Amount.Minor
		l.Arcs = append(l.Arcs, arcRow{
			ID:         a.ID,
			Name:       a.Name,
			Icon:       a.DisplayIcon(),
			Color:      a.Color,
			Amount:     a.Amount.Minor,
			Percent:    a.Percent(),
			ArcLength:  round3(a.Length),
			ArcOffset:  round3(a.Offset),
			DashArray:  chart.DashArray(a, circumference),
			DashOffset: chart.DashOffset(a),
		})
	}
	return l, nil
}

// write prints l as CSV rows, or as one JSON document.
func (l layout) write(w io.Writer, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}
	if err := gocsv.Marshal(l.Arcs, w); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
