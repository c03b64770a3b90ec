// Package chart lays out categorized amounts on a ring (donut) chart.
//
// ComputeArcs is pure: it keeps no state between calls and its output
// depends only on its arguments.
package chart

import (
	"errors"
	"fmt"
	"math"

	"chitieu/internal/core"
)

// ErrInvalidGeometry reports a size/stroke pair that leaves no positive radius.
var ErrInvalidGeometry = errors.New("invalid chart geometry")

type (
	// Segment is a category annotated with its share of the total.
	Segment struct {
		core.Category
		Pct float64 // in [0, 1] for non-negative amounts
	}

	// Arc is a segment placed on the ring.
	Arc struct {
		Segment
		Length float64 // portion of the circumference
		Offset float64 // cumulative length of all previous arcs
	}

	// Geometry describes the ring the arcs are drawn on.
	Geometry struct {
		Size        float64 // outer diameter
		StrokeWidth float64 // ring thickness
	}
)

// Validate fails with ErrInvalidGeometry unless the ring has a positive radius.
func (g Geometry) Validate() error {
	if !finitePositive(g.Size) || !finitePositive(g.StrokeWidth) {
		return fmt.Errorf("size=%v stroke=%v: %w", g.Size, g.StrokeWidth, ErrInvalidGeometry)
	}
	if g.Radius() <= 0 {
		return fmt.Errorf("stroke %v must be smaller than size %v: %w", g.StrokeWidth, g.Size, ErrInvalidGeometry)
	}
	return nil
}

// Radius is measured to the middle of the stroke.
func (g Geometry) Radius() float64 {
	return (g.Size - g.StrokeWidth) / 2
}

func (g Geometry) Circumference() float64 {
	return 2 * math.Pi * g.Radius()
}

// ComputeSegments returns each category's share of the summed amounts, in
// input order. An all-zero (or empty) input yields zero shares.
func ComputeSegments(categories []core.Category) []Segment {
	// float64 so that amounts near math.MaxInt64 cannot wrap the total.
	var total float64
	for _, c := range categories {
		total += float64(c.Amount.Minor)
	}
	if total == 0 {
		total = 1
	}

	segments := make([]Segment, len(categories))
	for i, c := range categories {
		segments[i] = Segment{Category: c, Pct: float64(c.Amount.Minor) / total}
	}
	return segments
}

// ComputeArcs places the categories contiguously around the ring in input
// order. Arc lengths add up to the circumference whenever some amount is
// non-zero.
func ComputeArcs(categories []core.Category, size, strokeWidth float64) ([]Arc, error) {
	return Geometry{Size: size, StrokeWidth: strokeWidth}.Arcs(categories)
}

// Arcs is ComputeArcs for a fixed geometry.
func (g Geometry) Arcs(categories []core.Category) ([]Arc, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	circumference := g.Circumference()

	segments := ComputeSegments(categories)
	arcs := make([]Arc, len(segments))
	var cursor float64
	for i, s := range segments {
		length := s.Pct * circumference
		arcs[i] = Arc{Segment: s, Length: length, Offset: cursor}
		cursor += length
	}
	return arcs, nil
}

// Percent rounds the share to a whole percentage for list rows.
func (s Segment) Percent() int {
	return int(math.Round(s.Pct * 100))
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
