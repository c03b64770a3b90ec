package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"chitieu/internal/chart"
	"chitieu/internal/core"
)

type (
	segmentJSON struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Color   string  `json:"color"`
		Icon    string  `json:"icon"`
		Amount  int64   `json:"amount"`
		Pct     float64 `json:"pct"`
		Percent int     `json:"percent"`
	}

	summaryJSON struct {
		Kind            core.Kind     `json:"kind"`
		Period          core.Period   `json:"period"`
		From            string        `json:"from"`
		To              string        `json:"to"`
		RangeLabel      string        `json:"rangeLabel"`
		TotalAll        int64         `json:"totalAll"`
		TotalThisPeriod int64         `json:"totalThisPeriod"`
		Segments        []segmentJSON `json:"segments"`
	}

	arcJSON struct {
		ID        string  `json:"id"`
		Color     string  `json:"color"`
		Pct       float64 `json:"pct"`
		ArcLength float64 `json:"arcLength"`
		ArcOffset float64 `json:"arcOffset"`
	}

	arcsJSON struct {
		Size          float64   `json:"size"`
		StrokeWidth   float64   `json:"strokeWidth"`
		Radius        float64   `json:"radius"`
		Circumference float64   `json:"circumference"`
		Arcs          []arcJSON `json:"arcs"`
	}
)

// handleAPISummary returns the summary for the query's selection.
func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	st, err := parseState(r.URL.Query(), s.today())
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	sum, err := s.deps.Summaries.Summary(ctx, st)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	resp := summaryJSON{
		Kind:            sum.Kind,
		Period:          sum.Period,
		From:            sum.Range.From.ISO(),
		To:              sum.Range.To.ISO(),
		RangeLabel:      sum.RangeLabel,
		TotalAll:        sum.TotalAll.Minor,
		TotalThisPeriod: sum.TotalThisPeriod.Minor,
		Segments:        make([]segmentJSON, 0, len(sum.Items)),
	}
	for _, seg := range chart.ComputeSegments(sum.Items) {
		resp.Segments = append(resp.Segments, segmentJSON{
			ID:      seg.ID,
			Name:    seg.Name,
			Color:   seg.Color,
			Icon:    seg.DisplayIcon(),
			Amount:  seg.Amount.Minor,
			Pct:     seg.Pct,
			Percent: seg.Percent(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAPIArcs lays out the selection's categories on a ring. size and
// stroke default to the configured geometry.
func (s *Server) handleAPIArcs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	q := r.URL.Query()
	g, err := parseGeometry(q.Get("size"), q.Get("stroke"), s.deps.Geometry)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	st, err := parseState(q, s.today())
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	sum, err := s.deps.Summaries.Summary(ctx, st)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	arcs, err := chart.ComputeArcs(sum.Items, g.Size, g.StrokeWidth)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	resp := arcsJSON{
		Size:          g.Size,
		StrokeWidth:   g.StrokeWidth,
		Radius:        g.Radius(),
		Circumference: g.Circumference(),
		Arcs:          make([]arcJSON, 0, len(arcs)),
	}
	for _, a := range arcs {
		resp.Arcs = append(resp.Arcs, arcJSON{
			ID:        a.ID,
			Color:     a.Color,
			Pct:       a.Pct,
			ArcLength: a.Length,
			ArcOffset: a.Offset,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseGeometry overrides def with the given values. Unparsable numbers are
// reported as invalid geometry.
func parseGeometry(size, stroke string, def chart.Geometry) (chart.Geometry, error) {
	g := def
	if v := strings.TrimSpace(size); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return g, fmt.Errorf("size %q: %w", v, chart.ErrInvalidGeometry)
		}
		g.Size = f
	}
	if v := strings.TrimSpace(stroke); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return g, fmt.Errorf("stroke %q: %w", v, chart.ErrInvalidGeometry)
		}
		g.StrokeWidth = f
	}
	return g, g.Validate()
}
