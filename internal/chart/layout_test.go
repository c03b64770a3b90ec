package chart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chitieu/internal/core"
)

const tolerance = 1e-9

func categories(amounts ...int64) []core.Category {
	ids := []string{"khac", "4g", "an-uong", "di-chuyen", "giai-tri", "qua", "nha", "hoc"}
	out := make([]core.Category, len(amounts))
	for i, a := range amounts {
		out[i] = core.Category{ID: ids[i%len(ids)], Name: ids[i%len(ids)], Amount: core.Money{Minor: a}, Color: "#000"}
	}
	return out
}

func TestComputeArcsMockScreen(t *testing.T) {
	arcs, err := ComputeArcs(categories(157000, 10000, 0, 0, 0), 260, 26)
	require.NoError(t, err)
	require.Len(t, arcs, 5)

	circumference := 2 * math.Pi * 117
	assert.InDelta(t, 735.13, circumference, 0.01)

	assert.InDelta(t, 0.9401, arcs[0].Pct, 1e-4)
	assert.InDelta(t, 691.0, arcs[0].Length, 0.5)
	assert.Equal(t, 0.0, arcs[0].Offset)

	assert.InDelta(t, 0.0599, arcs[1].Pct, 1e-4)
	assert.InDelta(t, 10000.0/167000.0*circumference, arcs[1].Length, tolerance)
	assert.InDelta(t, arcs[0].Length, arcs[1].Offset, tolerance)

	for _, a := range arcs[2:] {
		assert.Zero(t, a.Pct)
		assert.Zero(t, a.Length)
		assert.InDelta(t, circumference, a.Offset, 1e-6)
	}
}

func TestComputeArcsAllZero(t *testing.T) {
	arcs, err := ComputeArcs(categories(0, 0, 0), 200, 20)
	require.NoError(t, err)
	require.Len(t, arcs, 3)
	for _, a := range arcs {
		assert.Zero(t, a.Pct)
		assert.Zero(t, a.Length)
		assert.Zero(t, a.Offset)
		assert.False(t, math.IsNaN(a.Pct))
	}
}

func TestComputeArcsEmpty(t *testing.T) {
	arcs, err := ComputeArcs(nil, 200, 20)
	require.NoError(t, err)
	assert.Empty(t, arcs)
}

func TestComputeArcsCoverCircumference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		n := 1 + rng.Intn(8)
		amounts := make([]int64, n)
		var total int64
		for i := range amounts {
			amounts[i] = rng.Int63n(5_000_000)
			total += amounts[i]
		}
		if total == 0 {
			amounts[0] = 1
		}

		g := Geometry{Size: 100 + float64(rng.Intn(300)), StrokeWidth: 1 + float64(rng.Intn(90))}
		arcs, err := g.Arcs(categories(amounts...))
		require.NoError(t, err)

		var sum float64
		for i, a := range arcs {
			assert.InDelta(t, sum, a.Offset, 1e-6, "arc %d starts where the previous one ends", i)
			sum += a.Length
		}
		assert.InDelta(t, g.Circumference(), sum, 1e-6)
	}
}

func TestComputeArcsPreservesOrder(t *testing.T) {
	base := categories(5, 0, 30, 12, 7)
	perms := [][]int{{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {2, 0, 4, 1, 3}, {1, 4, 0, 3, 2}}
	for _, perm := range perms {
		in := make([]core.Category, len(perm))
		for i, p := range perm {
			in[i] = base[p]
		}
		arcs, err := ComputeArcs(in, 240, 24)
		require.NoError(t, err)
		for i := range in {
			assert.Equal(t, in[i].ID, arcs[i].ID)
			assert.Equal(t, in[i].Amount, arcs[i].Amount)
		}
	}
}

func TestComputeArcsIdempotent(t *testing.T) {
	in := categories(157000, 10000, 0, 42, 9)
	first, err := ComputeArcs(in, 260, 26)
	require.NoError(t, err)
	second, err := ComputeArcs(in, 260, 26)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, categories(157000, 10000, 0, 42, 9), in, "input must not be mutated")
}

func TestComputeArcsGeometryBoundary(t *testing.T) {
	_, err := ComputeArcs(categories(1, 2), 100, 100)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	arcs, err := ComputeArcs(categories(1, 2), 100, 99)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi*0.5, arcs[0].Length+arcs[1].Length, tolerance)

	for _, g := range []Geometry{
		{Size: 10, StrokeWidth: 20},
		{Size: 0, StrokeWidth: 0},
		{Size: -10, StrokeWidth: 2},
		{Size: 100, StrokeWidth: 0},
		{Size: math.NaN(), StrokeWidth: 2},
		{Size: math.Inf(1), StrokeWidth: 2},
	} {
		_, err := g.Arcs(categories(1))
		assert.ErrorIs(t, err, ErrInvalidGeometry, "geometry %+v", g)
	}
}

func TestComputeArcsNegativeAmountDoesNotPanic(t *testing.T) {
	arcs, err := ComputeArcs(categories(100, -20), 200, 20)
	require.NoError(t, err)
	assert.Less(t, arcs[1].Length, 0.0)
}

func TestSegmentPercent(t *testing.T) {
	segs := ComputeSegments(categories(157000, 10000, 0))
	assert.Equal(t, 94, segs[0].Percent())
	assert.Equal(t, 6, segs[1].Percent())
	assert.Equal(t, 0, segs[2].Percent())
}

func TestComputeArcsHugeAmounts(t *testing.T) {
	arcs, err := ComputeArcs(categories(1<<62, 1<<62), 260, 26)
	require.NoError(t, err)

	circumference := Geometry{Size: 260, StrokeWidth: 26}.Circumference()
	for _, a := range arcs {
		assert.InDelta(t, 0.5, a.Pct, tolerance)
		assert.InDelta(t, circumference/2, a.Length, 1e-6)
	}
	assert.InDelta(t, circumference/2, arcs[1].Offset, 1e-6)
	assert.InDelta(t, circumference, arcs[0].Length+arcs[1].Length, 1e-6)

	segs := ComputeSegments(categories(math.MaxInt64, math.MaxInt64, 0))
	assert.InDelta(t, 0.5, segs[0].Pct, tolerance)
	assert.InDelta(t, 0.5, segs[1].Pct, tolerance)
	assert.Zero(t, segs[2].Pct)
}
