// SPDX-License-Identifier: MIT
// Package builder_test contains functional tests for every point-set
// constructor: counts, ID sequencing, bounds, determinism and errors.
package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jbeda/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairviz/builder"
	"github.com/katalvlaran/pairviz/closestpair"
	"github.com/katalvlaran/pairviz/geometry"
)

const eps = 1e-9

func inside(t *testing.T, b geom.Rect, pts []geometry.Point) {
	t.Helper()
	for _, p := range pts {
		assert.True(t, p.X >= b.Min.X-eps && p.X <= b.Max.X+eps, "x of %s outside %v", p, b)
		assert.True(t, p.Y >= b.Min.Y-eps && p.Y <= b.Max.Y+eps, "y of %s outside %v", p, b)
	}
}

func TestBuilders_Functional(t *testing.T) {
	t.Parallel()

	seeded := []builder.BuilderOption{builder.WithSeed(7)}
	tests := []struct {
		name  string
		opts  []builder.BuilderOption
		ctor  builder.Constructor
		wantN int
		check func(t *testing.T, pts []geometry.Point)
	}{
		{name: "Uniform(20)", opts: seeded, ctor: builder.Uniform(20), wantN: 20},
		{name: "Cluster(3,4,10)", opts: seeded, ctor: builder.Cluster(3, 4, 10), wantN: 12},
		{name: "ClusterN(10,3,10)", opts: seeded, ctor: builder.ClusterN(10, 3, 10), wantN: 10},
		{
			name: "GridN(10)", ctor: builder.GridN(10), wantN: 10,
			check: func(t *testing.T, pts []geometry.Point) {
				// 4 columns × 3 rows, last row holds two points
				assert.Equal(t, geometry.Point{X: 75, Y: 200.0 / 3, ID: 1}, pts[0])
				assert.InDelta(t, 225.0, pts[9].X, eps)
				assert.InDelta(t, 1000.0/3, pts[9].Y, eps)
			},
		},
		{
			name: "Spread(10)", ctor: builder.Spread(10), wantN: 10,
			check: func(t *testing.T, pts []geometry.Point) {
				for i := 1; i < len(pts); i++ {
					assert.InDelta(t, 60.0, pts[i].X-pts[i-1].X, eps)
				}
			},
		},
		{
			name: "Grid(2,3)", ctor: builder.Grid(2, 3), wantN: 6,
			check: func(t *testing.T, pts []geometry.Point) {
				assert.Equal(t, geometry.Point{X: 100, Y: 100, ID: 1}, pts[0])
				assert.Equal(t, geometry.Point{X: 500, Y: 300, ID: 6}, pts[5])
			},
		},
		{
			name: "Circle(8)", ctor: builder.Circle(8), wantN: 8,
			check: func(t *testing.T, pts []geometry.Point) {
				for _, p := range pts {
					assert.InDelta(t, 200.0, math.Hypot(p.X-300, p.Y-200), 1e-6)
				}
			},
		},
		{
			name: "Line(5)", ctor: builder.Line(5), wantN: 5,
			check: func(t *testing.T, pts []geometry.Point) {
				for _, p := range pts {
					assert.Equal(t, 200.0, p.Y)
				}
			},
		},
		{
			name: "Fixed", ctor: builder.Fixed(geom.Coord{X: 1, Y: 2}, geom.Coord{X: 3, Y: 4}), wantN: 2,
			check: func(t *testing.T, pts []geometry.Point) {
				assert.Equal(t, []geometry.Point{{X: 1, Y: 2, ID: 1}, {X: 3, Y: 4, ID: 2}}, pts)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pts, err := builder.BuildPoints(tc.opts, tc.ctor)
			require.NoError(t, err)
			require.Len(t, pts, tc.wantN)
			for i, p := range pts {
				assert.Equal(t, builder.FirstPointID+i, p.ID)
			}
			inside(t, builder.DefaultBounds(), pts)
			if tc.check != nil {
				tc.check(t, pts)
			}
		})
	}
}

func TestBuildPoints_ComposesWithSequentialIDs(t *testing.T) {
	pts, err := builder.BuildPoints(
		[]builder.BuilderOption{builder.WithSeed(1), builder.WithFirstID(10)},
		builder.Uniform(3),
		builder.Line(2),
		builder.Fixed(geom.Coord{X: 5, Y: 5}),
	)
	require.NoError(t, err)
	require.Len(t, pts, 6)
	for i, p := range pts {
		assert.Equal(t, 10+i, p.ID)
	}
}

func TestBuildPoints_Deterministic(t *testing.T) {
	build := func() []geometry.Point {
		pts, err := builder.BuildPoints(
			[]builder.BuilderOption{builder.WithSeed(99)},
			builder.Uniform(15), builder.Cluster(2, 3, 5),
		)
		require.NoError(t, err)
		return pts
	}
	assert.Equal(t, build(), build())

	other, err := builder.BuildPoints([]builder.BuilderOption{builder.WithSeed(100)}, builder.Uniform(15))
	require.NoError(t, err)
	assert.NotEqual(t, build()[:15], other)

	// a shared RNG advances across calls
	r := rand.New(rand.NewSource(5))
	a, err := builder.BuildPoints([]builder.BuilderOption{builder.WithRand(r)}, builder.Uniform(3))
	require.NoError(t, err)
	b, err := builder.BuildPoints([]builder.BuilderOption{builder.WithRand(r)}, builder.Uniform(3))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBuildPoints_Bounds(t *testing.T) {
	b := geom.Rect{Min: geom.Coord{X: -10, Y: 100}, Max: geom.Coord{X: 10, Y: 120}}
	pts, err := builder.RandomPoints(50, 3, b)
	require.NoError(t, err)
	inside(t, b, pts)

	pts, err = builder.BuildPoints(
		[]builder.BuilderOption{builder.WithSeed(3), builder.WithBounds(b)},
		builder.Cluster(4, 10, 50),
	)
	require.NoError(t, err)
	inside(t, b, pts)
}

func TestBuildPoints_IntegerCoords(t *testing.T) {
	pts, err := builder.BuildPoints(
		[]builder.BuilderOption{builder.WithSeed(11), builder.WithIntegerCoords(),
			builder.WithBounds(geom.Rect{Max: geom.Coord{X: 4, Y: 4}})},
		builder.Uniform(30),
	)
	require.NoError(t, err)
	for _, p := range pts {
		assert.Equal(t, math.Round(p.X), p.X)
		assert.Equal(t, math.Round(p.Y), p.Y)
	}

	// 30 points on a 5×5 lattice must collide; the solver reports 0
	res, _, err := closestpair.Instant(pts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Distance)
}

func TestBuildPoints_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []builder.BuilderOption
		ctor builder.Constructor
		want error
	}{
		{"Uniform(0)", []builder.BuilderOption{builder.WithSeed(1)}, builder.Uniform(0), builder.ErrTooFewPoints},
		{"Uniform no rng", nil, builder.Uniform(5), builder.ErrNeedRandSource},
		{"Cluster no rng", nil, builder.Cluster(1, 1, 1), builder.ErrNeedRandSource},
		{"Cluster(0,..)", nil, builder.Cluster(0, 1, 1), builder.ErrTooFewPoints},
		{"Cluster radius", nil, builder.Cluster(1, 1, 0), builder.ErrInvalidRadius},
		{"Grid(0,3)", nil, builder.Grid(0, 3), builder.ErrTooFewPoints},
		{"GridN(0)", nil, builder.GridN(0), builder.ErrTooFewPoints},
		{"ClusterN(2,3,..)", []builder.BuilderOption{builder.WithSeed(1)}, builder.ClusterN(2, 3, 1), builder.ErrTooFewPoints},
		{"ClusterN radius", []builder.BuilderOption{builder.WithSeed(1)}, builder.ClusterN(3, 3, -1), builder.ErrInvalidRadius},
		{"ClusterN no rng", nil, builder.ClusterN(3, 3, 1), builder.ErrNeedRandSource},
		{"Circle(0)", nil, builder.Circle(0), builder.ErrTooFewPoints},
		{"Line(-1)", nil, builder.Line(-1), builder.ErrTooFewPoints},
		{"Spread(0)", nil, builder.Spread(0), builder.ErrTooFewPoints},
		{"Fixed()", nil, builder.Fixed(), builder.ErrTooFewPoints},
		{"nil constructor", nil, nil, builder.ErrConstructFailed},
		{"flat bounds", []builder.BuilderOption{builder.WithBounds(geom.Rect{Max: geom.Coord{X: 5}})}, builder.Line(2), builder.ErrInvalidBounds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pts, err := builder.BuildPoints(tc.opts, tc.ctor)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, pts)
		})
	}
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithFirstID(-1) })
	assert.NotPanics(t, func() { builder.WithFirstID(0) })
}

func TestPointSet(t *testing.T) {
	pts, err := builder.BuildPoints(nil, func(ps *builder.PointSet, _ builder.Config) error {
		ps.Add(1, 1)
		ps.Add(2, 2)
		cp := ps.Points()
		cp[0].X = 99
		assert.Equal(t, 2, ps.Len())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, pts[0].X)
}
