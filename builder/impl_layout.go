// SPDX-License-Identifier: MIT
// Package: pairviz/builder
//
// impl_layout.go: deterministic layouts: Spread, Grid, GridN, Circle, Line, Fixed.
//
// None of these consult cfg.rng.

package builder

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/jbeda/geom"
)

// Spread returns a Constructor adding n points whose x coordinates are
// evenly spaced across the bounds and whose y coordinates are scattered by
// a hash of the point index.
func Spread(n int) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if n < MinPoints {
			return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", MethodSpread, n, MinPoints, ErrTooFewPoints)
		}

		b := cfg.bounds
		for i := 0; i < n; i++ {
			x := b.Min.X + (float64(i)+0.5)/float64(n)*b.Width()
			y := b.Min.Y + hashUnit(i)*b.Height()
			ps.Add(cfg.coord(x, y))
		}

		return nil
	}
}

// hashUnit maps i to [0,1) through FNV-1a.
func hashUnit(i int) float64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	_, _ = h.Write(buf[:])
	return float64(h.Sum64()>>11) / (1 << 53)
}

// Grid returns a Constructor adding a rows×cols lattice in row-major order.
// Cells are centered inside the bounds.
func Grid(rows, cols int) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if rows < MinGridDim || cols < MinGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				MethodGrid, rows, cols, MinGridDim, ErrTooFewPoints)
		}

		addLattice(ps, cfg, rows, cols, rows*cols)

		return nil
	}
}

// GridN returns a Constructor adding exactly n lattice points: the smallest
// near-square lattice holding n cells, filled row-major and cut off after n.
func GridN(n int) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if n < MinPoints {
			return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", MethodGridN, n, MinPoints, ErrTooFewPoints)
		}

		cols := int(math.Ceil(math.Sqrt(float64(n))))
		rows := (n + cols - 1) / cols
		addLattice(ps, cfg, rows, cols, n)

		return nil
	}
}

// addLattice adds the first limit cells of a rows×cols lattice, row-major.
func addLattice(ps *PointSet, cfg Config, rows, cols, limit int) {
	b := cfg.bounds
	dx, dy := b.Width()/float64(cols), b.Height()/float64(rows)
	for i := 0; i < limit; i++ {
		r, c := i/cols, i%cols
		x := b.Min.X + (float64(c)+0.5)*dx
		y := b.Min.Y + (float64(r)+0.5)*dy
		ps.Add(cfg.coord(x, y))
	}
}

// Circle returns a Constructor adding n points evenly spaced on the largest
// circle inscribed in the bounds, starting at angle 0.
func Circle(n int) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if n < MinPoints {
			return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", MethodCircle, n, MinPoints, ErrTooFewPoints)
		}

		b := cfg.bounds
		center := geom.Coord{X: b.Min.X + b.Width()/2, Y: b.Min.Y + b.Height()/2}
		radius := math.Min(b.Width(), b.Height()) / 2
		for i := 0; i < n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(n)
			ps.Add(cfg.coord(center.X+radius*math.Cos(theta), center.Y+radius*math.Sin(theta)))
		}

		return nil
	}
}

// Line returns a Constructor adding n evenly spaced points on the horizontal
// mid-line of the bounds.
func Line(n int) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if n < MinPoints {
			return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", MethodLine, n, MinPoints, ErrTooFewPoints)
		}

		b := cfg.bounds
		y := b.Min.Y + b.Height()/2
		for i := 0; i < n; i++ {
			x := b.Min.X + (float64(i)+0.5)/float64(n)*b.Width()
			ps.Add(cfg.coord(x, y))
		}

		return nil
	}
}

// Fixed returns a Constructor adding exactly coords, in order.
// Coordinates are not checked against the bounds.
func Fixed(coords ...geom.Coord) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if len(coords) < MinPoints {
			return fmt.Errorf("%s: no coordinates: %w", MethodFixed, ErrTooFewPoints)
		}
		for _, c := range coords {
			ps.Add(cfg.coord(c.X, c.Y))
		}

		return nil
	}
}
