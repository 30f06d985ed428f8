// SPDX-License-Identifier: MIT
// Package: pairviz/builder
//
// impl_random.go: Uniform, Cluster and ClusterN constructors.
//
// Contract:
//   • Both require cfg.rng (else ErrNeedRandSource).
//   • Uniform: n ≥ MinPoints; each point is drawn x then y, uniform in bounds.
//   • Cluster: k ≥ 1 centers drawn uniformly, then per ≥ 1 points per center
//     drawn uniformly in the disk of the given radius, clamped to bounds.
//   • ClusterN: n points over k clusters; the first n%k clusters get one extra.

package builder

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Uniform returns a Constructor adding n uniformly distributed points.
func Uniform(n int) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if n < MinPoints {
			return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", MethodUniform, n, MinPoints, ErrTooFewPoints)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", MethodUniform, ErrNeedRandSource)
		}

		b := cfg.bounds
		for i := 0; i < n; i++ {
			x := b.Min.X + cfg.rng.Float64()*b.Width()
			y := b.Min.Y + cfg.rng.Float64()*b.Height()
			ps.Add(cfg.coord(x, y))
		}

		return nil
	}
}

// Cluster returns a Constructor adding k clusters of per points each.
func Cluster(k, per int, radius float64) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if k < 1 || per < 1 {
			return fmt.Errorf("%s: k=%d, per=%d (each must be ≥ 1): %w", MethodCluster, k, per, ErrTooFewPoints)
		}
		if err := checkClusterArgs(MethodCluster, radius, cfg); err != nil {
			return err
		}

		sizes := make([]int, k)
		for c := range sizes {
			sizes[c] = per
		}
		addClusters(ps, cfg, sizes, radius)

		return nil
	}
}

// ClusterN returns a Constructor adding exactly n points spread over k
// clusters. Sizes differ by at most one, larger clusters first.
func ClusterN(n, k int, radius float64) Constructor {
	return func(ps *PointSet, cfg Config) error {
		if k < 1 || n < k {
			return fmt.Errorf("%s: n=%d, k=%d (need k ≥ 1 and n ≥ k): %w", MethodClusterN, n, k, ErrTooFewPoints)
		}
		if err := checkClusterArgs(MethodClusterN, radius, cfg); err != nil {
			return err
		}

		sizes := make([]int, k)
		for c := range sizes {
			sizes[c] = n / k
			if c < n%k {
				sizes[c]++
			}
		}
		addClusters(ps, cfg, sizes, radius)

		return nil
	}
}

func checkClusterArgs(method string, radius float64, cfg Config) error {
	if !(radius > 0) {
		return fmt.Errorf("%s: radius=%g: %w", method, radius, ErrInvalidRadius)
	}
	if cfg.rng == nil {
		return fmt.Errorf("%s: %w", method, ErrNeedRandSource)
	}
	return nil
}

// addClusters draws one center per entry of sizes, then that many points
// around it.
func addClusters(ps *PointSet, cfg Config, sizes []int, radius float64) {
	b := cfg.bounds
	for _, size := range sizes {
		center := geom.Coord{
			X: b.Min.X + cfg.rng.Float64()*b.Width(),
			Y: b.Min.Y + cfg.rng.Float64()*b.Height(),
		}
		for i := 0; i < size; i++ {
			// sqrt keeps the density uniform over the disk
			r := radius * math.Sqrt(cfg.rng.Float64())
			theta := 2 * math.Pi * cfg.rng.Float64()
			x := clamp(center.X+r*math.Cos(theta), b.Min.X, b.Max.X)
			y := clamp(center.Y+r*math.Sin(theta), b.Min.Y, b.Max.Y)
			ps.Add(cfg.coord(x, y))
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
