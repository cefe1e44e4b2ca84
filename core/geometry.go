package core

import (
	"math"

	"github.com/charliebarber/sat-routing-2d/model"
)

// WrappedSpace is the periodic 2D coordinate space a snapshot lives in.
// Positions near one boundary are geometrically close to the opposite
// boundary, so all distance computation goes through this type rather
// than raw Euclidean math.
type WrappedSpace struct {
	Width  float64
	Height float64
}

// NewWrappedSpace builds the space from config dimensions.
func NewWrappedSpace(cfg *model.Config) WrappedSpace {
	return WrappedSpace{Width: cfg.SpaceWidth, Height: cfg.SpaceHeight}
}

// Distance returns the wrapped Euclidean distance between two positions:
// per axis, the shorter of the direct difference and the difference going
// the other way around the boundary, combined by Euclidean norm.
//
// The result is symmetric and satisfies the triangle inequality, which
// keeps shortest-path search sound. When a pair sits exactly half the
// space apart on an axis, both directions are equidistant; axisDelta
// resolves the tie by keeping the direct difference.
func (s WrappedSpace) Distance(a, b model.Position) float64 {
	dx := axisDelta(a.X, b.X, s.Width)
	dy := axisDelta(a.Y, b.Y, s.Height)
	return math.Sqrt(dx*dx + dy*dy)
}

// axisDelta returns the minimum separation along one periodic axis of
// extent size. A non-positive extent disables wrapping on that axis.
func axisDelta(a, b, size float64) float64 {
	d := math.Abs(a - b)
	if size <= 0 {
		return d
	}
	if wrapped := size - d; wrapped < d {
		return wrapped
	}
	return d
}

// Midpoint returns a midpoint of a and b along the shorter arc of each
// axis, folded back into [0, size) where the axis wraps. The snapshot
// grammar records link midpoints; this is its geometric counterpart.
func (s WrappedSpace) Midpoint(a, b model.Position) model.Position {
	return model.Position{
		X: axisMidpoint(a.X, b.X, s.Width),
		Y: axisMidpoint(a.Y, b.Y, s.Height),
	}
}

func axisMidpoint(a, b, size float64) float64 {
	if size <= 0 {
		return (a + b) / 2
	}
	d := math.Abs(a - b)
	if size-d >= d {
		return (a + b) / 2
	}
	// Shorter arc crosses the boundary: shift the smaller coordinate up by
	// one period, average, then fold back into range.
	if a < b {
		a += size
	} else {
		b += size
	}
	mid := (a + b) / 2
	return math.Mod(mid, size)
}
