// Package geom implements the axis-aligned rectangle algebra used for
// bounding boxes of words and annotations.
package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// SetLogger redirects the package's warning output, e.g. to a test hook.
func SetLogger(l *logrus.Logger) {
	log = l
}

// Rect is an immutable axis-aligned rectangle. Coordinates are in a single
// consistent unit (points or pixels), with y increasing downward unless the
// caller says otherwise. Every transform returns a new value.
//
// XMin <= XMax and YMin <= YMax is a soft invariant: a violating Rect is
// constructible (NewRect logs a warning) because upstream PDF data does
// occasionally carry swapped bounds.
type Rect struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// NewRect builds a rectangle from its bounds. Construction never fails;
// swapped bounds are reported on the warning channel.
func NewRect(xMin, yMin, xMax, yMax float64) Rect {
	if xMin > xMax || yMin > yMax {
		log.Warnf("rectangle lower bound is larger than upper bound (x: (%v, %v), y: (%v, %v))",
			xMin, xMax, yMin, yMax)
	}
	return Rect{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax}
}

// FromR2 converts an r2.Rect into a Rect.
func FromR2(r r2.Rect) Rect {
	return NewRect(r.X.Lo, r.Y.Lo, r.X.Hi, r.Y.Hi)
}

// R2 converts the rectangle into its r2 representation.
func (r Rect) R2() r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: r.XMin, Y: r.YMin},
		r2.Point{X: r.XMax, Y: r.YMax},
	)
}

func (r Rect) Width() float64  { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

// Center returns the rectangle's midpoint.
func (r Rect) Center() r2.Point {
	return r2.Point{X: (r.XMin + r.XMax) / 2, Y: (r.YMin + r.YMax) / 2}
}

// Contains reports whether other lies fully within r (non-strict on both axes).
func (r Rect) Contains(other Rect) bool {
	return other.XMin >= r.XMin && other.XMax <= r.XMax &&
		other.YMin >= r.YMin && other.YMax <= r.YMax
}

// Rescale multiplies horizontal and vertical coordinates by per-axis factors.
// Factors must be non-negative; vertical flips go through the explicit
// page-height transform in the annot package instead.
func (r Rect) Rescale(multiplyWidthBy, multiplyHeightBy float64) Rect {
	return NewRect(
		r.XMin*multiplyWidthBy,
		r.YMin*multiplyHeightBy,
		r.XMax*multiplyWidthBy,
		r.YMax*multiplyHeightBy,
	)
}

// RelativeToSize renormalizes the coordinates relative to a reference width
// and height, yielding values between 0 and 1 for in-bounds rectangles.
func (r Rect) RelativeToSize(width, height float64) Rect {
	return r.Rescale(1/width, 1/height)
}

// ToInt truncates all coordinates to integers.
func (r Rect) ToInt() Rect {
	return NewRect(math.Trunc(r.XMin), math.Trunc(r.YMin), math.Trunc(r.XMax), math.Trunc(r.YMax))
}

// Intersection clamps both axes to the overlap of r and other. The second
// return value is false when the rectangles do not overlap; no degenerate
// rectangle is produced in that case.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	xMin := math.Max(r.XMin, other.XMin)
	yMin := math.Max(r.YMin, other.YMin)
	xMax := math.Min(r.XMax, other.XMax)
	yMax := math.Min(r.YMax, other.YMax)
	if xMin > xMax || yMin > yMax {
		return Rect{}, false
	}
	return Rect{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax}, true
}

// IoU computes the intersection-over-union of two rectangles. Disjoint
// rectangles score 0; the no-intersection short-circuit means the division
// never sees a zero denominator.
func (r Rect) IoU(other Rect) float64 {
	inter, ok := r.Intersection(other)
	if !ok {
		return 0
	}
	return inter.Area() / (r.Area() + other.Area() - inter.Area())
}

// SmallestCommonSuperrectangle returns the minimal rectangle containing both
// r and other. Always defined.
func (r Rect) SmallestCommonSuperrectangle(other Rect) Rect {
	return Rect{
		XMin: math.Min(r.XMin, other.XMin),
		YMin: math.Min(r.YMin, other.YMin),
		XMax: math.Max(r.XMax, other.XMax),
		YMax: math.Max(r.YMax, other.YMax),
	}
}

// IntersectsAny reports whether some rectangle in others overlaps r.
func (r Rect) IntersectsAny(others []Rect) bool {
	for _, o := range others {
		if _, ok := r.Intersection(o); ok {
			return true
		}
	}
	return false
}

// NormalizeRectangles repeatedly replaces rectangle pairs with nonzero IoU by
// their smallest common superrectangle until no pair in the list overlaps.
// Each merge shrinks the list, so the recursion terminates. The order of the
// result is not significant.
func NormalizeRectangles(rects []Rect) []Rect {
	if len(rects) < 2 {
		return rects
	}

	first := rects[0]
	rest := make([]Rect, len(rects)-1)
	copy(rest, rects[1:])

	firstIntersectsSome := false
	for i := range rest {
		if first.IoU(rest[i]) > 0 {
			rest[i] = rest[i].SmallestCommonSuperrectangle(first)
			firstIntersectsSome = true
		}
	}

	restNormalized := NormalizeRectangles(rest)
	if firstIntersectsSome {
		return restNormalized
	}
	return append([]Rect{first}, restNormalized...)
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(x_min=%v, y_min=%v, x_max=%v, y_max=%v)", r.XMin, r.YMin, r.XMax, r.YMax)
}
