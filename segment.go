package pathclip

import (
	"fmt"
	"math"
)

// SegmentKind is the curve kind of a Segment.
type SegmentKind int

const (
	LineSeg SegmentKind = iota
	QuadSeg
	CubeSeg
)

func (kind SegmentKind) String() string {
	switch kind {
	case LineSeg:
		return "Line"
	case QuadSeg:
		return "Quad"
	case CubeSeg:
		return "Cube"
	}
	return "Unknown"
}

// Segment is a directed curve element between Start and End. CP1 is used by
// quadratic Béziers, CP1 and CP2 by cubic Béziers. Segments are immutable
// values.
type Segment struct {
	Start, CP1, CP2, End Point
	Kind                 SegmentKind
}

// Line returns a straight line segment.
func Line(start, end Point) Segment {
	return Segment{Start: start, End: end, Kind: LineSeg}
}

// Quad returns a quadratic Bézier segment with control point cp.
func Quad(start, cp, end Point) Segment {
	return Segment{Start: start, CP1: cp, End: end, Kind: QuadSeg}
}

// Cube returns a cubic Bézier segment with control points cp1 and cp2.
func Cube(start, cp1, cp2, end Point) Segment {
	return Segment{Start: start, CP1: cp1, CP2: cp2, End: end, Kind: CubeSeg}
}

// Pos returns the coordinate at parameter t in [0,1].
func (seg Segment) Pos(t float64) Point {
	switch seg.Kind {
	case QuadSeg:
		return quadraticBezierPos(seg.Start, seg.CP1, seg.End, t)
	case CubeSeg:
		return cubicBezierPos(seg.Start, seg.CP1, seg.CP2, seg.End, t)
	}
	return seg.Start.Interpolate(seg.End, t)
}

// Deriv returns the derivative dPos/dt at parameter t in [0,1].
func (seg Segment) Deriv(t float64) Point {
	switch seg.Kind {
	case QuadSeg:
		return quadraticBezierDeriv(seg.Start, seg.CP1, seg.End, t)
	case CubeSeg:
		return cubicBezierDeriv(seg.Start, seg.CP1, seg.CP2, seg.End, t)
	}
	return seg.End.Sub(seg.Start)
}

// Split cuts the segment at parameter t and returns both halves, such that
// the first spans [0,t] and the second [t,1] of the original.
func (seg Segment) Split(t float64) (Segment, Segment) {
	switch seg.Kind {
	case QuadSeg:
		r0, r1, r2, q0, q1, q2 := quadraticBezierSplit(seg.Start, seg.CP1, seg.End, t)
		return Quad(r0, r1, r2), Quad(q0, q1, q2)
	case CubeSeg:
		r0, r1, r2, r3, q0, q1, q2, q3 := cubicBezierSplit(seg.Start, seg.CP1, seg.CP2, seg.End, t)
		return Cube(r0, r1, r2, r3), Cube(q0, q1, q2, q3)
	}
	mid := seg.Start.Interpolate(seg.End, t)
	return Line(seg.Start, mid), Line(mid, seg.End)
}

// Bounds returns the axis-aligned bounding box over the control polygon,
// which is a conservative bound for Bézier curves. That suffices for
// intersection pruning and subdivision termination.
func (seg Segment) Bounds() Rect {
	r := Rect{
		math.Min(seg.Start.X, seg.End.X),
		math.Min(seg.Start.Y, seg.End.Y),
		math.Max(seg.Start.X, seg.End.X),
		math.Max(seg.Start.Y, seg.End.Y),
	}
	if seg.Kind == QuadSeg || seg.Kind == CubeSeg {
		r.X0 = math.Min(r.X0, seg.CP1.X)
		r.Y0 = math.Min(r.Y0, seg.CP1.Y)
		r.X1 = math.Max(r.X1, seg.CP1.X)
		r.Y1 = math.Max(r.Y1, seg.CP1.Y)
	}
	if seg.Kind == CubeSeg {
		r.X0 = math.Min(r.X0, seg.CP2.X)
		r.Y0 = math.Min(r.Y0, seg.CP2.Y)
		r.X1 = math.Max(r.X1, seg.CP2.X)
		r.Y1 = math.Max(r.Y1, seg.CP2.Y)
	}
	return r
}

// Degenerate returns true if all of the segment's points coincide within tol,
// i.e. the segment has no extent. Degenerate segments produce no
// intersections and pass through clipping unchanged.
func (seg Segment) Degenerate(tol float64) bool {
	r := seg.Bounds()
	return r.W() <= tol && r.H() <= tol
}

func (seg Segment) String() string {
	switch seg.Kind {
	case QuadSeg:
		return fmt.Sprintf("Quad%v%v%v", seg.Start, seg.CP1, seg.End)
	case CubeSeg:
		return fmt.Sprintf("Cube%v%v%v%v", seg.Start, seg.CP1, seg.CP2, seg.End)
	}
	return fmt.Sprintf("Line%v%v", seg.Start, seg.End)
}

////////////////////////////////////////////////////////////////

func quadraticBezierPos(p0, p1, p2 Point, t float64) Point {
	p0 = p0.Mul((1.0 - t) * (1.0 - t))
	p1 = p1.Mul(2.0 * t * (1.0 - t))
	p2 = p2.Mul(t * t)
	return p0.Add(p1).Add(p2)
}

func quadraticBezierDeriv(p0, p1, p2 Point, t float64) Point {
	p0 = p0.Mul(-2.0 + 2.0*t)
	p1 = p1.Mul(2.0 - 4.0*t)
	p2 = p2.Mul(2.0 * t)
	return p0.Add(p1).Add(p2)
}

func cubicBezierPos(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul((1.0 - t) * (1.0 - t) * (1.0 - t))
	p1 = p1.Mul(3.0 * t * (1.0 - t) * (1.0 - t))
	p2 = p2.Mul(3.0 * t * t * (1.0 - t))
	p3 = p3.Mul(t * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func cubicBezierDeriv(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul(-3.0 + 6.0*t - 3.0*t*t)
	p1 = p1.Mul(3.0 - 12.0*t + 9.0*t*t)
	p2 = p2.Mul(6.0*t - 9.0*t*t)
	p3 = p3.Mul(3.0 * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

// quadraticBezierSplit splits the quadratic Bézier at position t using
// De Casteljau's algorithm and returns the control points of both subcurves.
func quadraticBezierSplit(p0, p1, p2 Point, t float64) (Point, Point, Point, Point, Point, Point) {
	q0 := p0
	q1 := p0.Interpolate(p1, t)

	r2 := p2
	r1 := p1.Interpolate(p2, t)

	r0 := q1.Interpolate(r1, t)
	q2 := r0
	return q0, q1, q2, r0, r1, r2
}

// cubicBezierSplit splits the cubic Bézier at position t using De Casteljau's
// algorithm and returns the control points of both subcurves.
func cubicBezierSplit(p0, p1, p2, p3 Point, t float64) (Point, Point, Point, Point, Point, Point, Point, Point) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}
