package pathclip

import (
	"fmt"
	"math"
)

// Intersection is a coincidence between two segments, with TA the parametric
// position on the first and TB on the second. Used transiently while
// collecting cut points.
type Intersection struct {
	Point
	TA, TB float64
}

func (z Intersection) String() string {
	return fmt.Sprintf("pos=%v t={%g,%g}", z.Point, z.TA, z.TB)
}

// maxSubdivisionDepth bounds the recursion of curve-curve subdivision, and
// maxSubdivisionIters bounds the total work per segment pair. Exceeding
// either is reported as a numerical failure for that pair.
const (
	maxSubdivisionDepth = 48
	maxSubdivisionIters = 16384
)

// coincidentParamWindow merges near-identical roots on the same segment into
// a single intersection, provided their positions also coincide within the
// geometric tolerance. Parameter speed varies with segment length, so the
// position test carries the tolerance and the parameter window is a fixed
// fraction of the segment.
const coincidentParamWindow = 0.01

// intersectSegments appends all intersections between segments a and b to zs,
// each reported exactly once within tol. It returns ok=false when curve-curve
// subdivision failed to converge within its budget.
func intersectSegments(zs []Intersection, a, b Segment, tol float64) ([]Intersection, bool) {
	if a.Degenerate(tol) || b.Degenerate(tol) {
		// no crash, no intersections
		return zs, true
	}
	if !a.Bounds().Overlaps(b.Bounds(), tol) {
		return zs, true
	}

	if a.Kind == LineSeg && b.Kind == LineSeg {
		return intersectionLineLine(zs, a.Start, a.End, b.Start, b.End, tol), true
	} else if a.Kind == LineSeg {
		return intersectionLineCurve(zs, a, b, false, tol), true
	} else if b.Kind == LineSeg {
		return intersectionLineCurve(zs, b, a, true, tol), true
	}
	return intersectionCurveCurve(zs, a, b, tol)
}

func clampT(t float64) float64 {
	if t < 0.0 {
		return 0.0
	} else if 1.0 < t {
		return 1.0
	}
	return t
}

// http://www.cs.swan.ac.uk/~cssimon/line_intersection.html
func intersectionLineLine(zs []Intersection, a0, a1, b0, b1 Point, tol float64) []Intersection {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	div := da.PerpDot(db)
	if math.Abs(da.Norm(1.0).PerpDot(db.Norm(1.0))) <= tol {
		// parallel
		if tol < math.Abs(da.Norm(1.0).PerpDot(b0.Sub(a0).Norm(1.0)))*b0.Sub(a0).Length() {
			return zs // not collinear
		}

		// collinear, the overlap interval endpoints become intersections
		len2 := da.Dot(da)
		c0 := da.Dot(b0.Sub(a0)) / len2 // b0 along a
		c1 := da.Dot(b1.Sub(a0)) / len2 // b1 along a
		lo, hi := c0, c1
		if hi < lo {
			lo, hi = hi, lo
		}
		tolA := tol / math.Sqrt(len2) // tol in parameter space of a
		t0, t1 := math.Max(0.0, lo), math.Min(1.0, hi)
		if t1 < t0-tolA {
			return zs // no overlap
		}
		for _, t := range []float64{t0, t1} {
			s := (t - c0) / (c1 - c0)
			zs = append(zs, Intersection{a0.Interpolate(a1, t), clampT(t), clampT(s)})
			if t1-t0 <= tolA {
				break // single touch point
			}
		}
		return zs
	}

	ta := db.PerpDot(a0.Sub(b0)) / div
	tb := da.PerpDot(a0.Sub(b0)) / div
	if inInterval(ta, 0.0, 1.0, tol) && inInterval(tb, 0.0, 1.0, tol) {
		zs = append(zs, Intersection{a0.Interpolate(a1, ta), clampT(ta), clampT(tb)})
	}
	return zs
}

// intersectionLineCurve solves the line-quad and line-cube cases analytically
// by finding the curve parameters where the curve crosses the line's carrier
// and verifying the position lies within the line segment
// see https://www.particleincell.com/2013/cubic-line-intersection/
func intersectionLineCurve(zs []Intersection, line, curve Segment, swapped bool, tol float64) []Intersection {
	l0, l1 := line.Start, line.End

	// write line as A.X = bias
	A := Point{l1.Y - l0.Y, l0.X - l1.X}
	bias := l0.Dot(A)

	var roots [3]float64
	if curve.Kind == QuadSeg {
		p0, p1, p2 := curve.Start, curve.CP1, curve.End
		a := A.Dot(p0.Sub(p1.Mul(2.0)).Add(p2))
		b := A.Dot(p1.Sub(p0).Mul(2.0))
		c := A.Dot(p0) - bias
		roots[0], roots[1] = solveQuadraticFormula(a, b, c)
		roots[2] = math.NaN()
	} else {
		p0, p1, p2, p3 := curve.Start, curve.CP1, curve.CP2, curve.End
		a := A.Dot(p3.Sub(p0).Add(p1.Mul(3.0)).Sub(p2.Mul(3.0)))
		b := A.Dot(p0.Mul(3.0).Sub(p1.Mul(6.0)).Add(p2.Mul(3.0)))
		c := A.Dot(p1.Mul(3.0).Sub(p0.Mul(3.0)))
		d := A.Dot(p0) - bias
		roots[0], roots[1], roots[2] = solveCubicFormula(a, b, c, d)
	}

	horizontal := math.Abs(l1.Y-l0.Y) <= math.Abs(l1.X-l0.X)
	for _, root := range roots[:] {
		if math.IsNaN(root) || !inInterval(root, 0.0, 1.0, tol) {
			continue
		}
		root = clampT(root)
		pos := curve.Pos(root)
		var s float64
		if horizontal {
			s = (pos.X - l0.X) / (l1.X - l0.X)
		} else {
			s = (pos.Y - l0.Y) / (l1.Y - l0.Y)
		}
		if !inInterval(s, 0.0, 1.0, tol) {
			continue
		}
		z := Intersection{pos, clampT(s), root}
		if swapped {
			z.TA, z.TB = z.TB, z.TA
		}
		// a double root at a tangential touch yields near-identical entries,
		// keep one
		duplicate := false
		for _, prev := range zs {
			if prev.Point.Sub(z.Point).Length() <= tol && math.Abs(prev.TA-z.TA) <= tol && math.Abs(prev.TB-z.TB) <= tol {
				duplicate = true
				break
			}
		}
		if !duplicate {
			zs = append(zs, z)
		}
	}
	return zs
}

type curveCurvePair struct {
	a, b               Segment
	ta0, ta1, tb0, tb1 float64
	depth              int
}

// intersectionCurveCurve intersects two Bézier segments by recursive
// subdivision over overlapping bounding boxes, refining locally with a chord
// intersection once both boxes are below tol
// see https://cs.nyu.edu/exact/doc/subdiv1.pdf
func intersectionCurveCurve(zs []Intersection, a, b Segment, tol float64) ([]Intersection, bool) {
	// identical or reversed segments overlap everywhere, report the
	// endpoints only
	if a == b {
		zs = append(zs, Intersection{a.Start, 0.0, 0.0}, Intersection{a.End, 1.0, 1.0})
		return zs, true
	}
	if a.Start == b.End && a.End == b.Start && ((a.Kind == QuadSeg && b.Kind == QuadSeg && a.CP1 == b.CP1) ||
		(a.Kind == CubeSeg && b.Kind == CubeSeg && a.CP1 == b.CP2 && a.CP2 == b.CP1)) {
		zs = append(zs, Intersection{a.Start, 0.0, 1.0}, Intersection{a.End, 1.0, 0.0})
		return zs, true
	}

	var found []Intersection
	stack := []curveCurvePair{{a, b, 0.0, 1.0, 0.0, 1.0, 0}}
	iters := 0
	for 0 < len(stack) {
		if maxSubdivisionIters < iters {
			return zs, false
		}
		iters++

		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ra, rb := pair.a.Bounds(), pair.b.Bounds()
		if !ra.Overlaps(rb, tol/2.0) {
			continue
		}
		smallA := ra.W() <= tol && ra.H() <= tol
		smallB := rb.W() <= tol && rb.H() <= tol
		if smallA && smallB {
			ta := (pair.ta0 + pair.ta1) / 2.0
			tb := (pair.tb0 + pair.tb1) / 2.0
			pos := pair.a.Pos(0.5)
			// refine by intersecting the chords within the boxes
			da := pair.a.End.Sub(pair.a.Start)
			db := pair.b.End.Sub(pair.b.Start)
			if div := da.PerpDot(db); tol*tol < math.Abs(div) {
				fa := db.PerpDot(pair.a.Start.Sub(pair.b.Start)) / div
				fb := da.PerpDot(pair.a.Start.Sub(pair.b.Start)) / div
				if inInterval(fa, 0.0, 1.0, tol) && inInterval(fb, 0.0, 1.0, tol) {
					ta = pair.ta0 + clampT(fa)*(pair.ta1-pair.ta0)
					tb = pair.tb0 + clampT(fb)*(pair.tb1-pair.tb0)
					pos = pair.a.Start.Interpolate(pair.a.End, clampT(fa))
				}
			}
			z := Intersection{pos, clampT(ta), clampT(tb)}
			duplicate := false
			for _, prev := range found {
				if prev.Point.Sub(z.Point).Length() <= 2.0*tol && math.Abs(prev.TA-z.TA) <= coincidentParamWindow {
					duplicate = true
					break
				}
			}
			if !duplicate {
				found = append(found, z)
			}
			continue
		}
		if maxSubdivisionDepth < pair.depth {
			return zs, false
		}

		if smallA {
			b0, b1 := pair.b.Split(0.5)
			tbm := (pair.tb0 + pair.tb1) / 2.0
			stack = append(stack,
				curveCurvePair{pair.a, b0, pair.ta0, pair.ta1, pair.tb0, tbm, pair.depth + 1},
				curveCurvePair{pair.a, b1, pair.ta0, pair.ta1, tbm, pair.tb1, pair.depth + 1},
			)
		} else if smallB {
			a0, a1 := pair.a.Split(0.5)
			tam := (pair.ta0 + pair.ta1) / 2.0
			stack = append(stack,
				curveCurvePair{a0, pair.b, pair.ta0, tam, pair.tb0, pair.tb1, pair.depth + 1},
				curveCurvePair{a1, pair.b, tam, pair.ta1, pair.tb0, pair.tb1, pair.depth + 1},
			)
		} else {
			a0, a1 := pair.a.Split(0.5)
			b0, b1 := pair.b.Split(0.5)
			tam := (pair.ta0 + pair.ta1) / 2.0
			tbm := (pair.tb0 + pair.tb1) / 2.0
			stack = append(stack,
				curveCurvePair{a0, b0, pair.ta0, tam, pair.tb0, tbm, pair.depth + 1},
				curveCurvePair{a0, b1, pair.ta0, tam, tbm, pair.tb1, pair.depth + 1},
				curveCurvePair{a1, b0, tam, pair.ta1, pair.tb0, tbm, pair.depth + 1},
				curveCurvePair{a1, b1, tam, pair.ta1, tbm, pair.tb1, pair.depth + 1},
			)
		}
	}
	return append(zs, found...), true
}
