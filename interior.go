package pathclip

import "math"

// FillRule classifies a point against a closed path, see
// https://www.w3.org/TR/SVG/painting.html#FillRuleProperty
type FillRule int

const (
	EvenOdd FillRule = iota
	NonZero
)

func (rule FillRule) String() string {
	if rule == NonZero {
		return "NonZero"
	}
	return "EvenOdd"
}

// Fills returns whether a winding count fills under the rule.
func (rule FillRule) Fills(count int) bool {
	if rule == NonZero {
		return count != 0
	}
	return count%2 != 0
}

// maxRayAttempts bounds the ray recasts when a ray grazes an endpoint or
// touches the path tangentially.
const maxRayAttempts = 8

// windings computes the winding count of pos with respect to the subpaths by
// casting a ray in the +x direction and counting signed crossings.
// Crossings are found analytically on each segment. When the ray passes
// within tol of a segment endpoint or meets the path tangentially the count
// is unreliable, so the ray is recast at a jittered height.
func windings(subpaths []Subpath, pos Point, tol float64) int {
	count := 0
	for attempt := 0; attempt < maxRayAttempts; attempt++ {
		// deterministic jitter sequence: 0, +3ε, -3ε, +7ε, -7ε, ...
		jitter := float64(4*((attempt+1)/2)-1) * tol
		if attempt%2 == 0 {
			jitter = -jitter
		}
		if attempt == 0 {
			jitter = 0.0
		}

		var clean bool
		count, clean = castRay(subpaths, Point{pos.X, pos.Y + jitter}, tol)
		if clean {
			break
		}
	}
	return count
}

// castRay counts the signed crossings of the +x ray from pos with the
// subpaths. clean is false when a crossing was too close to a segment
// endpoint, to the ray origin, or tangential to the ray.
func castRay(subpaths []Subpath, pos Point, tol float64) (int, bool) {
	count := 0
	clean := true
	for _, subpath := range subpaths {
		for _, seg := range subpath.Segments {
			bounds := seg.Bounds()
			if bounds.Y1 < pos.Y-tol || pos.Y+tol < bounds.Y0 || bounds.X1 < pos.X-tol {
				continue
			}

			if seg.Kind == LineSeg {
				y0, y1 := seg.Start.Y, seg.End.Y
				if math.Abs(pos.Y-y0) <= tol || math.Abs(pos.Y-y1) <= tol {
					clean = false
				}
				if (pos.Y < y0) == (pos.Y < y1) {
					continue
				}
				t := (pos.Y - y0) / (y1 - y0)
				x := seg.Start.X + t*(seg.End.X-seg.Start.X)
				if math.Abs(x-pos.X) <= tol {
					clean = false
				}
				if pos.X < x {
					if y0 < y1 {
						count++
					} else {
						count--
					}
				}
				continue
			}

			var roots [3]float64
			if seg.Kind == QuadSeg {
				y0, y1, y2 := seg.Start.Y, seg.CP1.Y, seg.End.Y
				a := y0 - 2.0*y1 + y2
				b := 2.0*y1 - 2.0*y0
				c := y0 - pos.Y
				roots[0], roots[1] = solveQuadraticFormula(a, b, c)
				roots[2] = math.NaN()
			} else {
				y0, y1, y2, y3 := seg.Start.Y, seg.CP1.Y, seg.CP2.Y, seg.End.Y
				a := y3 - y0 + 3.0*y1 - 3.0*y2
				b := 3.0*y0 - 6.0*y1 + 3.0*y2
				c := 3.0*y1 - 3.0*y0
				d := y0 - pos.Y
				roots[0], roots[1], roots[2] = solveCubicFormula(a, b, c, d)
			}
			for _, t := range roots[:] {
				if math.IsNaN(t) {
					continue
				}
				if math.Abs(t) <= tol || math.Abs(t-1.0) <= tol {
					// crossing at a segment junction, counted ambiguously
					clean = false
				}
				if t < 0.0 || 1.0 <= t {
					continue
				}
				x := seg.Pos(t).X
				if math.Abs(x-pos.X) <= tol {
					clean = false
				}
				if x <= pos.X {
					continue
				}
				dy := seg.Deriv(t).Y
				if math.Abs(dy) <= tol {
					// tangential to the ray
					clean = false
					continue
				}
				if 0.0 < dy {
					count++
				} else {
					count--
				}
			}
		}
	}
	return count, clean
}

// interior returns whether pos lies inside the region filled by the subpaths
// under the given fill rule.
func interior(subpaths []Subpath, pos Point, rule FillRule, tol float64) bool {
	return rule.Fills(windings(subpaths, pos, tol))
}

// onBoundary returns whether pos lies within tol of any segment of the
// subpaths.
func onBoundary(subpaths []Subpath, pos Point, tol float64) bool {
	for _, subpath := range subpaths {
		for _, seg := range subpath.Segments {
			if !seg.Bounds().Contains(pos, tol) {
				continue
			}
			if segmentDistance(seg, pos, tol, 0) <= tol {
				return true
			}
		}
	}
	return false
}

// segmentDistance returns an upper bound on the distance from pos to the
// segment, accurate to tol. Curves are split until nearly flat.
func segmentDistance(seg Segment, pos Point, tol float64, depth int) float64 {
	if seg.Kind == LineSeg || flat(seg, tol) || 24 < depth {
		return lineDistance(seg.Start, seg.End, pos)
	}
	s0, s1 := seg.Split(0.5)
	d := math.Inf(1)
	if s0.Bounds().Contains(pos, tol) {
		d = segmentDistance(s0, pos, tol, depth+1)
	}
	if s1.Bounds().Contains(pos, tol) {
		d = math.Min(d, segmentDistance(s1, pos, tol, depth+1))
	}
	return d
}

// flat returns whether the control points stray at most tol/2 from the chord.
func flat(seg Segment, tol float64) bool {
	if lineDistance(seg.Start, seg.End, seg.CP1) <= tol/2.0 {
		return seg.Kind == QuadSeg || lineDistance(seg.Start, seg.End, seg.CP2) <= tol/2.0
	}
	return false
}

// lineDistance returns the distance from pos to the line segment [a,b].
func lineDistance(a, b, pos Point) float64 {
	d := b.Sub(a)
	len2 := d.Dot(d)
	if len2 == 0.0 {
		return pos.Sub(a).Length()
	}
	t := clampT(pos.Sub(a).Dot(d) / len2)
	return pos.Sub(a.Interpolate(b, t)).Length()
}
