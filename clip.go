package pathclip

import (
	"math"
	"sort"
)

// A cutPoint marks a parametric position on an open subpath where it meets
// the clip boundary.
type cutPoint struct {
	Seg int     // segment index within the subpath
	T   float64 // position within the segment
	Pos Point
}

// A subSegment is a maximal run of an open subpath between consecutive cut
// points. It lies entirely inside or entirely outside the clip region.
type subSegment struct {
	segments []Segment
	inside   bool
}

// Clipper clips open paths against a closed clip region. The zero value uses
// the even-odd fill rule and the default tolerance.
type Clipper struct {
	FillRule  FillRule
	Invert    bool    // keep the parts outside the region instead
	Tolerance float64 // coincidence tolerance, Epsilon when zero
}

// Clip removes the parts of the open path p that lie outside the region
// enclosed by clip, or inside it when invert is set. See Clipper.Clip.
func Clip(p, clip *Path, invert bool) ([]*Path, error) {
	return Clipper{Invert: invert}.Clip(p, clip)
}

// Clip cuts the open path p at every crossing with the boundary of clip and
// returns the retained pieces as open paths, ordered along p. Neither operand
// is modified. p must consist of open subpaths only, and clip of closed
// subpaths enclosing a non-degenerate region.
func (c Clipper) Clip(p, clip *Path) ([]*Path, error) {
	tol := c.Tolerance
	if tol <= 0.0 {
		tol = Epsilon
	}
	if p == nil || p.Empty() {
		return nil, nil
	} else if !p.Open() {
		return nil, &Error{Kind: InvalidOperandKind, Op: "subject path must be open", Subpath: -1, Seg: -1, ClipSeg: -1}
	}
	if clip == nil || clip.Empty() {
		return nil, &Error{Kind: DegenerateClipRegion, Op: "empty clip path", Subpath: -1, Seg: -1, ClipSeg: -1}
	} else if !clip.Closed() {
		return nil, &Error{Kind: InvalidOperandKind, Op: "clip path must be closed", Subpath: -1, Seg: -1, ClipSeg: -1}
	}
	if len(clip.coords(tol)) < 3 {
		return nil, &Error{Kind: DegenerateClipRegion, Op: "fewer than three distinct points", Subpath: -1, Seg: -1, ClipSeg: -1}
	}
	// sum the unsigned subpath areas, disjoint subpaths wound in opposite
	// directions must not cancel
	area := 0.0
	for _, csp := range clip.Subpaths {
		area += math.Abs(csp.Area())
	}
	if area <= tol {
		return nil, &Error{Kind: DegenerateClipRegion, Op: "zero enclosed area", Subpath: -1, Seg: -1, ClipSeg: -1}
	}

	var result []*Path
	for spIdx, sp := range p.Subpaths {
		if sp.Empty() {
			continue
		}
		cuts, err := cut(spIdx, sp, clip, tol)
		if err != nil {
			return nil, err
		}
		subs := split(sp, cuts)
		for i := range subs {
			subs[i].inside = c.classify(subs[i].segments, clip, tol)
		}
		result = append(result, stitch(subs, c.Invert)...)
	}
	return result, nil
}

// cut finds all positions where the subpath meets the clip boundary, sorted
// along the subpath and deduplicated within tol. Cut points that coincide
// with the subpath's own endpoints are dropped, splitting there is a no-op.
func cut(spIdx int, sp Subpath, clip *Path, tol float64) ([]cutPoint, error) {
	var cuts []cutPoint
	for i, seg := range sp.Segments {
		clipIdx := 0
		for _, csp := range clip.Subpaths {
			for _, cseg := range csp.Segments {
				zs, ok := intersectSegments(nil, seg, cseg, tol)
				if !ok {
					return nil, &Error{Kind: NumericalFailure, Subpath: spIdx, Seg: i, ClipSeg: clipIdx}
				}
				for _, z := range zs {
					cuts = append(cuts, cutPoint{i, z.TA, z.Point})
				}
				clipIdx++
			}
		}
	}

	// snap cut points at segment junctions onto the start of the next
	// segment, so that splitting never produces degenerate slices
	for i := range cuts {
		if cuts[i].T <= tol {
			cuts[i].T = 0.0
		} else if 1.0-tol <= cuts[i].T {
			cuts[i].Seg++
			cuts[i].T = 0.0
		}
	}
	sort.SliceStable(cuts, func(i, j int) bool {
		if cuts[i].Seg != cuts[j].Seg {
			return cuts[i].Seg < cuts[j].Seg
		}
		return cuts[i].T < cuts[j].T
	})

	last := len(sp.Segments)
	deduped := cuts[:0]
	for _, cp := range cuts {
		if cp.Seg == 0 && cp.T == 0.0 || cp.Seg == last {
			continue // subpath endpoint
		}
		if 0 < len(deduped) {
			prev := deduped[len(deduped)-1]
			if cp.Seg == prev.Seg && cp.T-prev.T <= coincidentParamWindow && cp.Pos.Sub(prev.Pos).Length() <= tol {
				continue // tangential double root or clip corner
			}
		}
		deduped = append(deduped, cp)
	}
	return deduped, nil
}

// split cuts the subpath at each cut point and groups the segments into
// sub-segments. Splitting renormalizes the remaining parameter range after
// each cut.
func split(sp Subpath, cuts []cutPoint) []subSegment {
	var subs []subSegment
	var run []Segment
	flush := func() {
		if 0 < len(run) {
			subs = append(subs, subSegment{segments: run})
			run = nil
		}
	}

	j := 0
	for i, seg := range sp.Segments {
		rem := seg
		t0 := 0.0
		for ; j < len(cuts) && cuts[j].Seg == i; j++ {
			if cuts[j].T == 0.0 {
				flush() // boundary at the junction before this segment
				continue
			}
			t := (cuts[j].T - t0) / (1.0 - t0)
			s0, s1 := rem.Split(t)
			run = append(run, s0)
			flush()
			rem = s1
			t0 = cuts[j].T
		}
		run = append(run, rem)
	}
	flush()
	return subs
}

// classify determines whether a sub-segment lies inside the clip region by
// testing its parametric midpoint. A midpoint on the boundary itself is
// nudged along the local tangent until it clears the boundary.
func (c Clipper) classify(segments []Segment, clip *Path, tol float64) bool {
	pos, dir := chainMid(segments)
	if !onBoundary(clip.Subpaths, pos, tol) {
		return interior(clip.Subpaths, pos, c.FillRule, tol)
	}
	for _, step := range []float64{2.0, 8.0, 32.0} {
		for _, sign := range []float64{1.0, -1.0} {
			q := pos.Add(dir.Norm(sign * step * tol))
			if !onBoundary(clip.Subpaths, q, tol) {
				return interior(clip.Subpaths, q, c.FillRule, tol)
			}
		}
	}
	// runs along the boundary
	return interior(clip.Subpaths, pos, c.FillRule, tol)
}

// chainMid returns the midpoint of a run of segments together with the
// tangent direction there. For an even number of segments this is the middle
// junction, otherwise the middle segment's own midpoint.
func chainMid(segments []Segment) (Point, Point) {
	seg := segments[len(segments)/2]
	t := 0.5
	if len(segments)%2 == 0 {
		t = 0.0
	}
	dir := seg.Deriv(t)
	if dir.IsZero() {
		dir = seg.End.Sub(seg.Start) // cusp
	}
	return seg.Pos(t), dir
}

// stitch joins consecutive retained sub-segments back into open paths. A
// dropped sub-segment in between starts a new path.
func stitch(subs []subSegment, invert bool) []*Path {
	var paths []*Path
	var run *Path
	for _, sub := range subs {
		if sub.inside == invert {
			run = nil
			continue
		}
		if run == nil {
			run = &Path{}
			paths = append(paths, run)
		}
		for _, seg := range sub.segments {
			run.append(seg)
		}
	}
	return paths
}
