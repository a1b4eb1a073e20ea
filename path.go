package pathclip

// Subpath is a continuous chain of segments, where every segment starts at
// the end of the previous one. A closed subpath additionally ends at its own
// starting coordinate and participates in containment tests.
type Subpath struct {
	Segments []Segment
	Closed   bool
}

// Empty returns true if the subpath has no segments.
func (sp Subpath) Empty() bool {
	return len(sp.Segments) == 0
}

// StartPos returns the starting coordinate of the subpath.
func (sp Subpath) StartPos() Point {
	if sp.Empty() {
		return Point{}
	}
	return sp.Segments[0].Start
}

// EndPos returns the final coordinate of the subpath.
func (sp Subpath) EndPos() Point {
	if sp.Empty() {
		return Point{}
	}
	return sp.Segments[len(sp.Segments)-1].End
}

// Bounds returns the bounding rectangle over all segment control polygons.
func (sp Subpath) Bounds() Rect {
	if sp.Empty() {
		return Rect{}
	}
	r := sp.Segments[0].Bounds()
	for _, seg := range sp.Segments[1:] {
		r = r.Union(seg.Bounds())
	}
	return r
}

// Path is an ordered sequence of subpaths. Paths are built with the MoveTo,
// LineTo, QuadTo, CubeTo, and Close commands, where MoveTo starts a new
// subpath. A path built without a leading MoveTo starts at the origin.
type Path struct {
	Subpaths []Subpath

	pen, start Point
	newSubpath bool
}

// Empty returns true if the path has no geometry.
func (p *Path) Empty() bool {
	if p == nil {
		return true
	}
	for _, sp := range p.Subpaths {
		if !sp.Empty() {
			return false
		}
	}
	return true
}

// Len returns the total number of segments over all subpaths.
func (p *Path) Len() int {
	n := 0
	for _, sp := range p.Subpaths {
		n += len(sp.Segments)
	}
	return n
}

// Closed returns true if the path is nonempty and every subpath is closed.
func (p *Path) Closed() bool {
	if p.Empty() {
		return false
	}
	for _, sp := range p.Subpaths {
		if !sp.Empty() && !sp.Closed {
			return false
		}
	}
	return true
}

// Open returns true if the path is nonempty and no subpath is closed.
func (p *Path) Open() bool {
	if p.Empty() {
		return false
	}
	for _, sp := range p.Subpaths {
		if !sp.Empty() && sp.Closed {
			return false
		}
	}
	return true
}

// Pos returns the current pen position.
func (p *Path) Pos() Point {
	return p.pen
}

// Bounds returns the bounding rectangle over all subpaths.
func (p *Path) Bounds() Rect {
	var r Rect
	first := true
	for _, sp := range p.Subpaths {
		if sp.Empty() {
			continue
		}
		if first {
			r = sp.Bounds()
			first = false
		} else {
			r = r.Union(sp.Bounds())
		}
	}
	return r
}

// MoveTo starts a new subpath at (x,y).
func (p *Path) MoveTo(x, y float64) {
	p.pen = Point{x, y}
	p.start = p.pen
	p.newSubpath = true
}

func (p *Path) append(seg Segment) {
	if p.newSubpath || len(p.Subpaths) == 0 || p.Subpaths[len(p.Subpaths)-1].Closed {
		p.Subpaths = append(p.Subpaths, Subpath{})
		p.start = seg.Start
		p.newSubpath = false
	}
	sp := &p.Subpaths[len(p.Subpaths)-1]
	sp.Segments = append(sp.Segments, seg)
	p.pen = seg.End
}

// LineTo adds a straight line towards (x,y).
func (p *Path) LineTo(x, y float64) {
	p.append(Line(p.pen, Point{x, y}))
}

// QuadTo adds a quadratic Bézier with control point (cpx,cpy) towards (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	p.append(Quad(p.pen, Point{cpx, cpy}, Point{x, y}))
}

// CubeTo adds a cubic Bézier with control points (cpx1,cpy1) and (cpx2,cpy2)
// towards (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	p.append(Cube(p.pen, Point{cpx1, cpy1}, Point{cpx2, cpy2}, Point{x, y}))
}

// Close closes the current subpath, adding a line back to its start when the
// pen is not already there. Endpoint coincidence uses Epsilon, the builder
// carries no per-path tolerance.
func (p *Path) Close() {
	if p.newSubpath || len(p.Subpaths) == 0 || p.Subpaths[len(p.Subpaths)-1].Closed {
		// close on an empty subpath has no effect
		return
	}
	sp := &p.Subpaths[len(p.Subpaths)-1]
	if !p.pen.Equals(p.start) {
		sp.Segments = append(sp.Segments, Line(p.pen, p.start))
	} else {
		// snap the endpoint onto the start to close exactly
		sp.Segments[len(sp.Segments)-1].End = p.start
	}
	sp.Closed = true
	p.pen = p.start
}

// Rect adds a rectangle as a closed subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Area returns the signed area enclosed by the path, counter clockwise
// subpaths counting positively and clockwise ones negatively.
func (p *Path) Area() float64 {
	A := 0.0
	for _, sp := range p.Subpaths {
		A += sp.Area()
	}
	return A
}

// Area returns the signed area enclosed by the subpath, positive when counter
// clockwise. Subpaths that are not closed are treated as implicitly closed by
// the chord from their end to their start. Areas are exact for line and
// Bézier segments.
func (sp Subpath) Area() float64 {
	if sp.Empty() {
		return 0.0
	}
	// Green's theorem: A = 1/2 ∮ (x dy - y dx)
	A := 0.0
	for _, seg := range sp.Segments {
		A += 0.5 * gaussLegendre7(func(t float64) float64 {
			pos, deriv := seg.Pos(t), seg.Deriv(t)
			return pos.X*deriv.Y - pos.Y*deriv.X
		}, 0.0, 1.0)
	}
	if !sp.Closed {
		end, start := sp.EndPos(), sp.StartPos()
		A += 0.5 * end.PerpDot(start)
	}
	return A
}

// coords returns the distinct on-curve coordinates of the path, consecutive
// duplicates within tol removed.
func (p *Path) coords(tol float64) []Point {
	var coords []Point
	for _, sp := range p.Subpaths {
		for _, seg := range sp.Segments {
			for _, pt := range []Point{seg.Start, seg.End} {
				if len(coords) == 0 || tol < coords[len(coords)-1].Sub(pt).Length() {
					coords = append(coords, pt)
				}
			}
		}
	}
	if 1 < len(coords) && coords[len(coords)-1].Sub(coords[0]).Length() <= tol {
		coords = coords[:len(coords)-1]
	}
	return coords
}
