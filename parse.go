package pathclip

import (
	"fmt"
	"math"
	stdstrconv "strconv"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// Path data parsing and serialization for the SVG path syntax, the native
// curve description of the host documents this library is meant to operate
// on. Elliptical arcs are converted to cubic Béziers on input, the core
// model knows lines and Béziers only.

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int, error) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, 0, fmt.Errorf("expected number")
	}
	return f, i + n, nil
}

// ParseSVGPath parses SVG path data into a Path. Arc commands are converted
// to cubic Bézier approximations.
func ParseSVGPath(data string) (*Path, error) {
	path := []byte(data)
	p := &Path{}

	var prevCmd byte
	cpx, cpy := 0.0, 0.0 // previous control point for smooth commands

	i := 0
	for {
		i += skipCommaWhitespace(path[i:])
		if i == len(path) {
			break
		}
		cmd := prevCmd
		if 'A' <= path[i] && path[i] <= 'z' {
			cmd = path[i]
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("bad path: expected command at position %d", i+1)
		} else if cmd == 'M' {
			cmd = 'L' // implicit lineto after moveto
		} else if cmd == 'm' {
			cmd = 'l'
		}
		pos := p.Pos()
		nums, err := parseNums(path, &i, cmdNumsSVG(cmd))
		if err != nil {
			return nil, fmt.Errorf("bad path: %v for command '%c' at position %d", err, cmd, i+1)
		}
		switch cmd {
		case 'M', 'm':
			if cmd == 'm' {
				nums[0] += pos.X
				nums[1] += pos.Y
			}
			p.MoveTo(nums[0], nums[1])
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			if cmd == 'l' {
				nums[0] += pos.X
				nums[1] += pos.Y
			}
			p.LineTo(nums[0], nums[1])
		case 'H', 'h':
			if cmd == 'h' {
				nums[0] += pos.X
			}
			p.LineTo(nums[0], pos.Y)
		case 'V', 'v':
			if cmd == 'v' {
				nums[0] += pos.Y
			}
			p.LineTo(pos.X, nums[0])
		case 'Q', 'q':
			if cmd == 'q' {
				nums[0] += pos.X
				nums[1] += pos.Y
				nums[2] += pos.X
				nums[3] += pos.Y
			}
			p.QuadTo(nums[0], nums[1], nums[2], nums[3])
			cpx, cpy = nums[0], nums[1]
		case 'T', 't':
			if cmd == 't' {
				nums[0] += pos.X
				nums[1] += pos.Y
			}
			ax, ay := pos.X, pos.Y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				ax, ay = 2.0*pos.X-cpx, 2.0*pos.Y-cpy
			}
			p.QuadTo(ax, ay, nums[0], nums[1])
			cpx, cpy = ax, ay
		case 'C', 'c':
			if cmd == 'c' {
				for j := 0; j < 6; j += 2 {
					nums[j] += pos.X
					nums[j+1] += pos.Y
				}
			}
			p.CubeTo(nums[0], nums[1], nums[2], nums[3], nums[4], nums[5])
			cpx, cpy = nums[2], nums[3]
		case 'S', 's':
			if cmd == 's' {
				for j := 0; j < 4; j += 2 {
					nums[j] += pos.X
					nums[j+1] += pos.Y
				}
			}
			ax, ay := pos.X, pos.Y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				ax, ay = 2.0*pos.X-cpx, 2.0*pos.Y-cpy
			}
			p.CubeTo(ax, ay, nums[0], nums[1], nums[2], nums[3])
			cpx, cpy = nums[0], nums[1]
		case 'A', 'a':
			if cmd == 'a' {
				nums[5] += pos.X
				nums[6] += pos.Y
			}
			large := math.Abs(nums[3]-1.0) < 1e-10
			sweep := math.Abs(nums[4]-1.0) < 1e-10
			arcToCubics(p, pos, nums[0], nums[1], nums[2], large, sweep, Point{nums[5], nums[6]})
		default:
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, i)
		}
		prevCmd = cmd
	}
	return p, nil
}

// MustParseSVGPath parses SVG path data and panics on failure.
func MustParseSVGPath(data string) *Path {
	p, err := ParseSVGPath(data)
	if err != nil {
		panic(err)
	}
	return p
}

func cmdNumsSVG(cmd byte) int {
	switch cmd {
	case 'Z', 'z':
		return 0
	case 'H', 'h', 'V', 'v':
		return 1
	case 'C', 'c':
		return 6
	case 'S', 's', 'Q', 'q':
		return 4
	case 'A', 'a':
		return 7
	}
	return 2
}

func parseNums(path []byte, i *int, n int) ([]float64, error) {
	nums := make([]float64, n)
	for j := 0; j < n; j++ {
		f, m, err := parseNum(path[*i:])
		if err != nil {
			return nil, err
		}
		nums[j] = f
		*i += m
	}
	return nums, nil
}

// ellipseToCenter converts SVG endpoint arc parameters to the center, radii,
// and start/end angles in radians
// see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func ellipseToCenter(start Point, rx, ry, rot float64, large, sweep bool, end Point) (Point, float64, float64, float64, float64) {
	if start.Equals(end) {
		return start, rx, ry, 0.0, 0.0
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if Equal(rx, 0.0) || Equal(ry, 0.0) {
		// treated as a straight line by the caller
		return start.Interpolate(end, 0.5), 0.0, 0.0, 0.0, 0.0
	}

	phi := rot * math.Pi / 180.0
	sinphi, cosphi := math.Sincos(phi)
	x1p := cosphi*(start.X-end.X)/2.0 + sinphi*(start.Y-end.Y)/2.0
	y1p := -sinphi*(start.X-end.X)/2.0 + cosphi*(start.Y-end.Y)/2.0

	// scale up the radii when the ellipse cannot span the endpoints
	radiiCheck := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if 1.0 < radiiCheck {
		rx *= math.Sqrt(radiiCheck)
		ry *= math.Sqrt(radiiCheck)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0.0 {
		sq = 0.0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cosphi*cxp - sinphi*cyp + (start.X+end.X)/2.0
	cy := sinphi*cxp + cosphi*cyp + (start.Y+end.Y)/2.0

	theta := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	delta := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx) - theta
	if !sweep && 0.0 < delta {
		delta -= 2.0 * math.Pi
	} else if sweep && delta < 0.0 {
		delta += 2.0 * math.Pi
	}
	return Point{cx, cy}, rx, ry, theta, theta + delta
}

func ellipsePos(center Point, rx, ry, phi, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	return Point{
		center.X + rx*costheta*cosphi - ry*sintheta*sinphi,
		center.Y + rx*costheta*sinphi + ry*sintheta*cosphi,
	}
}

func ellipseDeriv(rx, ry, phi, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	return Point{
		-rx*sintheta*cosphi - ry*costheta*sinphi,
		-rx*sintheta*sinphi + ry*costheta*cosphi,
	}
}

// arcToCubics appends cubic Bézier approximations of the elliptical arc to p,
// cutting the sweep into slices of at most 90 degrees
// see https://pomax.github.io/bezierinfo/#circles_cubic
func arcToCubics(p *Path, start Point, rx, ry, rot float64, large, sweep bool, end Point) {
	center, rx, ry, theta0, theta1 := ellipseToCenter(start, rx, ry, rot, large, sweep, end)
	if Equal(rx, 0.0) || Equal(ry, 0.0) || Equal(theta0, theta1) {
		p.LineTo(end.X, end.Y)
		return
	}
	phi := rot * math.Pi / 180.0

	n := int(math.Ceil(math.Abs(theta1-theta0) / (0.5 * math.Pi)))
	dtheta := (theta1 - theta0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(dtheta/4.0)
	for i := 0; i < n; i++ {
		ta := theta0 + float64(i)*dtheta
		tb := ta + dtheta
		pa, pb := ellipsePos(center, rx, ry, phi, ta), ellipsePos(center, rx, ry, phi, tb)
		cp1 := pa.Add(ellipseDeriv(rx, ry, phi, ta).Mul(k))
		cp2 := pb.Sub(ellipseDeriv(rx, ry, phi, tb).Mul(k))
		if i == n-1 {
			// end exactly on the given endpoint
			pb = end
		}
		p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, pb.X, pb.Y)
	}
}

////////////////////////////////////////////////////////////////

func num(f float64) string {
	return stdstrconv.FormatFloat(f, 'g', -1, 64)
}

// String returns the SVG path data representation of the path.
func (p *Path) String() string {
	sb := strings.Builder{}
	for _, sp := range p.Subpaths {
		if sp.Empty() {
			continue
		}
		start := sp.StartPos()
		fmt.Fprintf(&sb, "M%s %s", num(start.X), num(start.Y))
		n := len(sp.Segments)
		for i, seg := range sp.Segments {
			if sp.Closed && i == n-1 && seg.Kind == LineSeg && seg.End.Equals(start) {
				break // the closing line is implied by z
			}
			switch seg.Kind {
			case QuadSeg:
				fmt.Fprintf(&sb, "Q%s %s %s %s", num(seg.CP1.X), num(seg.CP1.Y), num(seg.End.X), num(seg.End.Y))
			case CubeSeg:
				fmt.Fprintf(&sb, "C%s %s %s %s %s %s", num(seg.CP1.X), num(seg.CP1.Y), num(seg.CP2.X), num(seg.CP2.Y), num(seg.End.X), num(seg.End.Y))
			default:
				fmt.Fprintf(&sb, "L%s %s", num(seg.End.X), num(seg.End.Y))
			}
		}
		if sp.Closed {
			sb.WriteByte('z')
		}
	}
	return sb.String()
}
