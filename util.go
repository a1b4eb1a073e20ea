package pathclip

import (
	"fmt"
	"math"
)

// Epsilon is the default tolerance used for point coincidence, intersection
// deduplication and boundary nudging. It can be overridden per clip through
// Clipper.Tolerance.
const Epsilon = 1e-6

// Equal returns true if a and b are equal within Epsilon.
func Equal(a, b float64) bool {
	return equal(a, b, Epsilon)
}

func equal(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Interval returns true if f is in the closed interval [lower,upper] allowing
// for a tolerance of Epsilon on both ends.
func Interval(f, lower, upper float64) bool {
	return inInterval(f, lower, upper, Epsilon)
}

func inInterval(f, lower, upper, tol float64) bool {
	return lower-tol <= f && f <= upper+tol
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space. OP refers to the line that goes through the origin (0,0) and this point (x,y).
type Point struct {
	X, Y float64
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Neg negates x and y.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Div divides x and y by f.
func (p Point) Div(f float64) Point {
	return Point{p.X / f, p.Y / f}
}

// Dot returns the dot product between OP and OQ, ie. zero if perpendicular and |OP|*|OQ| if aligned.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned and |OP|*|OQ| if perpendicular.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Angle returns the angle between the x-axis and OP.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Norm normalizes OP to be of certain length.
func (p Point) Norm(length float64) Point {
	d := p.Length()
	if Equal(d, 0.0) {
		return Point{}
	}
	return Point{p.X / d * length, p.Y / d * length}
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie. t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned bounding rectangle between (X0,Y0) and (X1,Y1),
// where X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Union returns the smallest rectangle containing both r and q.
func (r Rect) Union(q Rect) Rect {
	return Rect{
		math.Min(r.X0, q.X0),
		math.Min(r.Y0, q.Y0),
		math.Max(r.X1, q.X1),
		math.Max(r.Y1, q.Y1),
	}
}

// Overlaps returns true if rectangles r and q overlap when both are inflated
// by d on all sides.
func (r Rect) Overlaps(q Rect, d float64) bool {
	return q.X0-d <= r.X1+d && r.X0-d <= q.X1+d && q.Y0-d <= r.Y1+d && r.Y0-d <= q.Y1+d
}

// Contains returns true if the point p is inside the rectangle inflated by d.
func (r Rect) Contains(p Point, d float64) bool {
	return r.X0-d <= p.X && p.X <= r.X1+d && r.Y0-d <= p.Y && p.Y <= r.Y1+d
}

// W returns the width of the rectangle.
func (r Rect) W() float64 {
	return r.X1 - r.X0
}

// H returns the height of the rectangle.
func (r Rect) H() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.X0, r.Y0, r.X1, r.Y1)
}

////////////////////////////////////////////////////////////////

// Numerically stable quadratic formula, lowest root is returned first
// see https://math.stackexchange.com/a/2007723
func solveQuadraticFormula(a, b, c float64) (float64, float64) {
	if a == 0.0 {
		if b == 0.0 {
			if c == 0.0 {
				// all terms disappear, all x satisfy the solution
				return 0.0, math.NaN()
			}
			// linear term disappears, no solutions
			return math.NaN(), math.NaN()
		}
		// quadratic term disappears, solve linear equation
		return -c / b, math.NaN()
	}

	if c == 0.0 {
		// no constant term, one solution at zero and one from solving linearly
		return 0.0, -b / a
	}

	discriminant := b*b - 4.0*a*c
	if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	} else if discriminant == 0.0 {
		return -b / (2.0 * a), math.NaN()
	}

	// Avoid catastrophic cancellation, which occurs when we subtract two nearly equal numbers and causes a large error
	// this can be the case when 4*a*c is small so that sqrt(discriminant) -> b, and the sign of b and in front of the radical are the same
	// instead we calculate x where b and the radical have different signs, and then use this result in the analytical equivalent
	// of the formula, called the Citardauq Formula.
	q := math.Sqrt(discriminant)
	if b < 0.0 {
		// apply sign of b
		q = -q
	}
	x1 := -(b + q) / (2.0 * a)
	x2 := c / (a * x1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

// Cubic formula using Cardano's method with the trigonometric variant for
// three real roots, solving a*x^3 + b*x^2 + c*x + d = 0. Roots that do not
// exist are NaN.
// see https://pomax.github.io/bezierinfo/#intersections
func solveCubicFormula(a, b, c, d float64) (float64, float64, float64) {
	x1, x2, x3 := math.NaN(), math.NaN(), math.NaN()
	if Equal(a, 0.0) {
		x1, x2 = solveQuadraticFormula(b, c, d)
		return x1, x2, x3
	}

	// obtain monic polynomial: x^3 + bx^2 + cx + d
	b /= a
	c /= a
	d /= a

	// convert to depressed cubic: t^3 + pt + q, with x = t - b/3
	p := (3.0*c - b*b) / 3.0
	q := (2.0*b*b*b - 9.0*b*c + 27.0*d) / 27.0
	discriminant := q*q/4.0 + p*p*p/27.0
	if discriminant < 0.0 {
		// three real roots
		r := math.Sqrt(-p * p * p / 27.0)
		cosphi := math.Min(1.0, math.Max(-1.0, -q/(2.0*r)))
		phi := math.Acos(cosphi)
		t1 := 2.0 * math.Cbrt(r)
		x1 = t1*math.Cos(phi/3.0) - b/3.0
		x2 = t1*math.Cos((phi+2.0*math.Pi)/3.0) - b/3.0
		x3 = t1*math.Cos((phi+4.0*math.Pi)/3.0) - b/3.0
	} else if discriminant == 0.0 {
		// two real roots, one with multiplicity two
		u1 := math.Cbrt(-q / 2.0)
		x1 = 2.0*u1 - b/3.0
		x2 = -u1 - b/3.0
	} else {
		// one real root
		sd := math.Sqrt(discriminant)
		x1 = math.Cbrt(-q/2.0+sd) + math.Cbrt(-q/2.0-sd) - b/3.0
	}
	return x1, x2, x3
}

// Gauss-Legendre quadrature integration from a to b with n=7, exact for
// polynomial integrands up to degree 13
// see https://pomax.github.io/bezierinfo/legendre-gauss.html for more values
func gaussLegendre7(f func(float64) float64, a, b float64) float64 {
	c := (b - a) / 2.0
	d := (a + b) / 2.0
	Qd1 := f(-0.949108*c + d)
	Qd2 := f(-0.741531*c + d)
	Qd3 := f(-0.405845*c + d)
	Qd4 := f(d)
	Qd5 := f(0.405845*c + d)
	Qd6 := f(0.741531*c + d)
	Qd7 := f(0.949108*c + d)
	return c * (0.129485*(Qd1+Qd7) + 0.279705*(Qd2+Qd6) + 0.381830*(Qd3+Qd5) + 0.417959*Qd4)
}
