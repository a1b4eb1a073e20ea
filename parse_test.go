package pathclip

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseSVGPath(t *testing.T) {
	var tts = []struct {
		data string
		out  string
	}{
		{"M10 0L20 10", "M10 0L20 10"},
		{"m10 0l10 10", "M10 0L20 10"},
		{"M10,0 20,10", "M10 0L20 10"}, // implicit lineto
		{"m10 0 10 10", "M10 0L20 10"},
		{"M0 0H10V10z", "M0 0L10 0L10 10z"},
		{"M0 0h10v10h-10z", "M0 0L10 0L10 10L0 10z"},
		{"M0 0Q5 10 10 0", "M0 0Q5 10 10 0"},
		{"M0 0q5 10 10 0", "M0 0Q5 10 10 0"},
		{"M0 0C0 10 10 10 10 0", "M0 0C0 10 10 10 10 0"},
		{"M0 0c0 10 10 10 10 0", "M0 0C0 10 10 10 10 0"},
		{"M0 0Q5 10 10 0T20 0", "M0 0Q5 10 10 0Q15 -10 20 0"},
		{"M0 0C0 10 10 10 10 0S20 -10 20 0", "M0 0C0 10 10 10 10 0C10 -10 20 -10 20 0"},
		{"M0 0L10 0T20 0", "M0 0L10 0Q10 0 20 0"}, // T without preceding Q
		{"M0 0L10 0M20 0L30 0", "M0 0L10 0M20 0L30 0"},
		{"M0 0L10 0z", "M0 0L10 0z"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			p, err := ParseSVGPath(tt.data)
			test.Error(t, err)
			test.T(t, p.String(), tt.out)
		})
	}
}

func TestParseSVGPathArc(t *testing.T) {
	p := MustParseSVGPath("M0 0A5 5 0 0 1 10 0")
	test.T(t, len(p.Subpaths), 1)
	segs := p.Subpaths[0].Segments
	test.T(t, len(segs), 2) // half circle cut into two slices
	for _, seg := range segs {
		test.T(t, seg.Kind, CubeSeg)
	}
	test.T(t, segs[0].Start, Point{0.0, 0.0})
	test.T(t, segs[1].End, Point{10.0, 0.0}) // exact, not approximated

	// a half circle's center is the chord midpoint, the approximation stays
	// within a fraction of a percent of the radius
	center := Point{5.0, 0.0}
	for _, seg := range segs {
		for _, f := range []float64{0.25, 0.5, 0.75} {
			r := seg.Pos(f).Sub(center).Length()
			test.That(t, math.Abs(r-5.0) < 0.01, "radius:", r)
		}
	}

	// zero radius degrades to a line
	p = MustParseSVGPath("M0 0A0 5 0 0 1 10 0")
	test.T(t, p.Subpaths[0].Segments[0], Line(Point{0.0, 0.0}, Point{10.0, 0.0}))
}

func TestParseSVGPathErrors(t *testing.T) {
	var tts = []string{
		"M0 0L",
		"M0",
		"x10 0",
		"M0 0A5 5 0 0",
		"10 0",
		"M0 0Lfoo bar",
	}
	for i, data := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := ParseSVGPath(data)
			test.That(t, err != nil, "expected parse error for", data)
		})
	}
}
