package pathclip

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestClip(t *testing.T) {
	square := "M0 0L10 0L10 10L0 10z"
	var tts = []struct {
		p, clip string
		invert  bool
		out     []string
	}{
		// line crossing the square is cut at both edges
		{"M-5 5L15 5", square, false, []string{"M0 5L10 5"}},
		{"M-5 5L15 5", square, true, []string{"M-5 5L0 5", "M10 5L15 5"}},
		// entirely inside
		{"M2 2L8 8", square, false, []string{"M2 2L8 8"}},
		{"M2 2L8 8", square, true, nil},
		// entirely outside
		{"M20 0L30 10", square, false, nil},
		{"M20 0L30 10", square, true, []string{"M20 0L30 10"}},
		// entering once
		{"M5 5L15 5", square, false, []string{"M5 5L10 5"}},
		{"M5 5L15 5", square, true, []string{"M10 5L15 5"}},
		// crossing twice through two edges
		{"M5 -5L5 15", square, false, []string{"M5 0L5 10"}},
		{"M5 -5L5 15", square, true, []string{"M5 -5L5 0", "M5 10L5 15"}},
		// zig-zag crossing four times
		{"M-5 2L15 2L15 8L-5 8", square, false, []string{"M0 2L10 2", "M10 8L0 8"}},
		// multiple input subpaths are clipped independently
		{"M-5 2L15 2M-5 8L15 8", square, false, []string{"M0 2L10 2", "M0 8L10 8"}},
		// endpoints on the boundary do not produce empty pieces
		{"M0 5L10 5", square, false, []string{"M0 5L10 5"}},
		{"M0 5L10 5", square, true, nil},
		// curve entering through the left edge, its end on the right edge
		{"M-10 2Q0 8 10 2", square, false, []string{"M0 5Q5 5 10 2"}},
		{"M-10 2Q0 8 10 2", square, true, []string{"M-10 2Q-5 5 0 5"}},
		// disjoint clip subpaths wound in opposite directions, their signed
		// areas cancel but the region is not degenerate
		{"M-10 2L30 2", "M0 0L10 0L10 10L0 10zM20 10L30 10L30 0L20 0z", false, []string{"M0 2L10 2", "M20 2L30 2"}},
		{"M-10 2L30 2", "M0 0L10 0L10 10L0 10zM20 10L30 10L30 0L20 0z", true, []string{"M-10 2L0 2", "M10 2L20 2"}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			result, err := Clip(MustParseSVGPath(tt.p), MustParseSVGPath(tt.clip), tt.invert)
			test.Error(t, err)
			test.T(t, len(result), len(tt.out))
			for j := range result {
				test.T(t, result[j].String(), tt.out[j])
			}
		})
	}
}

func TestClipTangent(t *testing.T) {
	// the quad touches the top edge of the square below it in a single
	// point, the path must not be broken there nor gain zero-length pieces
	quad := MustParseSVGPath("M0 1Q5 -1 10 1")
	square := MustParseSVGPath("M0 -10L10 -10L10 0L0 0z")

	result, err := Clip(quad, square, false)
	test.Error(t, err)
	test.T(t, len(result), 0)

	result, err = Clip(quad, square, true)
	test.Error(t, err)
	test.T(t, len(result), 1)
	test.T(t, result[0].String(), "M0 1Q2.5 0 5 0Q7.5 0 10 1")
}

func TestClipPartition(t *testing.T) {
	// kept and discarded pieces together cover the input exactly once and
	// meet at the cut points
	p := MustParseSVGPath("M-5 5L15 5L15 -5L5 -5L5 15")
	square := MustParseSVGPath("M0 0L10 0L10 10L0 10z")

	inside, err := Clip(p, square, false)
	test.Error(t, err)
	outside, err := Clip(p, square, true)
	test.Error(t, err)
	test.That(t, 0 < len(inside) && 0 < len(outside))

	count := 0
	for _, q := range append(inside, outside...) {
		for _, sp := range q.Subpaths {
			count += len(sp.Segments)
			test.That(t, !sp.Closed)
		}
	}
	// every piece boundary appears in both results, so the segment count
	// equals the input segments plus twice the interior cuts
	cuts := 4 // at x=0 and x=10 on the first segment, at y=0 and y=10 on the last
	test.T(t, count, p.Len()+cuts)
}

func TestClipIdempotent(t *testing.T) {
	p := MustParseSVGPath("M-5 5L15 5")
	square := MustParseSVGPath("M0 0L10 0L10 10L0 10z")

	once, err := Clip(p, square, false)
	test.Error(t, err)
	test.T(t, len(once), 1)

	twice, err := Clip(once[0], square, false)
	test.Error(t, err)
	test.T(t, len(twice), 1)
	test.T(t, twice[0].String(), once[0].String())
}

func TestClipFillRule(t *testing.T) {
	// outer square with an inner square: even-odd treats the inner square
	// as a hole, nonzero does not since both wind the same way
	doubled := MustParseSVGPath("M0 0L10 0L10 10L0 10zM2 2L8 2L8 8L2 8z")
	p := MustParseSVGPath("M-5 5L15 5")

	result, err := Clipper{FillRule: EvenOdd}.Clip(p, doubled)
	test.Error(t, err)
	test.T(t, len(result), 2)
	test.T(t, result[0].String(), "M0 5L2 5")
	test.T(t, result[1].String(), "M8 5L10 5")

	result, err = Clipper{FillRule: NonZero}.Clip(p, doubled)
	test.Error(t, err)
	test.T(t, len(result), 1)
	test.T(t, result[0].String(), "M0 5L2 5L8 5L10 5")
}

func TestClipEmpty(t *testing.T) {
	square := MustParseSVGPath("M0 0L10 0L10 10L0 10z")
	result, err := Clip(&Path{}, square, false)
	test.Error(t, err)
	test.T(t, len(result), 0)
}

func TestClipErrors(t *testing.T) {
	open := MustParseSVGPath("M-5 5L15 5")
	square := MustParseSVGPath("M0 0L10 0L10 10L0 10z")

	var tts = []struct {
		p, clip *Path
		want    error
	}{
		{square, square, ErrInvalidOperandKind},                          // subject is closed
		{open, open, ErrInvalidOperandKind},                              // clip is open
		{open, &Path{}, ErrDegenerateClipRegion},                         // clip is empty
		{open, MustParseSVGPath("M0 0L10 0z"), ErrDegenerateClipRegion},  // two points
		{open, MustParseSVGPath("M0 0L5 0L10 0z"), ErrDegenerateClipRegion}, // collinear, zero area
		{open, MustParseSVGPath("M0 0L0.0000001 0L0 0.0000001z"), ErrDegenerateClipRegion},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := Clip(tt.p, tt.clip, false)
			test.That(t, err != nil, "expected error")
			test.That(t, errors.Is(err, tt.want), "got:", err)
		})
	}
}

func TestClipNumericalFailure(t *testing.T) {
	// a clip boundary partially coincident with the subject curve cannot be
	// resolved by subdivision
	cube := Cube(Point{0.0, -5.0}, Point{3.0, 5.0}, Point{7.0, 5.0}, Point{10.0, -5.0})
	_, c1 := cube.Split(0.25)
	sub, _ := c1.Split(2.0 / 3.0)

	p := &Path{}
	p.MoveTo(cube.Start.X, cube.Start.Y)
	p.append(cube)

	clip := &Path{}
	clip.MoveTo(sub.Start.X, sub.Start.Y)
	clip.append(sub)
	clip.LineTo(5.0, -20.0)
	clip.Close()

	_, err := Clip(p, clip, false)
	test.That(t, err != nil)
	test.That(t, errors.Is(err, ErrNumericalFailure), "got:", err)
	var cerr *Error
	test.That(t, errors.As(err, &cerr))
	test.T(t, cerr.Subpath, 0)
	test.T(t, cerr.Seg, 0)

	// with multiple subject subpaths the error locates the offending one
	p2 := &Path{}
	p2.MoveTo(-20.0, 0.0)
	p2.LineTo(-15.0, 0.0)
	p2.MoveTo(cube.Start.X, cube.Start.Y)
	p2.append(cube)
	_, err = Clip(p2, clip, false)
	test.That(t, errors.As(err, &cerr))
	test.T(t, cerr.Subpath, 1)
	test.T(t, cerr.Seg, 0)
}

func TestClipConfiguredTolerance(t *testing.T) {
	p := MustParseSVGPath("M5 -5L5 5")
	sliver := MustParseSVGPath("M0 0L10 0L10 0.005L0 0.005z")

	// the default tolerance clips against the sliver
	result, err := Clip(p, sliver, false)
	test.Error(t, err)
	test.T(t, len(result), 1)

	// a coarse tolerance rejects it as degenerate
	_, err = Clipper{Tolerance: 0.1}.Clip(p, sliver)
	test.That(t, errors.Is(err, ErrDegenerateClipRegion), "got:", err)
}
