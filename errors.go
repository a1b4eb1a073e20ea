package pathclip

import "fmt"

// ErrorKind discriminates the failure modes of Clip.
type ErrorKind int

const (
	// InvalidOperandKind indicates the subject path was closed or the clip
	// path was open.
	InvalidOperandKind ErrorKind = iota
	// DegenerateClipRegion indicates the clip path encloses no usable area.
	DegenerateClipRegion
	// NumericalFailure indicates intersection finding did not converge for a
	// pair of segments.
	NumericalFailure
)

// Error reports why a clip operation failed. For numerical failures, Subpath
// and Seg locate the offending segment within the subject path and ClipSeg
// the clip segment it was intersected with; all three are -1 otherwise.
type Error struct {
	Kind    ErrorKind
	Op      string
	Subpath int
	Seg     int
	ClipSeg int
}

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidOperandKind   error = &Error{Kind: InvalidOperandKind, Subpath: -1, Seg: -1, ClipSeg: -1}
	ErrDegenerateClipRegion error = &Error{Kind: DegenerateClipRegion, Subpath: -1, Seg: -1, ClipSeg: -1}
	ErrNumericalFailure     error = &Error{Kind: NumericalFailure, Subpath: -1, Seg: -1, ClipSeg: -1}
)

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidOperandKind:
		return fmt.Sprintf("invalid operand: %s", e.Op)
	case DegenerateClipRegion:
		return "degenerate clip region: " + e.Op
	case NumericalFailure:
		return fmt.Sprintf("intersection did not converge between segment %d of subpath %d and clip segment %d", e.Seg, e.Subpath, e.ClipSeg)
	}
	return "unknown error"
}

// Is matches errors of the same kind, so that errors.Is(err, ErrNumericalFailure)
// works regardless of the offending segment indices.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
