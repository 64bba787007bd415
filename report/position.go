package report

import "fmt"

// Position is a location in source text.  Lines and columns are 1-indexed;
// the offset is the 0-indexed byte offset into the source.
type Position struct {
	Line, Col int
	Offset    int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// TextSpan represents a range or "span" of source text.  It is used to specify
// erroneous or otherwise significant source text in an ark program.  The span
// begins at Pos and covers Length bytes of source text.
type TextSpan struct {
	// The position of the first character in the span.
	Pos Position

	// The number of source bytes the span covers.
	Length int
}

// End returns the byte offset one past the last character of the span.
func (s *TextSpan) End() int {
	return s.Pos.Offset + s.Length
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	length := end.End() - start.Pos.Offset
	if length < 0 {
		length = 0
	}

	return &TextSpan{
		Pos:    start.Pos,
		Length: length,
	}
}
