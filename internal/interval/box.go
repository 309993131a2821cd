package interval

import (
	"fmt"
)

// Box is the rectangle X x Y of integer points.
type Box struct {
	X, Y Interval
}

func NewBox(x0, x1, y0, y1 int64) (Box, error) {
	x, err := New(x0, x1)
	if err != nil {
		return Box{}, err
	}
	y, err := New(y0, y1)
	if err != nil {
		return Box{}, err
	}
	return Box{X: x, Y: y}, nil
}

func (b Box) Area() int64 {
	return b.X.Len() * b.Y.Len()
}

func (b Box) Intersects(o Box) bool {
	return b.X.Intersects(o.X) && b.Y.Intersects(o.Y)
}

// Difference cuts b around o and returns the pieces of b outside o. Strips
// are taken left, right, top, then bottom, each spanning what is left of b at
// that point. If b and o are disjoint the result is just b.
func (b Box) Difference(o Box) []Box {
	if !b.Intersects(o) {
		return []Box{b}
	}
	var pieces []Box
	rest := b
	if o.X.A > rest.X.A {
		pieces = append(pieces, Box{X: Interval{rest.X.A, o.X.A - 1}, Y: rest.Y})
		rest.X.A = o.X.A
	}
	if o.X.B < rest.X.B {
		pieces = append(pieces, Box{X: Interval{o.X.B + 1, rest.X.B}, Y: rest.Y})
		rest.X.B = o.X.B
	}
	if o.Y.A > rest.Y.A {
		pieces = append(pieces, Box{X: rest.X, Y: Interval{rest.Y.A, o.Y.A - 1}})
		rest.Y.A = o.Y.A
	}
	if o.Y.B < rest.Y.B {
		pieces = append(pieces, Box{X: rest.X, Y: Interval{o.Y.B + 1, rest.Y.B}})
	}
	return pieces
}

func (b Box) String() string {
	return fmt.Sprintf("%v x %v", b.X, b.Y)
}
