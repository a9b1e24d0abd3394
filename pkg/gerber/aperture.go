// Package gerber serializes copper and outline layers of a board model
// into RS-274X command streams.
package gerber

import (
	"fmt"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// firstApertureCode is the lowest standard aperture D-code.
const firstApertureCode = 10

// UnsupportedGeometryError reports a pad shape that cannot be expressed
// as an RS-274X standard aperture.
type UnsupportedGeometryError struct {
	Shape  board.PadShape // The offending shape
	Entity string         // Which pad carries it
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("gerber: unsupported pad shape %q on %s", e.Shape, e.Entity)
}

// Aperture is one entry of the aperture dictionary: a distinct
// (shape, size) pair with its assigned D-code.
type Aperture struct {
	Code   int
	Shape  board.PadShape
	Size   board.Size // For circles only Width is meaningful (the diameter)
	Circle bool
}

// Definition returns the %ADD line for the aperture.
func (a Aperture) Definition() string {
	if a.Circle {
		return fmt.Sprintf("%%ADD%dC,%.4f*%%", a.Code, a.Size.Width)
	}
	letter := "R"
	if a.Shape == board.ShapeOval {
		letter = "O"
	}
	return fmt.Sprintf("%%ADD%d%s,%.4fX%.4f*%%", a.Code, letter, a.Size.Width, a.Size.Height)
}

// apertureTable assigns D-codes to distinct (shape, size) pairs in
// first-seen order. Assignment order is the single source of emission
// determinism, so lookups go through an explicit key list, never a map
// iteration.
type apertureTable struct {
	order []Aperture
	codes map[apertureKey]int
}

type apertureKey struct {
	shape  board.PadShape
	width  float64
	height float64
}

func newApertureTable() *apertureTable {
	return &apertureTable{codes: make(map[apertureKey]int)}
}

// circle returns the D-code for a round aperture of the given diameter,
// assigning a new code on first use.
func (t *apertureTable) circle(diameter float64) int {
	return t.assign(apertureKey{shape: board.ShapeCircle, width: diameter, height: diameter}, true)
}

// pad returns the D-code for a pad's shape and size, assigning a new
// code on first use.
func (t *apertureTable) pad(p board.Pad, entity string) (int, error) {
	switch p.Shape {
	case board.ShapeCircle:
		return t.circle(p.Size.Width), nil
	case board.ShapeRect, board.ShapeOval:
		return t.assign(apertureKey{shape: p.Shape, width: p.Size.Width, height: p.Size.Height}, false), nil
	default:
		return 0, &UnsupportedGeometryError{Shape: p.Shape, Entity: entity}
	}
}

func (t *apertureTable) assign(key apertureKey, circle bool) int {
	if code, ok := t.codes[key]; ok {
		return code
	}
	code := firstApertureCode + len(t.order)
	t.codes[key] = code
	t.order = append(t.order, Aperture{
		Code:   code,
		Shape:  key.shape,
		Size:   board.Size{Width: key.width, Height: key.height},
		Circle: circle,
	})
	return code
}

// apertures returns the dictionary in assignment order.
func (t *apertureTable) apertures() []Aperture {
	return t.order
}
