package gerber

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// Flash is one D03 operation recovered from an emitted stream, resolved
// against the stream's own aperture dictionary.
type Flash struct {
	Code     int
	Shape    board.PadShape
	Size     board.Size
	Position board.Position
}

var (
	apertureRe = regexp.MustCompile(`^%ADD(\d+)([CRO]),([0-9.]+)(?:X([0-9.]+))?\*%$`)
	selectRe   = regexp.MustCompile(`^D(\d+)\*$`)
	opRe       = regexp.MustCompile(`^X(-?\d+)Y(-?\d+)D0([123])\*$`)
)

// ParseFlashes re-reads an emitted RS-274X stream and returns its
// aperture dictionary and pad flashes. It understands exactly the
// command subset this package emits; it exists so tests can verify the
// round-trip property without an external Gerber viewer.
func ParseFlashes(r io.Reader) (map[int]Aperture, []Flash, error) {
	apertures := make(map[int]Aperture)
	var flashes []Flash
	current := 0
	sawEOF := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := apertureRe.FindStringSubmatch(line); m != nil {
			code, _ := strconv.Atoi(m[1])
			width, _ := strconv.ParseFloat(m[3], 64)
			ap := Aperture{Code: code, Size: board.Size{Width: width, Height: width}}
			switch m[2] {
			case "C":
				ap.Shape = board.ShapeCircle
				ap.Circle = true
			case "R":
				ap.Shape = board.ShapeRect
			case "O":
				ap.Shape = board.ShapeOval
			}
			if m[4] != "" {
				ap.Size.Height, _ = strconv.ParseFloat(m[4], 64)
			}
			apertures[code] = ap
			continue
		}

		if m := selectRe.FindStringSubmatch(line); m != nil {
			current, _ = strconv.Atoi(m[1])
			continue
		}

		if m := opRe.FindStringSubmatch(line); m != nil && m[3] == "3" {
			if current == 0 {
				return nil, nil, fmt.Errorf("gerber: flash before aperture selection")
			}
			ap, ok := apertures[current]
			if !ok {
				return nil, nil, fmt.Errorf("gerber: flash with undefined aperture D%d", current)
			}
			x, _ := strconv.ParseInt(m[1], 10, 64)
			y, _ := strconv.ParseInt(m[2], 10, 64)
			flashes = append(flashes, Flash{
				Code:     current,
				Shape:    ap.Shape,
				Size:     ap.Size,
				Position: board.Position{X: float64(x) / 1e6, Y: float64(y) / 1e6},
			})
			continue
		}

		if line == "M02*" {
			sawEOF = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if !sawEOF {
		return nil, nil, fmt.Errorf("gerber: stream not terminated by M02")
	}

	return apertures, flashes, nil
}
