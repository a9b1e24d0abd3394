// Package easyeda serializes the board model into an EasyEDA project
// JSON document. Coordinates stay in millimeters, the same convention
// as the Gerber and KiCad emitters.
package easyeda

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// SchemaError reports a required document key that cannot be populated
// from the board model.
type SchemaError struct {
	Key    string // The schema key that could not be filled
	Entity string // The model entity lacking the data
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("easyeda: cannot populate required key %q from %s", e.Key, e.Entity)
}

// Document is the top-level EasyEDA project JSON schema.
type Document struct {
	Head   Head   `json:"head"`
	Canvas string `json:"canvas"`
	// Layers describes the copper stack in top-to-bottom order.
	Layers []Layer `json:"layers"`
	// Footprints maps reference designator to placement and pads.
	// encoding/json sorts map keys, which keeps the output stable.
	Footprints map[string]Footprint `json:"footprints"`
	// Nets maps net name to the ordered list of connected pad
	// identifiers ("REF.PAD").
	Nets  map[string][]string `json:"nets"`
	Shape []string            `json:"shape"`
	Vias  []Via               `json:"vias"`
}

// Head carries EasyEDA document metadata. DocType 5 is a PCB document.
type Head struct {
	DocType       string `json:"docType"`
	EditorVersion string `json:"editorVersion"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}

type Layer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Footprint struct {
	Package  string  `json:"package"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Side     string  `json:"side"`
	Pads     []Pad   `json:"pads"`
}

type Pad struct {
	Number string  `json:"number"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Shape  string  `json:"shape"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Drill  float64 `json:"drill,omitempty"`
	Net    string  `json:"net,omitempty"`
}

type Via struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Drill  float64 `json:"drill"`
	Plated bool    `json:"plated"`
	Span   [2]int  `json:"span"`
}

// Build projects the board model onto the EasyEDA document, or fails
// with a *SchemaError when a required key has no source data.
func Build(b *board.Board) (*Document, error) {
	doc := &Document{
		Head: Head{
			DocType:       "5",
			EditorVersion: "6.5.0",
			Title:         b.Name(),
			Description:   fmt.Sprintf("%d-layer board generated by photonfab", b.LayerCount()),
		},
		Canvas:     "CA~1000~1000~#000000~yes~#FFFFFF~10~1000~1000~line~0.5~pixel~5~0~0",
		Footprints: make(map[string]Footprint),
		Nets:       make(map[string][]string),
	}

	for _, layer := range b.Layers() {
		doc.Layers = append(doc.Layers, Layer{
			ID:   layer.Index,
			Name: layer.Name,
			Role: string(layer.Role),
		})
	}

	for _, fp := range b.Footprints() {
		if fp.Part == "" {
			return nil, &SchemaError{Key: "package", Entity: fmt.Sprintf("footprint %q", fp.Reference)}
		}
		entry := Footprint{
			Package:  fp.Part,
			X:        fp.Position.X,
			Y:        fp.Position.Y,
			Rotation: fp.Rotation,
			Side:     string(fp.Side),
		}
		for _, pad := range fp.Pads {
			if pad.Number == "" {
				return nil, &SchemaError{Key: "pads.number", Entity: fmt.Sprintf("footprint %q", fp.Reference)}
			}
			if pad.Size.Width <= 0 || pad.Size.Height <= 0 {
				return nil, &SchemaError{
					Key:    "pads.size",
					Entity: fmt.Sprintf("footprint %q pad %q", fp.Reference, pad.Number),
				}
			}
			pos := fp.PadPosition(pad)
			entry.Pads = append(entry.Pads, Pad{
				Number: pad.Number,
				X:      pos.X,
				Y:      pos.Y,
				Shape:  string(pad.Shape),
				Width:  pad.Size.Width,
				Height: pad.Size.Height,
				Drill:  pad.Drill,
				Net:    pad.Net,
			})
		}
		doc.Footprints[fp.Reference] = entry
	}

	for _, net := range b.Nets() {
		pads := make([]string, 0, len(net.Pads))
		for _, ref := range net.Pads {
			pads = append(pads, ref.Reference+"."+ref.Pad)
		}
		doc.Nets[net.Name] = pads
	}

	outline := b.Outline()
	var path strings.Builder
	for i, p := range outline {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s %g %g ", cmd, p.X, p.Y)
	}
	path.WriteString("Z")
	doc.Shape = []string{path.String()}

	for _, via := range b.Vias() {
		doc.Vias = append(doc.Vias, Via{
			X:      via.Position.X,
			Y:      via.Position.Y,
			Drill:  via.Drill,
			Plated: via.Plated,
			Span:   [2]int{via.SpanStart, via.SpanEnd},
		})
	}

	return doc, nil
}

// Emit serializes the board as an EasyEDA JSON document. Nothing is
// written to w unless the whole document built cleanly.
func Emit(b *board.Board, w io.Writer) error {
	doc, err := Build(b)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
