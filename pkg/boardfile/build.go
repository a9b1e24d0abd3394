package boardfile

import (
	"io"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// Description converts the parse tree into a raw board description.
// Model invariants are not checked here; board.New does that.
func (f *File) Description() board.Description {
	decl := f.Board
	desc := board.Description{Name: unquote(decl.Name)}

	for _, item := range decl.Items {
		switch {
		case item.Outline != nil:
			for _, p := range item.Outline.Points {
				desc.Outline = append(desc.Outline, board.Position{X: p.X, Y: p.Y})
			}
		case item.MinTrack != nil:
			desc.MinTrackWidth = *item.MinTrack
		case item.MinDrill != nil:
			desc.MinDrillSize = *item.MinDrill
		case item.Layer != nil:
			desc.Layers = append(desc.Layers, buildLayer(item.Layer))
		case item.Footprint != nil:
			desc.Footprints = append(desc.Footprints, buildFootprint(item.Footprint))
		case item.Net != nil:
			desc.Nets = append(desc.Nets, buildNet(item.Net))
		case item.Via != nil:
			v := item.Via
			desc.Vias = append(desc.Vias, board.Via{
				Position:  board.Position{X: v.Position.X, Y: v.Position.Y},
				Drill:     v.Drill,
				Plated:    v.Plated,
				SpanStart: v.SpanStart,
				SpanEnd:   v.SpanEnd,
			})
		}
	}
	return desc
}

func buildLayer(decl *LayerDecl) board.Layer {
	layer := board.Layer{
		Index: decl.Index,
		Name:  unquote(decl.Name),
		Role:  board.LayerRole(decl.Role),
	}
	for _, prop := range decl.Props {
		switch {
		case prop.Material != nil:
			layer.Material = unquote(*prop.Material)
		case prop.Impedance != nil:
			layer.Impedance = *prop.Impedance
		case prop.DiffImpedance != nil:
			layer.DiffImpedance = *prop.DiffImpedance
		case prop.Copper != nil:
			layer.CopperWeightOz = *prop.Copper
		}
	}
	return layer
}

func buildFootprint(decl *FootprintDecl) board.Footprint {
	fp := board.Footprint{
		Reference: decl.Reference,
		Part:      unquote(decl.Part),
	}
	for _, prop := range decl.Props {
		switch {
		case prop.At != nil:
			fp.Position = board.Position{X: prop.At.Position.X, Y: prop.At.Position.Y}
			if prop.At.Rotation != nil {
				fp.Rotation = *prop.At.Rotation
			}
			fp.Side = board.Side(prop.At.Side)
		case prop.Description != nil:
			fp.Description = unquote(*prop.Description)
		case prop.Manufacturer != nil:
			fp.Manufacturer = unquote(*prop.Manufacturer)
		case prop.Pad != nil:
			fp.Pads = append(fp.Pads, buildPad(prop.Pad))
		}
	}
	return fp
}

func buildPad(decl *PadDecl) board.Pad {
	pad := board.Pad{
		Number: unquote(decl.Number),
		Shape:  board.PadShape(decl.Shape),
		Offset: board.Position{X: decl.Offset.X, Y: decl.Offset.Y},
		Size:   board.Size{Width: decl.Size.Width, Height: decl.Size.Width},
	}
	if decl.Size.Height != nil {
		pad.Size.Height = *decl.Size.Height
	}
	if decl.Drill != nil {
		pad.Drill = *decl.Drill
	}
	if decl.Net != nil {
		pad.Net = unquote(*decl.Net)
	}
	return pad
}

func buildNet(decl *NetDecl) board.Net {
	net := board.Net{Name: unquote(decl.Name)}
	for _, prop := range decl.Props {
		switch {
		case prop.Width != nil:
			net.TraceWidth = *prop.Width
		case prop.Clearance != nil:
			net.Clearance = *prop.Clearance
		case len(prop.Layers) > 0:
			net.Layers = append(net.Layers, prop.Layers...)
		case len(prop.Pads) > 0:
			for _, ref := range prop.Pads {
				net.Pads = append(net.Pads, board.PadRef{Reference: ref.Reference, Pad: ref.Pad})
			}
		}
	}
	return net
}

// Load parses a board description from a reader and constructs the
// validated model. Parse errors and model validation errors are
// distinguishable: the latter are *board.ValidationError.
func Load(r io.Reader) (*board.Board, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return board.New(file.Description())
}

// LoadFile parses a board description file and constructs the model.
func LoadFile(filename string) (*board.Board, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := p.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	return board.New(file.Description())
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
