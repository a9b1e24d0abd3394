package board

import (
	"fmt"
	"sort"
)

// Description is the raw input a Board is constructed from. It mirrors
// the board description file one-to-one and carries no invariants of its
// own; New validates everything.
type Description struct {
	Name          string
	Outline       []Position
	Layers        []Layer
	Nets          []Net
	Footprints    []Footprint
	Vias          []Via
	MinTrackWidth float64 // Minimum allowed trace width in mm
	MinDrillSize  float64 // Minimum allowed finished hole diameter in mm
}

// Board is the validated, immutable board model. All emitters read from
// it through accessors and never mutate it.
type Board struct {
	name          string
	outline       []Position
	bounds        BoundingBox
	layers        []Layer // sorted by index
	nets          []Net
	footprints    []Footprint
	byReference   map[string]int
	vias          []Via
	minTrackWidth float64
	minDrillSize  float64
}

// New constructs a Board from a description, checking every model
// invariant up front. It returns a *ValidationError describing the first
// inconsistency found; emitters may assume any Board they receive is
// fully valid.
func New(desc Description) (*Board, error) {
	if err := validateOutline(desc.Outline); err != nil {
		return nil, err
	}
	bounds := outlineBounds(desc.Outline)

	layers, err := validateLayers(desc.Layers)
	if err != nil {
		return nil, err
	}

	byRef := make(map[string]int, len(desc.Footprints))
	for i, fp := range desc.Footprints {
		if fp.Reference == "" {
			return nil, validationErrorf(fmt.Sprintf("footprint %d", i), "missing reference designator")
		}
		if _, dup := byRef[fp.Reference]; dup {
			return nil, validationErrorf(fmt.Sprintf("footprint %q", fp.Reference), "duplicate reference designator")
		}
		byRef[fp.Reference] = i

		if fp.Side != SideTop && fp.Side != SideBottom {
			return nil, validationErrorf(fmt.Sprintf("footprint %q", fp.Reference), "invalid side %q", fp.Side)
		}
		for _, pad := range fp.Pads {
			if pad.IsThroughHole() && pad.Drill < desc.MinDrillSize {
				return nil, validationErrorf(
					fmt.Sprintf("footprint %q pad %q", fp.Reference, pad.Number),
					"drill diameter %.3f mm below board minimum %.3f mm", pad.Drill, desc.MinDrillSize)
			}
			if !bounds.Contains(fp.PadPosition(pad)) {
				return nil, validationErrorf(
					fmt.Sprintf("footprint %q pad %q", fp.Reference, pad.Number),
					"lies outside the board outline extent")
			}
		}
	}

	for _, net := range desc.Nets {
		if err := validateNet(net, desc, byRef); err != nil {
			return nil, err
		}
	}

	for i, via := range desc.Vias {
		entity := fmt.Sprintf("via %d at (%.2f, %.2f)", i+1, via.Position.X, via.Position.Y)
		if via.Drill < desc.MinDrillSize {
			return nil, validationErrorf(entity,
				"hole diameter %.3f mm below board minimum drill size %.3f mm", via.Drill, desc.MinDrillSize)
		}
		if via.SpanStart < 1 || via.SpanEnd > len(layers) || via.SpanStart >= via.SpanEnd {
			return nil, validationErrorf(entity,
				"layer span %d-%d not valid for a %d-layer stack", via.SpanStart, via.SpanEnd, len(layers))
		}
		if !bounds.Contains(via.Position) {
			return nil, validationErrorf(entity, "lies outside the board outline extent")
		}
	}

	return &Board{
		name:          desc.Name,
		outline:       append([]Position(nil), desc.Outline...),
		bounds:        bounds,
		layers:        layers,
		nets:          append([]Net(nil), desc.Nets...),
		footprints:    append([]Footprint(nil), desc.Footprints...),
		byReference:   byRef,
		vias:          append([]Via(nil), desc.Vias...),
		minTrackWidth: desc.MinTrackWidth,
		minDrillSize:  desc.MinDrillSize,
	}, nil
}

func validateOutline(outline []Position) error {
	if len(outline) < 3 {
		return validationErrorf("board outline", "needs at least 3 points, got %d", len(outline))
	}
	if polygonArea(outline) == 0 {
		return validationErrorf("board outline", "has zero area")
	}
	if outlineSelfIntersects(outline) {
		return validationErrorf("board outline", "is self-intersecting")
	}
	return nil
}

func validateLayers(layers []Layer) ([]Layer, error) {
	if len(layers) < 2 {
		return nil, validationErrorf("layer stack", "needs at least 2 layers, got %d", len(layers))
	}

	sorted := append([]Layer(nil), layers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	for i, layer := range sorted {
		if layer.Index != i+1 {
			if i > 0 && layer.Index == sorted[i-1].Index {
				return nil, validationErrorf(fmt.Sprintf("layer %d", layer.Index), "duplicate layer index")
			}
			return nil, validationErrorf(fmt.Sprintf("layer %d", layer.Index),
				"layer indices must be contiguous from 1, expected %d", i+1)
		}
		switch layer.Role {
		case RoleSignal, RolePower, RoleGround, RoleMixed:
		default:
			return nil, validationErrorf(fmt.Sprintf("layer %d", layer.Index), "unknown role %q", layer.Role)
		}
	}

	// Fabrication convention: the outer layers carry components and must
	// be routable.
	for _, outer := range []Layer{sorted[0], sorted[len(sorted)-1]} {
		if outer.Role != RoleSignal && outer.Role != RoleMixed {
			return nil, validationErrorf(fmt.Sprintf("layer %d", outer.Index),
				"outer layer role must be signal or mixed, got %q", outer.Role)
		}
	}
	return sorted, nil
}

func validateNet(net Net, desc Description, byRef map[string]int) error {
	entity := fmt.Sprintf("net %q", net.Name)
	if net.Name == "" {
		return validationErrorf("net", "missing name")
	}
	if net.TraceWidth < desc.MinTrackWidth {
		return validationErrorf(entity,
			"trace width %.3f mm below board minimum track width %.3f mm", net.TraceWidth, desc.MinTrackWidth)
	}
	for _, layer := range net.Layers {
		if layer < 1 || layer > len(desc.Layers) {
			return validationErrorf(entity, "assigned to non-existent layer %d", layer)
		}
	}
	for _, ref := range net.Pads {
		i, ok := byRef[ref.Reference]
		if !ok {
			return validationErrorf(entity, "references non-existent footprint %q", ref.Reference)
		}
		if _, ok := desc.Footprints[i].FindPad(ref.Pad); !ok {
			return validationErrorf(entity,
				"references non-existent pad %q of footprint %q", ref.Pad, ref.Reference)
		}
	}
	return nil
}

// Name returns the board name.
func (b *Board) Name() string { return b.name }

// Outline returns a copy of the board outline polygon.
func (b *Board) Outline() []Position {
	return append([]Position(nil), b.outline...)
}

// Bounds returns the bounding extent of the outline.
func (b *Board) Bounds() BoundingBox { return b.bounds }

// Size returns the outline extent as width and height in mm.
func (b *Board) Size() Size {
	return Size{Width: b.bounds.Width(), Height: b.bounds.Height()}
}

// Layers returns a copy of the layer stack, ordered by index.
func (b *Board) Layers() []Layer {
	return append([]Layer(nil), b.layers...)
}

// LayerCount returns the number of copper layers.
func (b *Board) LayerCount() int { return len(b.layers) }

// Layer returns the layer with the given index (1..N).
func (b *Board) Layer(index int) (Layer, bool) {
	if index < 1 || index > len(b.layers) {
		return Layer{}, false
	}
	return b.layers[index-1], true
}

// Nets returns a copy of the net list in model order.
func (b *Board) Nets() []Net {
	return append([]Net(nil), b.nets...)
}

// Footprints returns a copy of the footprint list in model order.
func (b *Board) Footprints() []Footprint {
	return append([]Footprint(nil), b.footprints...)
}

// Footprint returns the footprint with the given reference designator.
func (b *Board) Footprint(reference string) (Footprint, bool) {
	i, ok := b.byReference[reference]
	if !ok {
		return Footprint{}, false
	}
	return b.footprints[i], true
}

// Vias returns a copy of the via/drill table.
func (b *Board) Vias() []Via {
	return append([]Via(nil), b.vias...)
}

// MinTrackWidth returns the board minimum trace width in mm.
func (b *Board) MinTrackWidth() float64 { return b.minTrackWidth }

// MinDrillSize returns the board minimum finished hole diameter in mm.
func (b *Board) MinDrillSize() float64 { return b.minDrillSize }
