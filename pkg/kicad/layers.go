// Package kicad serializes the board model into a KiCad 6+ project
// descriptor and PCB geometry file pair, and re-extracts identity data
// from emitted files for round-trip verification.
package kicad

import (
	"fmt"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// PCB file format version emitted (KiCad 6).
const formatVersion = 20211014

// edgeCutsNumber is KiCad's fixed layer number for the board outline.
const edgeCutsNumber = 44

// layerName maps a model layer index (1..N) to KiCad's copper layer
// naming: F.Cu on top, B.Cu on the bottom, In<k>.Cu between.
func layerName(index, layerCount int) string {
	switch index {
	case 1:
		return "F.Cu"
	case layerCount:
		return "B.Cu"
	default:
		return fmt.Sprintf("In%d.Cu", index-1)
	}
}

// layerNumber maps a model layer index to KiCad's copper layer
// numbering: 0 for F.Cu, 31 for B.Cu, ordinals between.
func layerNumber(index, layerCount int) int {
	switch index {
	case 1:
		return 0
	case layerCount:
		return 31
	default:
		return index - 1
	}
}

// layerType maps a model layer role to a KiCad layer type keyword.
func layerType(role board.LayerRole) string {
	switch role {
	case board.RolePower, board.RoleGround:
		return "power"
	case board.RoleMixed:
		return "mixed"
	default:
		return "signal"
	}
}

// sideLayer returns the outer copper layer for a placement side.
func sideLayer(side board.Side) string {
	if side == board.SideBottom {
		return "B.Cu"
	}
	return "F.Cu"
}

// normalizeRotation maps any rotation to the [0, 360) range.
func normalizeRotation(deg float64) float64 {
	r := deg
	for r < 0 {
		r += 360
	}
	for r >= 360 {
		r -= 360
	}
	return r
}
