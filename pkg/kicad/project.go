package kicad

import (
	"encoding/json"
	"io"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// Project mirrors the KiCad 6 .kicad_pro JSON schema for the sections
// this generator populates.
type Project struct {
	Board         ProjectBoard           `json:"board"`
	Meta          ProjectMeta            `json:"meta"`
	NetSettings   ProjectNetSettings     `json:"net_settings"`
	PCBNew        map[string]interface{} `json:"pcbnew"`
	Schematic     map[string]interface{} `json:"schematic"`
	Sheets        []interface{}          `json:"sheets"`
	TextVariables map[string]string      `json:"text_variables"`
}

type ProjectBoard struct {
	DesignSettings DesignSettings `json:"design_settings"`
	LayerCount     int            `json:"layer_count"`
	Units          string         `json:"units"`
}

type DesignSettings struct {
	Defaults      DesignDefaults `json:"defaults"`
	Rules         DesignRules    `json:"rules"`
	TrackWidths   []float64      `json:"track_widths"`
	ViaDimensions []ViaDimension `json:"via_dimensions"`
}

type DesignDefaults struct {
	BoardOutlineLineWidth float64 `json:"board_outline_line_width"`
	CopperLineWidth       float64 `json:"copper_line_width"`
}

type DesignRules struct {
	MinCopperEdgeClearance float64 `json:"min_copper_edge_clearance"`
	MinTrackWidth          float64 `json:"min_track_width"`
	MinViaDrill            float64 `json:"min_via_drill"`
}

type ViaDimension struct {
	Diameter float64 `json:"diameter"`
	Drill    float64 `json:"drill"`
}

type ProjectMeta struct {
	Filename string `json:"filename"`
	Version  int    `json:"version"`
}

type ProjectNetSettings struct {
	Classes []NetClass `json:"classes"`
}

type NetClass struct {
	Name        string  `json:"name"`
	Clearance   float64 `json:"clearance"`
	TrackWidth  float64 `json:"track_width"`
	ViaDiameter float64 `json:"via_diameter"`
	ViaDrill    float64 `json:"via_drill"`
}

// BuildProject projects the board model onto the project descriptor:
// board name, layer count, units, and the design rules the model
// declares.
func BuildProject(b *board.Board) Project {
	// Distinct trace widths in model order.
	var widths []float64
	seen := make(map[float64]bool)
	for _, net := range b.Nets() {
		if !seen[net.TraceWidth] {
			seen[net.TraceWidth] = true
			widths = append(widths, net.TraceWidth)
		}
	}

	return Project{
		Board: ProjectBoard{
			DesignSettings: DesignSettings{
				Defaults: DesignDefaults{
					BoardOutlineLineWidth: 0.1,
					CopperLineWidth:       0.2,
				},
				Rules: DesignRules{
					MinCopperEdgeClearance: 0.5,
					MinTrackWidth:          b.MinTrackWidth(),
					MinViaDrill:            b.MinDrillSize(),
				},
				TrackWidths:   widths,
				ViaDimensions: []ViaDimension{{Diameter: 0.6, Drill: 0.3}},
			},
			LayerCount: b.LayerCount(),
			Units:      "mm",
		},
		Meta: ProjectMeta{
			Filename: b.Name() + ".kicad_pro",
			Version:  1,
		},
		NetSettings: ProjectNetSettings{
			Classes: []NetClass{{
				Name:        "Default",
				Clearance:   0.2,
				TrackWidth:  b.MinTrackWidth(),
				ViaDiameter: 0.6,
				ViaDrill:    0.3,
			}},
		},
		PCBNew:        map[string]interface{}{},
		Schematic:     map[string]interface{}{},
		Sheets:        []interface{}{},
		TextVariables: map[string]string{},
	}
}

// EmitProject serializes the project descriptor as .kicad_pro JSON.
func EmitProject(b *board.Board, w io.Writer) error {
	data, err := json.MarshalIndent(BuildProject(b), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
