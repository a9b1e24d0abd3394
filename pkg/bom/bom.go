// Package bom projects the footprint list into a bill of materials:
// footprints grouped by part number with computed quantities.
package bom

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// IncompleteBOMError reports a footprint that lacks the part identifier
// needed for its BOM row.
type IncompleteBOMError struct {
	Reference string
}

func (e *IncompleteBOMError) Error() string {
	return fmt.Sprintf("bom: footprint %q has no part number", e.Reference)
}

// Line is one BOM row: all footprints sharing a part number.
type Line struct {
	References   []string // Reference designators, model order within the group
	Description  string
	Manufacturer string
	Part         string
	Quantity     int
}

var header = []string{"Designator", "Description", "Manufacturer", "MPN", "Qty"}

// Build groups the board's footprints by part number. Rows are ordered
// by the first member's reference designator, ascending, with numeric
// suffixes compared naturally (U2 before U10).
func Build(b *board.Board) ([]Line, error) {
	byPart := make(map[string]int)
	var lines []Line

	for _, fp := range b.Footprints() {
		if fp.Part == "" {
			return nil, &IncompleteBOMError{Reference: fp.Reference}
		}
		i, ok := byPart[fp.Part]
		if !ok {
			i = len(lines)
			byPart[fp.Part] = i
			lines = append(lines, Line{
				Description:  fp.Description,
				Manufacturer: fp.Manufacturer,
				Part:         fp.Part,
			})
		}
		lines[i].References = append(lines[i].References, fp.Reference)
		lines[i].Quantity++
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return refLess(lines[i].References[0], lines[j].References[0])
	})
	return lines, nil
}

// EmitCSV writes the BOM as comma-separated text with a header row.
func EmitCSV(lines []Line, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, line := range lines {
		record := []string{
			strings.Join(line.References, " "),
			line.Description,
			line.Manufacturer,
			line.Part,
			strconv.Itoa(line.Quantity),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EmitXLSX writes the same table as an Excel workbook.
func EmitXLSX(lines []Line, w io.Writer) error {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]

	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}

	for i, line := range lines {
		row := []interface{}{
			strings.Join(line.References, " "),
			line.Description,
			line.Manufacturer,
			line.Part,
			line.Quantity,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// refLess compares reference designators with their numeric suffix
// compared as a number, so U2 sorts before U10.
func refLess(a, b string) bool {
	pa, na := splitRef(a)
	pb, nb := splitRef(b)
	if pa != pb {
		return pa < pb
	}
	return na < nb
}

func splitRef(ref string) (string, int) {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		i++
	}
	n, _ := strconv.Atoi(ref[i:])
	return ref[:i], n
}
