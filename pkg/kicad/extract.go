package kicad

import (
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/sexp"
)

// Identity holds the designator and net-name sets recovered from an
// emitted PCB file. Together with the board model's own sets it forms
// the round-trip invariant: re-extraction must reproduce them exactly.
type Identity struct {
	References []string
	NetNames   []string
}

// ExtractPCB re-parses an emitted .kicad_pcb stream and extracts the
// reference designators and net names it declares. Net 0 (KiCad's
// reserved unconnected net) is skipped.
func ExtractPCB(r io.Reader) (Identity, error) {
	sexps, err := sexp.Parse(r)
	if err != nil {
		return Identity{}, fmt.Errorf("kicad: parsing emitted pcb: %w", err)
	}
	if len(sexps) == 0 {
		return Identity{}, fmt.Errorf("kicad: emitted pcb is empty")
	}

	root := sexps[0]

	var id Identity
	for _, node := range sexpToSlice(root) {
		if node == nil || node.IsLeaf() {
			continue
		}
		items := sexpToSlice(node)
		if len(items) == 0 {
			continue
		}
		switch atomOf(items[0]) {
		case "net":
			// (net <number> "<name>")
			if len(items) >= 3 {
				name := unquote(atomOf(items[2]))
				if name != "" {
					id.NetNames = append(id.NetNames, name)
				}
			}
		case "footprint":
			if ref := footprintReference(items); ref != "" {
				id.References = append(id.References, ref)
			}
		}
	}
	return id, nil
}

// footprintReference finds the (fp_text reference "...") child of a
// footprint node.
func footprintReference(items []sexp.Sexp) string {
	for _, item := range items {
		if item == nil || item.IsLeaf() {
			continue
		}
		sub := sexpToSlice(item)
		if len(sub) >= 3 && atomOf(sub[0]) == "fp_text" && atomOf(sub[1]) == "reference" {
			return unquote(atomOf(sub[2]))
		}
	}
	return ""
}

// sexpToSlice flattens a list node into a slice of its elements.
func sexpToSlice(s sexp.Sexp) []sexp.Sexp {
	var items []sexp.Sexp
	if s == nil || s.IsLeaf() {
		return items
	}
	for s != nil && !s.IsLeaf() {
		if s.LeafCount() == 0 {
			break
		}
		if head := s.Head(); head != nil {
			items = append(items, head)
		}
		s = s.Tail()
	}
	return items
}

// atomOf returns the token of a leaf node, or "" for lists.
func atomOf(s sexp.Sexp) string {
	if s == nil || !s.IsLeaf() {
		return ""
	}
	if sym, ok := s.(sexp.Symbol); ok {
		return string(sym)
	}
	return fmt.Sprintf("%v", s)
}

func unquote(token string) string {
	return strings.Trim(token, `"`)
}
