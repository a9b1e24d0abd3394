// Package generate runs every emitter over one board model and writes
// the manufacturing artifact set into an output directory.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/LightRailLabs/photonfab/pkg/board"
	"github.com/LightRailLabs/photonfab/pkg/bom"
	"github.com/LightRailLabs/photonfab/pkg/easyeda"
	"github.com/LightRailLabs/photonfab/pkg/excellon"
	"github.com/LightRailLabs/photonfab/pkg/gerber"
	"github.com/LightRailLabs/photonfab/pkg/kicad"
)

// Output format names accepted by Run.
const (
	FormatGerber  = "gerber"
	FormatDrill   = "drill"
	FormatKiCad   = "kicad"
	FormatEasyEDA = "easyeda"
	FormatBOM     = "bom"
)

// AllFormats lists every supported format in emission order.
func AllFormats() []string {
	return []string{FormatGerber, FormatDrill, FormatKiCad, FormatEasyEDA, FormatBOM}
}

// Options selects what Run produces and where.
type Options struct {
	OutDir  string   // Output directory (default ".")
	Formats []string // Formats to emit (default all)
}

// Artifact records the outcome for one output file.
type Artifact struct {
	Name string // File name relative to the output directory
	Path string // Full path
	Err  error  // nil on success
}

// Manifest lists every artifact Run attempted, in a stable order.
type Manifest struct {
	Artifacts []Artifact
}

// Failed returns the artifacts that could not be produced.
func (m Manifest) Failed() []Artifact {
	var failed []Artifact
	for _, a := range m.Artifacts {
		if a.Err != nil {
			failed = append(failed, a)
		}
	}
	return failed
}

// Err combines the errors of all failed artifacts.
func (m Manifest) Err() error {
	var errs []error
	for _, a := range m.Artifacts {
		if a.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Name, a.Err))
		}
	}
	return errors.Join(errs...)
}

type job struct {
	name string
	emit func(w io.Writer) error
}

// Run emits the requested artifact set for the board. Emitters run
// concurrently; each one renders into a buffer and its file is written
// only if emission succeeded, so a failed artifact leaves no partial
// file behind. Failures are per-artifact: one emitter rejecting the
// board does not stop the others.
func Run(b *board.Board, opts Options) (Manifest, error) {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = AllFormats()
	}

	jobs, err := plan(b, formats)
	if err != nil {
		return Manifest{}, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Manifest{}, err
	}

	results := make([]Artifact, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			a := Artifact{Name: j.name, Path: filepath.Join(opts.OutDir, j.name)}
			var buf bytes.Buffer
			if err := j.emit(&buf); err != nil {
				a.Err = err
			} else if err := os.WriteFile(a.Path, buf.Bytes(), 0o644); err != nil {
				a.Err = err
			}
			results[i] = a
		}(i, j)
	}
	wg.Wait()

	m := Manifest{Artifacts: results}
	return m, m.Err()
}

func plan(b *board.Board, formats []string) ([]job, error) {
	name := b.Name()
	var jobs []job

	for _, format := range formats {
		switch format {
		case FormatGerber:
			for _, layer := range b.Layers() {
				index := layer.Index
				jobs = append(jobs, job{
					name: fmt.Sprintf("%s-L%d.gbr", name, index),
					emit: func(w io.Writer) error { return gerber.Emit(b, index, w) },
				})
			}
			jobs = append(jobs, job{
				name: fmt.Sprintf("%s-edge.gbr", name),
				emit: func(w io.Writer) error { return gerber.EmitOutline(b, w) },
			})
		case FormatDrill:
			jobs = append(jobs, job{
				name: fmt.Sprintf("%s.drl", name),
				emit: func(w io.Writer) error { return excellon.Emit(b, w) },
			})
		case FormatKiCad:
			jobs = append(jobs,
				job{
					name: fmt.Sprintf("%s.kicad_pro", name),
					emit: func(w io.Writer) error { return kicad.EmitProject(b, w) },
				},
				job{
					name: fmt.Sprintf("%s.kicad_pcb", name),
					emit: func(w io.Writer) error { return kicad.EmitPCB(b, w) },
				})
		case FormatEasyEDA:
			jobs = append(jobs, job{
				name: fmt.Sprintf("%s.easyeda.json", name),
				emit: func(w io.Writer) error { return easyeda.Emit(b, w) },
			})
		case FormatBOM:
			jobs = append(jobs,
				job{
					name: fmt.Sprintf("%s-bom.csv", name),
					emit: func(w io.Writer) error {
						lines, err := bom.Build(b)
						if err != nil {
							return err
						}
						return bom.EmitCSV(lines, w)
					},
				},
				job{
					name: fmt.Sprintf("%s-bom.xlsx", name),
					emit: func(w io.Writer) error {
						lines, err := bom.Build(b)
						if err != nil {
							return err
						}
						return bom.EmitXLSX(lines, w)
					},
				})
		default:
			return nil, fmt.Errorf("unknown output format %q", format)
		}
	}
	return jobs, nil
}
