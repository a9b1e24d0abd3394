package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LightRailLabs/photonfab/pkg/boardfile"
	"github.com/LightRailLabs/photonfab/pkg/render"
)

var (
	renderOut    string
	renderScale  float64
	renderLabels bool
)

var renderCmd = &cobra.Command{
	Use:   "render <board_file>",
	Short: "Render a raster preview of the board",
	Long: `Renders a top-down PNG preview of the board: substrate, pads, vias,
and optionally reference designator labels.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output PNG path (default <board>.png)")
	renderCmd.Flags().Float64VarP(&renderScale, "scale", "s", 8, "pixels per millimeter")
	renderCmd.Flags().BoolVarP(&renderLabels, "labels", "l", true, "draw reference designators")
}

func runRender(cmd *cobra.Command, args []string) error {
	board, err := boardfile.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("error loading board: %w", err)
	}

	out := renderOut
	if out == "" {
		out = board.Name() + ".png"
	}

	var buf bytes.Buffer
	opts := render.Options{Scale: renderScale, ShowLabels: renderLabels}
	if err := render.WritePNG(board, opts, &buf); err != nil {
		return fmt.Errorf("error rendering preview: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}

	fmt.Printf("✓ %s\n", out)
	return nil
}
