package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LightRailLabs/photonfab/pkg/boardfile"
	"github.com/LightRailLabs/photonfab/pkg/generate"
)

var (
	generateOutDir  string
	generateFormats []string
)

var generateCmd = &cobra.Command{
	Use:   "generate <board_file>",
	Short: "Generate manufacturing artifacts from a board description",
	Long: `Parses a board description file, validates the model, and emits the
requested artifact set into the output directory.

Formats: ` + strings.Join(append(generate.AllFormats(), "all"), ", ") + `

Emitters run independently: a board feature one format cannot express
fails that artifact only, and no partial file is left behind.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", ".", "output directory")
	generateCmd.Flags().StringSliceVarP(&generateFormats, "format", "f", nil,
		"formats to emit (default all)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	board, err := boardfile.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("error loading board: %w", err)
	}

	if verbose {
		size := board.Size()
		fmt.Printf("Loaded board: %s\n", board.Name())
		fmt.Printf("  Layers: %d\n", board.LayerCount())
		fmt.Printf("  Board size: %.2f x %.2f mm\n", size.Width, size.Height)
	}

	formats := generateFormats
	for _, f := range formats {
		if f == "all" {
			formats = nil
			break
		}
	}

	manifest, err := generate.Run(board, generate.Options{
		OutDir:  generateOutDir,
		Formats: formats,
	})
	for _, artifact := range manifest.Artifacts {
		if artifact.Err != nil {
			fmt.Printf("✗ %s: %v\n", artifact.Name, artifact.Err)
		} else {
			fmt.Printf("✓ %s\n", artifact.Name)
		}
	}
	if err != nil {
		return fmt.Errorf("%d of %d artifacts failed",
			len(manifest.Failed()), len(manifest.Artifacts))
	}
	return nil
}
