package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LightRailLabs/photonfab/pkg/boardfile"
)

var infoCmd = &cobra.Command{
	Use:   "info <board_file>",
	Short: "Show board model summary",
	Long:  `Parses and validates a board description file and prints a summary of the model.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	board, err := boardfile.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("error loading board: %w", err)
	}

	size := board.Size()
	fmt.Printf("✓ Board model valid\n")
	fmt.Printf("  Name: %s\n", board.Name())
	fmt.Printf("  Board size: %.2f x %.2f mm\n", size.Width, size.Height)
	fmt.Printf("  Layers: %d\n", board.LayerCount())
	fmt.Printf("  Nets: %d\n", len(board.Nets()))
	fmt.Printf("  Footprints: %d\n", len(board.Footprints()))
	fmt.Printf("  Vias: %d\n", len(board.Vias()))
	fmt.Printf("  Min track width: %.3f mm\n", board.MinTrackWidth())
	fmt.Printf("  Min drill size: %.3f mm\n", board.MinDrillSize())

	fmt.Printf("\nLayer stack:\n")
	for _, layer := range board.Layers() {
		line := fmt.Sprintf("  L%d %-16s %s", layer.Index, layer.Name, layer.Role)
		if layer.Material != "" {
			line += fmt.Sprintf("  %s", layer.Material)
		}
		if layer.Impedance > 0 {
			line += fmt.Sprintf("  %.0fΩ", layer.Impedance)
		}
		fmt.Println(line)
	}

	if vias := board.Vias(); len(vias) > 0 {
		through, blind, buried := 0, 0, 0
		for _, via := range vias {
			switch {
			case via.IsThrough(board.LayerCount()):
				through++
			case via.IsBlind(board.LayerCount()):
				blind++
			case via.IsBuried(board.LayerCount()):
				buried++
			}
		}
		fmt.Printf("\nDrill table: %d through, %d blind, %d buried\n", through, blind, buried)
	}
	return nil
}
