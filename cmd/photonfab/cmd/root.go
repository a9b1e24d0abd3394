package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "photonfab",
	Short: "photonfab - manufacturing artifact generator for photonic interconnect boards",
	Long: `photonfab turns a board description file into a complete set of
manufacturing artifacts from one validated board model:
  - Gerber photoplots (RS-274X), one per copper layer plus board edge
  - Excellon drill files with blind/buried span annotations
  - KiCad 6 project pair (.kicad_pro / .kicad_pcb)
  - EasyEDA JSON document
  - Bill of materials (CSV and XLSX)
  - Raster board preview (PNG)

Examples:
  photonfab generate board.pfb -o out/       # Emit every artifact
  photonfab generate board.pfb -f gerber     # Gerbers only
  photonfab render board.pfb -o preview.png  # Board preview
  photonfab info board.pfb                   # Show model summary`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
