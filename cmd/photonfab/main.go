package main

import (
	"github.com/LightRailLabs/photonfab/cmd/photonfab/cmd"
)

func main() {
	cmd.Execute()
}
