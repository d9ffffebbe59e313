// cli is the interactive Legendary Pokémon tester.
//
// Usage:
//
//	cli [--config=<file>] [--data=<csv>] [--model=<gob>] [--team=<json>] [--log-level=<level>]
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("❌ %v", err))
		os.Exit(1)
	}
}
