// train fits the random forest on the labelled dataset and writes the model
// artifact the interactive cli loads.
//
// Usage:
//
//	train [--data=<csv>] [--model=<gob>] [--n-trees=N] [--max-depth=N] [--test-size=F] [--seed=N] [--cv-folds=N]
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Training failed: %v", err))
		os.Exit(1)
	}
}
