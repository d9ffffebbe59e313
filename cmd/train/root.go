package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"legendary/internal/config"
	"legendary/internal/logging"
)

var rootFlags struct {
	configFile string
}

var rootCmd = &cobra.Command{
	Use:           "train",
	Short:         "Train the Legendary classifier",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		_, err = train(settings, cmd.OutOrStdout())
		return err
	},
}

// flagKeys maps each command-line flag to the setting it overrides.
var flagKeys = map[string]string{
	"data":      "data.path",
	"model":     "model.path",
	"n-trees":   "train.n_trees",
	"max-depth": "train.max_depth",
	"test-size": "train.test_size",
	"seed":      "train.seed",
	"cv-folds":  "train.cv_folds",
	"sweep":     "train.sweep_file",
	"log-level": "log.level",
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rootFlags.configFile, "config", "", "Config file (default: config.yaml in . or ./config)")
	f.String("data", config.DefaultDataPath, "Labelled training CSV")
	f.String("model", config.DefaultModelPath, "Where to write the model bundle")
	f.Int("n-trees", 100, "Number of trees in the forest")
	f.Int("max-depth", 10, "Max depth of each tree")
	f.Float64("test-size", 0.2, "Held-out test fraction (0.0-1.0)")
	f.Int64("seed", 42, "Random seed for the split and the forest")
	f.Int("cv-folds", 0, "Cross-validation folds, 0 to skip")
	f.String("sweep", "", "YAML grid of forest hyperparameters to search before the final fit")
	f.String("log-level", "info", "Log level: debug, info, warn, error")
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	v := config.New()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	settings, err := config.Load(v, rootFlags.configFile)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(settings.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.Init(level, settings.Log.Format, os.Stderr)
	return settings, nil
}
