package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"legendary/internal/classifier"
	"legendary/internal/commander"
	"legendary/internal/config"
	"legendary/internal/data"
	"legendary/internal/logging"
	"legendary/internal/team"
)

var rootFlags struct {
	configFile string
}

var rootCmd = &cobra.Command{
	Use:           "cli",
	Short:         "Guess whether a Pokémon is Legendary from its base stats",
	Long:          "Interactive tester: predict from typed stats or a Pokémon name,\nand keep a tournament team that survives restarts.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rootFlags.configFile, "config", "", "Config file (default: config.yaml in . or ./config)")
	f.String("data", config.DefaultDataPath, "Pokémon dataset CSV")
	f.String("model", config.DefaultModelPath, "Trained model bundle")
	f.String("team", config.DefaultTeamPath, "Tournament team file")
	f.String("log-level", "warn", "Log level: debug, info, warn, error")
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	v := config.New()
	for key, flag := range map[string]string{
		"data.path":  "data",
		"model.path": "model",
		"team.path":  "team",
		"log.level":  "log-level",
	} {
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

func runInteractive(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dex, err := data.LoadPokedex(settings.Data.Path)
	if err != nil {
		return fmt.Errorf("failed to load Pokémon dataset: %w", err)
	}

	clf, err := classifier.Load(settings.Model.Path)
	if errors.Is(err, classifier.ErrModelNotFound) {
		return fmt.Errorf("%w. Please train the model first (go run ./cmd/train)", err)
	}
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	store := team.NewStore(settings.Team.Path)
	return commander.New(dex, clf, store, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
}
