package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultDataPath  = "data/pokemon.csv"
	DefaultModelPath = "models/legendary_model.gob"
	DefaultTeamPath  = "data/team.json"
)

type Settings struct {
	Data  PathConfig  `mapstructure:"data"`
	Model PathConfig  `mapstructure:"model"`
	Team  PathConfig  `mapstructure:"team"`
	Log   LogConfig   `mapstructure:"log"`
	Train TrainConfig `mapstructure:"train"`
}

type PathConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// TrainConfig holds the fixed hyperparameters of the offline training step.
type TrainConfig struct {
	NTrees          int     `mapstructure:"n_trees"`
	MaxDepth        int     `mapstructure:"max_depth"`
	MinSamplesSplit int     `mapstructure:"min_samples_split"`
	TestSize        float64 `mapstructure:"test_size"`
	Seed            int64   `mapstructure:"seed"`
	CVFolds         int     `mapstructure:"cv_folds"` // 0 disables cross-validation
	MaxWorkers      int     `mapstructure:"max_workers"`
	SweepFile       string  `mapstructure:"sweep_file"` // optional hyperparameter grid
}

// New returns a viper instance with defaults and LEGENDARY_ environment
// overrides registered. Flags can be bound to it before Load is called.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LEGENDARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", DefaultDataPath)
	v.SetDefault("model.path", DefaultModelPath)
	v.SetDefault("team.path", DefaultTeamPath)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("train.n_trees", 100)
	v.SetDefault("train.max_depth", 10)
	v.SetDefault("train.min_samples_split", 2)
	v.SetDefault("train.test_size", 0.2)
	v.SetDefault("train.seed", 42)
	v.SetDefault("train.cv_folds", 0)
	v.SetDefault("train.max_workers", 4)
	v.SetDefault("train.sweep_file", "")
}

// Load reads the optional config file and unmarshals every layer into
// Settings. With an empty configFile, config.yaml is searched in . and
// ./config and its absence is not an error.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

func (s *Settings) Validate() error {
	if s.Data.Path == "" || s.Model.Path == "" || s.Team.Path == "" {
		return fmt.Errorf("data, model and team paths must be set")
	}
	if s.Train.TestSize <= 0 || s.Train.TestSize >= 1 {
		return fmt.Errorf("train.test_size must be between 0 and 1, got %v", s.Train.TestSize)
	}
	if s.Train.NTrees <= 0 {
		return fmt.Errorf("train.n_trees must be positive, got %d", s.Train.NTrees)
	}
	if s.Train.CVFolds == 1 || s.Train.CVFolds < 0 {
		return fmt.Errorf("train.cv_folds must be 0 or at least 2, got %d", s.Train.CVFolds)
	}
	return nil
}
