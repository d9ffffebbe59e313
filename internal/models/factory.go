package models

import (
	"fmt"
)

type ModelConfig struct {
	Algorithm  string
	MaxDepth   int
	MinSplit   int
	NTrees     int
	Seed       int64
	MaxWorkers int
}

func CreateModel(config ModelConfig) (Model, error) {
	if config.MaxDepth <= 0 {
		config.MaxDepth = 10
	}
	if config.MinSplit <= 0 {
		config.MinSplit = 2
	}

	switch config.Algorithm {
	case "tree":
		return NewDecisionTree(config.MaxDepth, config.MinSplit), nil

	case "forest", "":
		if config.NTrees <= 0 {
			config.NTrees = 100
		}
		rf := NewRandomForest(config.NTrees, config.MaxDepth, config.MinSplit)
		rf.Seed = config.Seed
		if config.MaxWorkers > 0 {
			rf.MaxWorkers = config.MaxWorkers
		}
		return rf, nil

	default:
		return nil, fmt.Errorf("unknown algorithm: %s", config.Algorithm)
	}
}

func DefaultConfig() ModelConfig {
	return ModelConfig{
		Algorithm:  "forest",
		NTrees:     100,
		MaxDepth:   10,
		MinSplit:   2,
		Seed:       42,
		MaxWorkers: 4,
	}
}
