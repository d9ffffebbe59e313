// Package experiment runs a cross-validated grid search over forest
// hyperparameters.
package experiment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"legendary/internal/evaluation"
	"legendary/internal/logging"
	"legendary/internal/models"
)

var ErrEmptyGrid = errors.New("sweep grid has no combinations")

type SweepConfig struct {
	Sweep struct {
		CVFolds      int `yaml:"cv_folds"`
		RandomForest struct {
			NTrees          []int `yaml:"n_trees"`
			MaxDepth        []int `yaml:"max_depth"`
			MinSamplesSplit []int `yaml:"min_samples_split"`
		} `yaml:"random_forest"`
	} `yaml:"sweep"`
}

// LoadSweep reads a grid file. Missing min_samples_split defaults to 2 and
// missing cv_folds to 5.
func LoadSweep(path string) (*SweepConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep file: %w", err)
	}

	cfg := &SweepConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode sweep file %s: %w", path, err)
	}
	if cfg.Sweep.CVFolds == 0 {
		cfg.Sweep.CVFolds = 5
	}
	if len(cfg.Sweep.RandomForest.MinSamplesSplit) == 0 {
		cfg.Sweep.RandomForest.MinSamplesSplit = []int{2}
	}
	return cfg, nil
}

type Result struct {
	NTrees         int
	MaxDepth       int
	MinSplit       int
	CVMean         float64
	CVStd          float64
	TrainingTimeMs int64
}

type Runner struct {
	Config     *SweepConfig
	Seed       int64
	MaxWorkers int
}

func NewRunner(cfg *SweepConfig, seed int64) *Runner {
	return &Runner{Config: cfg, Seed: seed, MaxWorkers: 4}
}

// Run scores every grid combination with k-fold cross-validation, in grid
// order.
func (r *Runner) Run(X [][]decimal.Decimal, y []int) ([]Result, error) {
	logger := logging.New("experiment")
	grid := r.Config.Sweep.RandomForest

	var results []Result
	for _, nTrees := range grid.NTrees {
		for _, depth := range grid.MaxDepth {
			for _, minSplit := range grid.MinSamplesSplit {
				cfg := models.ModelConfig{
					Algorithm:  "forest",
					NTrees:     nTrees,
					MaxDepth:   depth,
					MinSplit:   minSplit,
					Seed:       r.Seed,
					MaxWorkers: r.MaxWorkers,
				}
				if _, err := models.CreateModel(cfg); err != nil {
					return nil, err
				}

				cv := evaluation.NewCrossValidator(r.Config.Sweep.CVFolds, r.Seed)
				cv.MaxWorkers = r.MaxWorkers

				start := time.Now()
				_, mean, std, err := cv.CrossValidate(X, y, func() models.Model {
					m, _ := models.CreateModel(cfg)
					return m
				})
				if err != nil {
					return nil, fmt.Errorf("n_trees=%d max_depth=%d: %w", nTrees, depth, err)
				}

				res := Result{
					NTrees:         nTrees,
					MaxDepth:       depth,
					MinSplit:       minSplit,
					CVMean:         mean,
					CVStd:          std,
					TrainingTimeMs: time.Since(start).Milliseconds(),
				}
				logger.Debug("combination scored", "n_trees", nTrees, "max_depth", depth,
					"min_samples_split", minSplit, "cv_mean", mean)
				results = append(results, res)
			}
		}
	}

	if len(results) == 0 {
		return nil, ErrEmptyGrid
	}
	return results, nil
}

// Best returns the highest mean CV accuracy. Ties keep the earlier grid entry.
func Best(results []Result) Result {
	best := results[0]
	for _, res := range results[1:] {
		if res.CVMean > best.CVMean {
			best = res
		}
	}
	return best
}

func ExportResults(results []Result, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Write([]string{"NTrees", "MaxDepth", "MinSamplesSplit", "CVMean", "CVStd", "TrainingTimeMs"})
	for _, res := range results {
		writer.Write([]string{
			fmt.Sprintf("%d", res.NTrees),
			fmt.Sprintf("%d", res.MaxDepth),
			fmt.Sprintf("%d", res.MinSplit),
			fmt.Sprintf("%.4f", res.CVMean),
			fmt.Sprintf("%.4f", res.CVStd),
			fmt.Sprintf("%d", res.TrainingTimeMs),
		})
	}
	writer.Flush()
	return writer.Error()
}
