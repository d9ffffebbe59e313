package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"legendary/internal/classifier"
	"legendary/internal/config"
	"legendary/internal/data"
	"legendary/internal/evaluation"
	"legendary/internal/experiment"
	"legendary/internal/logging"
	"legendary/internal/models"
	"legendary/internal/persistence"
)

var classNames = map[int]string{
	classifier.NotLegendary: "Not Legendary",
	classifier.Legendary:    "Legendary",
}

func train(s *config.Settings, out io.Writer) (*persistence.ModelBundle, error) {
	logger := logging.New("train")

	fmt.Fprintf(out, "Loading dataset %s...\n", s.Data.Path)
	X, y, err := data.LoadTrainingSet(s.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}

	validator := data.NewDataValidator()
	if err := validator.ValidateDataset(X, y); err != nil {
		return nil, fmt.Errorf("data validation failed: %w", err)
	}
	if err := validator.ValidateLabels(y); err != nil {
		return nil, fmt.Errorf("data validation failed: %w", err)
	}
	renderDatasetStats(out, validator.GetDatasetStats(X, y))

	fmt.Fprintf(out, "Splitting data (test size: %.1f%%)...\n", s.Train.TestSize*100)
	splitter := evaluation.NewTrainTestSplitter(s.Train.TestSize, s.Train.Seed, true)
	XTrain, XTest, yTrain, yTest, err := splitter.StratifiedSplit(X, y)
	if err != nil {
		return nil, fmt.Errorf("failed to split data: %w", err)
	}

	cfg := models.ModelConfig{
		Algorithm:  "forest",
		MaxDepth:   s.Train.MaxDepth,
		MinSplit:   s.Train.MinSamplesSplit,
		NTrees:     s.Train.NTrees,
		Seed:       s.Train.Seed,
		MaxWorkers: s.Train.MaxWorkers,
	}
	if s.Train.SweepFile != "" {
		best, err := sweep(s, XTrain, yTrain, out)
		if err != nil {
			return nil, err
		}
		cfg.NTrees, cfg.MaxDepth, cfg.MinSplit = best.NTrees, best.MaxDepth, best.MinSplit
	}

	model, err := models.CreateModel(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	fmt.Fprintf(out, "Training %s on %d samples...\n", model.GetName(), len(XTrain))
	start := time.Now()
	if err := model.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}
	trainingTime := time.Since(start)
	logger.Info("model trained", "trees", cfg.NTrees, "duration", trainingTime)

	metrics, err := evaluation.CalculateMetrics(yTest, model.Predict(XTest), models.ExtractClasses(y))
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	fmt.Fprintf(out, "\nEvaluation on %d held-out samples:\n", len(XTest))
	metrics.RenderReport(out, classNames)

	bundle := persistence.NewModelBundle(model)
	bundle.Metadata.Dataset = s.Data.Path
	bundle.Metadata.Accuracy = metrics.Accuracy
	bundle.Metadata.Precision = metrics.MacroPrecision
	bundle.Metadata.Recall = metrics.MacroRecall
	bundle.Metadata.F1Score = metrics.MacroF1
	bundle.Metadata.TrainSamples = len(XTrain)
	bundle.Metadata.TestSamples = len(XTest)
	bundle.Metadata.TrainingTime = trainingTime
	bundle.Metadata.Features = data.StatColumns[:]
	bundle.Metadata.Classes = []string{classNames[classifier.NotLegendary], classNames[classifier.Legendary]}

	if s.Train.CVFolds >= 2 {
		fmt.Fprintf(out, "Running %d-fold cross-validation...\n", s.Train.CVFolds)
		cv := evaluation.NewCrossValidator(s.Train.CVFolds, s.Train.Seed)
		if s.Train.MaxWorkers > 0 {
			cv.MaxWorkers = s.Train.MaxWorkers
		}
		_, mean, std, err := cv.CrossValidate(X, y, func() models.Model {
			m, _ := models.CreateModel(cfg)
			return m
		})
		if err != nil {
			return nil, fmt.Errorf("cross-validation failed: %w", err)
		}
		fmt.Fprintf(out, "CV accuracy: %.4f ± %.4f\n", mean, std)
		bundle.Metadata.CVMean = mean
		bundle.Metadata.CVStd = std
	}

	if err := bundle.Save(s.Model.Path); err != nil {
		return nil, fmt.Errorf("failed to save model: %w", err)
	}
	metaPath := persistence.MetadataPath(s.Model.Path)
	if err := bundle.SaveMetadata(metaPath); err != nil {
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	fmt.Fprintf(out, "Model saved to: %s (metadata: %s, run %s)\n", s.Model.Path, metaPath, bundle.Metadata.RunID)
	return bundle, nil
}

// sweep searches the grid on the training split only and returns the winner.
func sweep(s *config.Settings, X [][]decimal.Decimal, y []int, out io.Writer) (experiment.Result, error) {
	grid, err := experiment.LoadSweep(s.Train.SweepFile)
	if err != nil {
		return experiment.Result{}, err
	}

	runner := experiment.NewRunner(grid, s.Train.Seed)
	if s.Train.MaxWorkers > 0 {
		runner.MaxWorkers = s.Train.MaxWorkers
	}

	fmt.Fprintf(out, "Running hyperparameter sweep from %s...\n", s.Train.SweepFile)
	results, err := runner.Run(X, y)
	if err != nil {
		return experiment.Result{}, fmt.Errorf("sweep failed: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Trees", "Max Depth", "Min Split", "CV Mean", "CV Std"})
	for _, res := range results {
		t.AppendRow(table.Row{res.NTrees, res.MaxDepth, res.MinSplit,
			fmt.Sprintf("%.4f", res.CVMean), fmt.Sprintf("%.4f", res.CVStd)})
	}
	t.Render()

	resultsPath := strings.TrimSuffix(s.Model.Path, filepath.Ext(s.Model.Path)) + "_sweep.csv"
	if err := os.MkdirAll(filepath.Dir(resultsPath), 0o755); err != nil {
		return experiment.Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := experiment.ExportResults(results, resultsPath); err != nil {
		return experiment.Result{}, fmt.Errorf("failed to export sweep results: %w", err)
	}

	best := experiment.Best(results)
	fmt.Fprintf(out, "Best: %d trees, max depth %d, min split %d (CV %.4f). Results: %s\n",
		best.NTrees, best.MaxDepth, best.MinSplit, best.CVMean, resultsPath)
	return best, nil
}

func renderDatasetStats(out io.Writer, stats data.DatasetStats) {
	fmt.Fprintf(out, "Loaded %d samples: %d %s, %d %s\n", stats.Samples,
		stats.ClassDistribution[classifier.NotLegendary], classNames[classifier.NotLegendary],
		stats.ClassDistribution[classifier.Legendary], classNames[classifier.Legendary])

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stat", "Min", "Max", "Mean"})
	for _, f := range stats.Features {
		t.AppendRow(table.Row{f.Name, f.Min.String(), f.Max.String(), f.Mean.StringFixed(1)})
	}
	t.Render()
}
