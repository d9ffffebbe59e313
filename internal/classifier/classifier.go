// Package classifier wraps a trained model behind the six-stat prediction
// API used by the interactive program.
package classifier

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"

	"legendary/internal/data"
	"legendary/internal/logging"
	"legendary/internal/models"
	"legendary/internal/persistence"
)

const (
	NotLegendary = 0
	Legendary    = 1
)

var ErrModelNotFound = errors.New("model not found")

type Classifier struct {
	model    models.Model
	metadata persistence.BundleMetadata
}

func New(model models.Model) *Classifier {
	return &Classifier{model: model}
}

// Load deserializes the model artifact at path. A missing file is logged and
// reported as ErrModelNotFound.
func Load(path string) (*Classifier, error) {
	logger := logging.New("classifier")

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Error("model file does not exist", "path", path)
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}

	bundle, err := persistence.LoadModelBundle(path)
	if err != nil {
		logger.Error("model could not be loaded", "path", path, "error", err)
		return nil, err
	}

	logger.Info("model loaded", "path", path, "model", bundle.Metadata.ModelName,
		"run_id", bundle.Metadata.RunID, "accuracy", bundle.Metadata.Accuracy)

	return &Classifier{model: bundle.Model, metadata: bundle.Metadata}, nil
}

// Predict returns Legendary or NotLegendary for stats.
func (c *Classifier) Predict(stats data.Stats) int {
	label := c.model.Predict([][]decimal.Decimal{stats.Features()})[0]
	if label == Legendary {
		return Legendary
	}
	return NotLegendary
}

// Confidence is the model's probability of Legendary for stats, or 0 if
// the model never saw the Legendary class.
func (c *Classifier) Confidence(stats data.Stats) float64 {
	proba := c.model.PredictProba([][]decimal.Decimal{stats.Features()})[0]
	for i, class := range c.model.GetClasses() {
		if class == Legendary && i < len(proba) {
			f, _ := proba[i].Float64()
			return f
		}
	}
	return 0
}

func (c *Classifier) Metadata() persistence.BundleMetadata {
	return c.metadata
}
