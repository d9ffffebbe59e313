package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"legendary/internal/models"
)

func init() {
	gob.Register(&models.DecisionTree{})
	gob.Register(&models.RandomForest{})
}

type ModelBundle struct {
	Model     models.Model
	Metadata  BundleMetadata
	CreatedAt time.Time
}

type BundleMetadata struct {
	RunID        string         `yaml:"run_id"`
	ModelName    string         `yaml:"model_name"`
	Dataset      string         `yaml:"dataset"`
	Accuracy     float64        `yaml:"accuracy"`
	Precision    float64        `yaml:"precision"`
	Recall       float64        `yaml:"recall"`
	F1Score      float64        `yaml:"f1_score"`
	CVMean       float64        `yaml:"cv_mean,omitempty"`
	CVStd        float64        `yaml:"cv_std,omitempty"`
	TrainSamples int            `yaml:"train_samples"`
	TestSamples  int            `yaml:"test_samples"`
	TrainingTime time.Duration  `yaml:"training_time"`
	Features     []string       `yaml:"features"`
	Classes      []string       `yaml:"classes"`
	Parameters   map[string]any `yaml:"parameters"`
}

func NewModelBundle(model models.Model) *ModelBundle {
	return &ModelBundle{
		Model:     model,
		CreatedAt: time.Now(),
		Metadata: BundleMetadata{
			RunID:      uuid.NewString(),
			ModelName:  model.GetName(),
			Parameters: model.GetParams(),
		},
	}
}

func (mb *ModelBundle) Save(filename string) error {
	if mb.Model == nil {
		return fmt.Errorf("bundle has no model")
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(mb); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}

	return file.Close()
}

func LoadModelBundle(filename string) (*ModelBundle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var bundle ModelBundle
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	if bundle.Model == nil {
		return nil, fmt.Errorf("failed to decode bundle: no model in %s", filename)
	}

	return &bundle, nil
}

type metadataFile struct {
	BundleMetadata `yaml:",inline"`
	CreatedAt      string `yaml:"created_at"`
}

// SaveMetadata writes a human-readable YAML summary of the bundle.
func (mb *ModelBundle) SaveMetadata(filename string) error {
	out, err := yaml.Marshal(metadataFile{
		BundleMetadata: mb.Metadata,
		CreatedAt:      mb.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

func LoadMetadata(filename string) (*BundleMetadata, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var meta metadataFile
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &meta.BundleMetadata, nil
}

// MetadataPath returns the sidecar path for a model file: the same name
// with a .yaml extension.
func MetadataPath(modelPath string) string {
	return strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".yaml"
}
