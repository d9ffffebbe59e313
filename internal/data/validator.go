package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type DataValidator struct{}

func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

func (dv *DataValidator) ValidateDataset(X [][]decimal.Decimal, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("dataset is empty")
	}

	if len(X) != len(y) {
		return fmt.Errorf("feature matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	for i, sample := range X {
		if len(sample) != NumStats {
			return fmt.Errorf("inconsistent feature count at sample %d: expected %d, got %d", i, NumStats, len(sample))
		}
	}

	return nil
}

// ValidateLabels requires 0/1 labels with both classes present.
func (dv *DataValidator) ValidateLabels(y []int) error {
	if len(y) == 0 {
		return fmt.Errorf("labels are empty")
	}

	classCount := make(map[int]int)
	for _, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("label must be 0 or 1, found %d", label)
		}
		classCount[label]++
	}

	if len(classCount) < 2 {
		return fmt.Errorf("dataset must have both classes, found %d", len(classCount))
	}

	return nil
}

type FeatureSummary struct {
	Name string
	Min  decimal.Decimal
	Max  decimal.Decimal
	Mean decimal.Decimal
}

type DatasetStats struct {
	Samples           int
	ClassDistribution map[int]int
	Features          []FeatureSummary
}

func (dv *DataValidator) GetDatasetStats(X [][]decimal.Decimal, y []int) DatasetStats {
	stats := DatasetStats{
		Samples:           len(X),
		ClassDistribution: make(map[int]int),
	}
	for _, label := range y {
		stats.ClassDistribution[label]++
	}
	if len(X) == 0 {
		return stats
	}

	stats.Features = make([]FeatureSummary, NumStats)
	for j := 0; j < NumStats; j++ {
		values := make([]decimal.Decimal, len(X))
		for i := range X {
			values[i] = X[i][j]
		}

		stats.Features[j] = FeatureSummary{
			Name: StatColumns[j],
			Min:  decimal.Min(values[0], values[1:]...),
			Max:  decimal.Max(values[0], values[1:]...),
			Mean: decimal.Avg(values[0], values[1:]...),
		}
	}

	return stats
}
