package evaluation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"legendary/internal/models"
)

// ModelFactory returns a fresh, unfitted model for each fold.
type ModelFactory func() models.Model

type CrossValidator struct {
	NFolds     int
	Shuffle    bool
	RandomSeed int64
	Parallel   bool
	MaxWorkers int
}

func NewCrossValidator(nFolds int, seed int64) *CrossValidator {
	return &CrossValidator{
		NFolds:     nFolds,
		Shuffle:    true,
		RandomSeed: seed,
		Parallel:   true,
		MaxWorkers: 4,
	}
}

// CrossValidate returns per-fold accuracies with their mean and sample
// standard deviation.
func (cv *CrossValidator) CrossValidate(X [][]decimal.Decimal, y []int, factory ModelFactory) ([]float64, float64, float64, error) {
	folds, err := cv.KFoldSplit(len(X))
	if err != nil {
		return nil, 0, 0, err
	}

	scores := make([]float64, cv.NFolds)

	var g errgroup.Group
	workers := cv.MaxWorkers
	if !cv.Parallel || workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, testIndices := range folds {
		g.Go(func() error {
			score, err := cv.evaluateFold(X, y, factory(), testIndices)
			if err != nil {
				return fmt.Errorf("fold %d failed: %w", i, err)
			}
			scores[i] = score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, 0, err
	}

	mean, std := meanStd(scores)
	return scores, mean, std, nil
}

func (cv *CrossValidator) evaluateFold(X [][]decimal.Decimal, y []int, model models.Model, testIndices []int) (float64, error) {
	testSet := make(map[int]bool, len(testIndices))
	for _, idx := range testIndices {
		testSet[idx] = true
	}

	trainIndices := make([]int, 0, len(X)-len(testIndices))
	for i := range X {
		if !testSet[i] {
			trainIndices = append(trainIndices, i)
		}
	}

	XTrain, yTrain := selectRows(X, y, trainIndices)
	XTest, yTest := selectRows(X, y, testIndices)

	if err := model.Fit(XTrain, yTrain); err != nil {
		return 0, err
	}

	predictions := model.Predict(XTest)

	correct := 0
	for i, pred := range predictions {
		if pred == yTest[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(yTest)), nil
}

func (cv *CrossValidator) KFoldSplit(n int) ([][]int, error) {
	if cv.NFolds < 2 || cv.NFolds > n {
		return nil, fmt.Errorf("invalid number of folds: %d (must be between 2 and %d)", cv.NFolds, n)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if cv.Shuffle {
		rng := rand.New(rand.NewSource(cv.RandomSeed))
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([][]int, cv.NFolds)
	foldSize := n / cv.NFolds

	for i := 0; i < cv.NFolds; i++ {
		start := i * foldSize
		end := start + foldSize
		if i == cv.NFolds-1 {
			end = n
		}

		folds[i] = make([]int, end-start)
		copy(folds[i], indices[start:end])
	}

	return folds, nil
}

func meanStd(scores []float64) (mean, std float64) {
	if len(scores) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	mean = sum / float64(len(scores))

	if len(scores) > 1 {
		variance := 0.0
		for _, s := range scores {
			diff := s - mean
			variance += diff * diff
		}
		variance /= float64(len(scores) - 1)
		std = math.Sqrt(variance)
	}

	return mean, std
}
