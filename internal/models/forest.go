package models

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type RandomForest struct {
	BaseModel
	NTrees          int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	Seed            int64
	Trees           []*DecisionTree
	FeatureIndices  [][]int
	Parallel        bool
	MaxWorkers      int
}

func NewRandomForest(nTrees, maxDepth, minSamplesSplit int) *RandomForest {
	return &RandomForest{
		NTrees:          nTrees,
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
		Seed:            42,
		Parallel:        true,
		MaxWorkers:      4,
		BaseModel: BaseModel{
			Name: "RandomForest",
			Params: map[string]any{
				"n_trees":           nTrees,
				"max_depth":         maxDepth,
				"min_samples_split": minSamplesSplit,
			},
		},
	}
}

func (rf *RandomForest) Fit(X [][]decimal.Decimal, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("cannot fit forest on %d samples with %d labels", len(X), len(y))
	}
	if rf.NTrees <= 0 {
		return fmt.Errorf("forest needs at least one tree, got %d", rf.NTrees)
	}

	rf.Classes = ExtractClasses(y)
	nFeatures := len(X[0])

	rf.MaxFeatures = int(math.Sqrt(float64(nFeatures)))
	if rf.MaxFeatures < 1 {
		rf.MaxFeatures = 1
	}

	rf.Trees = make([]*DecisionTree, rf.NTrees)
	rf.FeatureIndices = make([][]int, rf.NTrees)

	if rf.Parallel {
		return rf.trainParallel(X, y)
	}

	return rf.trainSequential(X, y)
}

func (rf *RandomForest) trainParallel(X [][]decimal.Decimal, y []int) error {
	g, ctx := errgroup.WithContext(context.Background())

	workers := rf.MaxWorkers
	if workers <= 0 || workers > rf.NTrees {
		workers = rf.NTrees
	}
	g.SetLimit(workers)

	for i := 0; i < rf.NTrees; i++ {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			tree, features, err := rf.trainSingleTree(X, y, rf.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("tree %d training failed: %w", i, err)
			}
			rf.Trees[i] = tree
			rf.FeatureIndices[i] = features
			return nil
		})
	}

	return g.Wait()
}

func (rf *RandomForest) trainSequential(X [][]decimal.Decimal, y []int) error {
	for i := 0; i < rf.NTrees; i++ {
		tree, features, err := rf.trainSingleTree(X, y, rf.Seed+int64(i))
		if err != nil {
			return fmt.Errorf("tree %d training failed: %w", i, err)
		}
		rf.Trees[i] = tree
		rf.FeatureIndices[i] = features
	}
	return nil
}

// trainSingleTree fits one tree on a bootstrap sample restricted to a random
// subset of MaxFeatures columns. The seed fully determines the result.
func (rf *RandomForest) trainSingleTree(X [][]decimal.Decimal, y []int, seed int64) (*DecisionTree, []int, error) {
	r := rand.New(rand.NewSource(seed))

	n := len(X)
	nFeatures := len(X[0])
	features := rf.selectRandomFeatures(nFeatures, r)

	XBoot := make([][]decimal.Decimal, n)
	yBoot := make([]int, n)
	for i := 0; i < n; i++ {
		idx := r.Intn(n)
		XBoot[i] = make([]decimal.Decimal, len(features))
		for j, feat := range features {
			XBoot[i][j] = X[idx][feat]
		}
		yBoot[i] = y[idx]
	}

	tree := NewDecisionTree(rf.MaxDepth, rf.MinSamplesSplit)
	err := tree.Fit(XBoot, yBoot)

	return tree, features, err
}

func (rf *RandomForest) selectRandomFeatures(nFeatures int, r *rand.Rand) []int {
	features := make([]int, nFeatures)
	for i := range features {
		features[i] = i
	}

	k := min(rf.MaxFeatures, nFeatures)
	for i := 0; i < k; i++ {
		j := i + r.Intn(nFeatures-i)
		features[i], features[j] = features[j], features[i]
	}

	return features[:k]
}

func (rf *RandomForest) votes(sample []decimal.Decimal) map[int]int {
	votes := make(map[int]int, len(rf.Classes))

	for j, tree := range rf.Trees {
		selected := make([]decimal.Decimal, len(rf.FeatureIndices[j]))
		for k, feat := range rf.FeatureIndices[j] {
			selected[k] = sample[feat]
		}
		votes[tree.predictSample(selected)]++
	}

	return votes
}

func (rf *RandomForest) Predict(X [][]decimal.Decimal) []int {
	predictions := make([]int, len(X))

	for i, sample := range X {
		predictions[i] = majority(rf.votes(sample))
	}

	return predictions
}

func (rf *RandomForest) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
	proba := make([][]decimal.Decimal, len(X))
	nTrees := decimal.NewFromInt(int64(len(rf.Trees)))

	for i, sample := range X {
		proba[i] = make([]decimal.Decimal, len(rf.Classes))
		if len(rf.Trees) == 0 {
			continue
		}

		votes := rf.votes(sample)
		for j, class := range rf.Classes {
			proba[i][j] = decimal.NewFromInt(int64(votes[class])).Div(nTrees)
		}
	}

	return proba
}
