package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func row(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

// separable builds n ordinary samples with stats in [20,80) and n
// legendary samples with stats in [100,160).
func separable(n int) ([][]decimal.Decimal, []int) {
	var X [][]decimal.Decimal
	var y []int
	for i := 0; i < n; i++ {
		base := int64(20 + (i*7)%60)
		X = append(X, row(base, base+1, base, base+2, base, base+3))
		y = append(y, 0)

		high := int64(100 + (i*11)%60)
		X = append(X, row(high, high-1, high, high-2, high, high-3))
		y = append(y, 1)
	}
	return X, y
}

func probaStrings(proba [][]decimal.Decimal) [][]string {
	out := make([][]string, len(proba))
	for i, p := range proba {
		for _, v := range p {
			out[i] = append(out[i], v.String())
		}
	}
	return out
}

func TestExtractClasses_Sorted(t *testing.T) {
	assert.Equal(t, []int{0, 1, 3}, ExtractClasses([]int{3, 1, 0, 1, 3}))
}

func TestMajority_TieBreaksLow(t *testing.T) {
	assert.Equal(t, 0, majority(map[int]int{1: 5, 0: 5}))
	assert.Equal(t, 1, majority(map[int]int{1: 6, 0: 5}))
}

func TestGini(t *testing.T) {
	assert.InDelta(t, 0.0, gini(map[int]int{1: 4}, 4), 1e-12)
	assert.InDelta(t, 0.5, gini(map[int]int{0: 2, 1: 2}, 4), 1e-12)
	assert.InDelta(t, 0.0, gini(nil, 0), 1e-12)
}

func TestDecisionTree_FitsSeparableData(t *testing.T) {
	X, y := separable(30)

	tree := NewDecisionTree(5, 2)
	require.NoError(t, tree.Fit(X, y))

	assert.Equal(t, y, tree.Predict(X))
	assert.Equal(t, 1, tree.Depth())
	assert.Equal(t, []int{0, 1}, tree.GetClasses())

	proba := tree.PredictProba([][]decimal.Decimal{row(150, 150, 150, 150, 150, 150)})
	require.Len(t, proba[0], 2)
	assert.True(t, proba[0][1].Equal(decimal.NewFromInt(1)))
}

func TestDecisionTree_PureDataIsLeaf(t *testing.T) {
	tree := NewDecisionTree(5, 2)
	require.NoError(t, tree.Fit([][]decimal.Decimal{row(1), row(2), row(3)}, []int{1, 1, 1}))

	assert.True(t, tree.Root.IsLeaf)
	assert.Equal(t, []int{1}, tree.Predict([][]decimal.Decimal{row(100)}))
}

func TestDecisionTree_RespectsMaxDepth(t *testing.T) {
	var X [][]decimal.Decimal
	var y []int
	for i := int64(0); i < 64; i++ {
		X = append(X, row(i))
		y = append(y, int(i%2))
	}

	tree := NewDecisionTree(3, 2)
	require.NoError(t, tree.Fit(X, y))
	assert.LessOrEqual(t, tree.Depth(), 3)
}

func TestDecisionTree_FitErrors(t *testing.T) {
	tree := NewDecisionTree(3, 2)
	assert.Error(t, tree.Fit(nil, nil))
	assert.Error(t, tree.Fit([][]decimal.Decimal{row(1)}, []int{0, 1}))
}

func TestRandomForest_PredictsBinaryLabels(t *testing.T) {
	X, y := separable(40)

	rf := NewRandomForest(15, 6, 2)
	require.NoError(t, rf.Fit(X, y))

	require.Len(t, rf.Trees, 15)
	assert.Equal(t, 2, rf.MaxFeatures)

	predictions := rf.Predict([][]decimal.Decimal{
		row(30, 30, 30, 30, 30, 30),
		row(150, 150, 150, 150, 150, 150),
		row(0, 0, 0, 0, 0, 0),
		row(255, 255, 255, 255, 255, 255),
	})
	assert.Equal(t, []int{0, 1, 0, 1}, predictions)

	for _, p := range rf.Predict(X) {
		assert.Contains(t, []int{0, 1}, p)
	}

	proba := rf.PredictProba([][]decimal.Decimal{row(150, 150, 150, 150, 150, 150)})
	require.Len(t, proba[0], 2)
	assert.True(t, proba[0][0].Add(proba[0][1]).Equal(decimal.NewFromInt(1)))
	assert.True(t, proba[0][1].GreaterThan(decimal.NewFromFloat(0.5)))
}

func TestRandomForest_DeterministicForSeed(t *testing.T) {
	X, y := separable(25)
	probe := [][]decimal.Decimal{row(90, 85, 95, 88, 92, 91), row(60, 110, 70, 120, 65, 115)}

	parallel := NewRandomForest(10, 4, 2)
	require.NoError(t, parallel.Fit(X, y))

	sequential := NewRandomForest(10, 4, 2)
	sequential.Parallel = false
	require.NoError(t, sequential.Fit(X, y))

	assert.Equal(t, sequential.FeatureIndices, parallel.FeatureIndices)
	assert.Equal(t, sequential.Predict(probe), parallel.Predict(probe))
	assert.Equal(t, probaStrings(sequential.PredictProba(probe)), probaStrings(parallel.PredictProba(probe)))
}

func TestRandomForest_FitErrors(t *testing.T) {
	assert.Error(t, NewRandomForest(10, 4, 2).Fit(nil, nil))
	assert.Error(t, NewRandomForest(0, 4, 2).Fit([][]decimal.Decimal{row(1)}, []int{1}))
}

func TestRandomForest_UnfittedPredictsZero(t *testing.T) {
	rf := NewRandomForest(3, 2, 2)
	assert.Equal(t, []int{0}, rf.Predict([][]decimal.Decimal{row(1, 2, 3, 4, 5, 6)}))
}

func TestCreateModel(t *testing.T) {
	m, err := CreateModel(DefaultConfig())
	require.NoError(t, err)
	rf, ok := m.(*RandomForest)
	require.True(t, ok)
	assert.Equal(t, 100, rf.NTrees)
	assert.Equal(t, int64(42), rf.Seed)

	m, err = CreateModel(ModelConfig{Algorithm: "tree"})
	require.NoError(t, err)
	assert.Equal(t, "DecisionTree", m.GetName())
	assert.Equal(t, 10, m.GetParams()["max_depth"])

	_, err = CreateModel(ModelConfig{Algorithm: "knn"})
	assert.Error(t, err)
}
