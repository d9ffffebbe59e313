package models

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

type TreeNode struct {
	IsLeaf           bool
	Class            int
	Feature          int
	Threshold        decimal.Decimal
	Left             *TreeNode
	Right            *TreeNode
	Samples          int
	Impurity         float64
	ImpurityDecrease float64
}

type DecisionTree struct {
	BaseModel
	Root                *TreeNode
	MaxDepth            int
	MinSamplesSplit     int
	MinImpurityDecrease float64
}

func NewDecisionTree(maxDepth, minSamplesSplit int) *DecisionTree {
	if maxDepth <= 0 {
		maxDepth = 10
	}

	if minSamplesSplit <= 0 {
		minSamplesSplit = 2
	}

	return &DecisionTree{
		MaxDepth:            maxDepth,
		MinSamplesSplit:     minSamplesSplit,
		MinImpurityDecrease: 1e-7,
		BaseModel: BaseModel{
			Name: "DecisionTree",
			Params: map[string]any{
				"max_depth":         maxDepth,
				"min_samples_split": minSamplesSplit,
			},
		},
	}
}

func (dt *DecisionTree) Fit(X [][]decimal.Decimal, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("cannot fit tree on %d samples with %d labels", len(X), len(y))
	}

	dt.Classes = ExtractClasses(y)
	dt.Root = dt.buildTree(X, y, 0)
	return nil
}

func (dt *DecisionTree) buildTree(X [][]decimal.Decimal, y []int, depth int) *TreeNode {
	counts := classCounts(y)
	node := &TreeNode{
		Samples:  len(y),
		Impurity: gini(counts, len(y)),
		Class:    majority(counts),
	}

	if depth >= dt.MaxDepth || len(y) < dt.MinSamplesSplit || len(counts) <= 1 {
		node.IsLeaf = true
		return node
	}

	feature, threshold, decrease, ok := dt.findBestSplit(X, y, counts)
	if !ok || decrease < dt.MinImpurityDecrease {
		node.IsLeaf = true
		return node
	}

	node.Feature = feature
	node.Threshold = threshold
	node.ImpurityDecrease = decrease

	var XLeft, XRight [][]decimal.Decimal
	var yLeft, yRight []int
	for i, sample := range X {
		if sample[feature].LessThan(threshold) {
			XLeft = append(XLeft, sample)
			yLeft = append(yLeft, y[i])
		} else {
			XRight = append(XRight, sample)
			yRight = append(yRight, y[i])
		}
	}

	node.Left = dt.buildTree(XLeft, yLeft, depth+1)
	node.Right = dt.buildTree(XRight, yRight, depth+1)

	return node
}

// findBestSplit sweeps each feature in sorted order, moving one sample at a
// time from the right partition to the left, and scores the midpoint between
// every pair of distinct adjacent values.
func (dt *DecisionTree) findBestSplit(X [][]decimal.Decimal, y []int, total map[int]int) (int, decimal.Decimal, float64, bool) {
	n := len(y)
	parentImpurity := gini(total, n)

	bestFeature := 0
	bestThreshold := decimal.Zero
	bestDecrease := 0.0
	found := false

	order := make([]int, n)
	for feature := range X[0] {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return X[order[a]][feature].LessThan(X[order[b]][feature])
		})

		left := make(map[int]int, len(total))
		right := make(map[int]int, len(total))
		for class, count := range total {
			right[class] = count
		}

		for k := 0; k < n-1; k++ {
			class := y[order[k]]
			left[class]++
			right[class]--

			current := X[order[k]][feature]
			next := X[order[k+1]][feature]
			if current.Equal(next) {
				continue
			}

			nLeft := k + 1
			nRight := n - nLeft
			weighted := (float64(nLeft)/float64(n))*gini(left, nLeft) +
				(float64(nRight)/float64(n))*gini(right, nRight)
			decrease := parentImpurity - weighted

			if decrease > bestDecrease {
				bestDecrease = decrease
				bestFeature = feature
				bestThreshold = current.Add(next).Div(two)
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, bestDecrease, found
}

func (dt *DecisionTree) Predict(X [][]decimal.Decimal) []int {
	predictions := make([]int, len(X))

	for i, sample := range X {
		predictions[i] = dt.predictSample(sample)
	}

	return predictions
}

func (dt *DecisionTree) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
	proba := make([][]decimal.Decimal, len(X))

	for i, sample := range X {
		prediction := dt.predictSample(sample)
		proba[i] = make([]decimal.Decimal, len(dt.Classes))

		for j, class := range dt.Classes {
			if class == prediction {
				proba[i][j] = decimal.NewFromInt(1)
			} else {
				proba[i][j] = decimal.Zero
			}
		}
	}

	return proba
}

func (dt *DecisionTree) predictSample(sample []decimal.Decimal) int {
	node := dt.Root
	for node != nil && !node.IsLeaf {
		if sample[node.Feature].LessThan(node.Threshold) {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	return node.Class
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (dt *DecisionTree) Depth() int {
	return nodeDepth(dt.Root)
}

func nodeDepth(node *TreeNode) int {
	if node == nil || node.IsLeaf {
		return 0
	}
	return 1 + max(nodeDepth(node.Left), nodeDepth(node.Right))
}

func classCounts(y []int) map[int]int {
	counts := make(map[int]int)
	for _, class := range y {
		counts[class]++
	}
	return counts
}

func gini(counts map[int]int, n int) float64 {
	if n == 0 {
		return 0.0
	}

	impurity := 1.0
	for _, count := range counts {
		p := float64(count) / float64(n)
		impurity -= p * p
	}

	return impurity
}
