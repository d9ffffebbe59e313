package evaluation

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
)

type ClassificationMetrics struct {
	Accuracy         float64              `json:"accuracy" yaml:"accuracy"`
	BalancedAccuracy float64              `json:"balanced_accuracy" yaml:"balanced_accuracy"`
	MacroPrecision   float64              `json:"macro_precision" yaml:"macro_precision"`
	MacroRecall      float64              `json:"macro_recall" yaml:"macro_recall"`
	MacroF1          float64              `json:"macro_f1" yaml:"macro_f1"`
	PerClassMetrics  map[int]ClassMetrics `json:"per_class_metrics" yaml:"per_class_metrics"`
	ConfusionMatrix  [][]int              `json:"confusion_matrix" yaml:"confusion_matrix"`
	Classes          []int                `json:"classes" yaml:"classes"`
	NumSamples       int                  `json:"num_samples" yaml:"num_samples"`
}

type ClassMetrics struct {
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1Score   float64 `json:"f1_score" yaml:"f1_score"`
	Support   int     `json:"support" yaml:"support"`
}

// CalculateMetrics scores predictions against the truth. Rows and columns
// of the confusion matrix follow the order of classes (true, predicted).
func CalculateMetrics(yTrue, yPred []int, classes []int) (*ClassificationMetrics, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("truth and predictions have different lengths: %d vs %d", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 || len(classes) == 0 {
		return nil, fmt.Errorf("no samples to evaluate")
	}

	numClasses := len(classes)
	confusionMatrix := buildConfusionMatrix(yTrue, yPred, classes)

	perClassMetrics := make(map[int]ClassMetrics, numClasses)
	var macroPrec, macroRec, macroF1 float64

	for i, class := range classes {
		tp := confusionMatrix[i][i]
		fp, fn := 0, 0
		for j := range classes {
			if j != i {
				fp += confusionMatrix[j][i]
				fn += confusionMatrix[i][j]
			}
		}

		precision := safeDivide(float64(tp), float64(tp+fp))
		recall := safeDivide(float64(tp), float64(tp+fn))
		f1 := safeDivide(2*precision*recall, precision+recall)

		perClassMetrics[class] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1Score:   f1,
			Support:   tp + fn,
		}

		macroPrec += precision
		macroRec += recall
		macroF1 += f1
	}

	correct := 0
	for i, pred := range yPred {
		if pred == yTrue[i] {
			correct++
		}
	}

	return &ClassificationMetrics{
		Accuracy:         float64(correct) / float64(len(yTrue)),
		BalancedAccuracy: macroRec / float64(numClasses),
		MacroPrecision:   macroPrec / float64(numClasses),
		MacroRecall:      macroRec / float64(numClasses),
		MacroF1:          macroF1 / float64(numClasses),
		PerClassMetrics:  perClassMetrics,
		ConfusionMatrix:  confusionMatrix,
		Classes:          classes,
		NumSamples:       len(yTrue),
	}, nil
}

func buildConfusionMatrix(yTrue, yPred []int, classes []int) [][]int {
	numClasses := len(classes)
	matrix := make([][]int, numClasses)
	for i := range matrix {
		matrix[i] = make([]int, numClasses)
	}

	classToIdx := make(map[int]int)
	for i, class := range classes {
		classToIdx[class] = i
	}

	for i := range yTrue {
		trueIdx, trueOk := classToIdx[yTrue[i]]
		predIdx, predOk := classToIdx[yPred[i]]
		if trueOk && predOk {
			matrix[trueIdx][predIdx]++
		}
	}

	return matrix
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0.0
	}
	return result
}

func (m *ClassificationMetrics) FormatMetrics() string {
	result := fmt.Sprintf("Accuracy: %.4f\n", m.Accuracy)
	result += fmt.Sprintf("Balanced Accuracy: %.4f\n", m.BalancedAccuracy)
	result += fmt.Sprintf("Macro Avg - Precision: %.4f, Recall: %.4f, F1: %.4f\n",
		m.MacroPrecision, m.MacroRecall, m.MacroF1)
	return result
}

// RenderReport writes a per-class table and the confusion matrix. names maps
// a class label to its display name; missing labels print as numbers.
func (m *ClassificationMetrics) RenderReport(w io.Writer, names map[int]string) {
	name := func(class int) string {
		if n, ok := names[class]; ok {
			return n
		}
		return fmt.Sprintf("Class %d", class)
	}

	perClass := table.NewWriter()
	perClass.SetOutputMirror(w)
	perClass.SetStyle(table.StyleLight)
	perClass.AppendHeader(table.Row{"Class", "Precision", "Recall", "F1", "Support"})
	for _, class := range m.Classes {
		cm := m.PerClassMetrics[class]
		perClass.AppendRow(table.Row{
			name(class),
			fmt.Sprintf("%.4f", cm.Precision),
			fmt.Sprintf("%.4f", cm.Recall),
			fmt.Sprintf("%.4f", cm.F1Score),
			cm.Support,
		})
	}
	perClass.AppendFooter(table.Row{"Accuracy", "", "", fmt.Sprintf("%.4f", m.Accuracy), m.NumSamples})
	perClass.Render()

	confusion := table.NewWriter()
	confusion.SetOutputMirror(w)
	confusion.SetStyle(table.StyleLight)
	confusion.SetTitle("Confusion Matrix (rows: actual, columns: predicted)")

	header := table.Row{""}
	for _, class := range m.Classes {
		header = append(header, name(class))
	}
	confusion.AppendHeader(header)

	for i, class := range m.Classes {
		r := table.Row{name(class)}
		for _, count := range m.ConfusionMatrix[i] {
			r = append(r, count)
		}
		confusion.AppendRow(r)
	}
	confusion.Render()
}
