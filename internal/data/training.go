package data

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"legendary/internal/logging"
)

const LabelColumn = "is_legendary"

// LoadTrainingSet reads the six stat columns and the is_legendary label.
// Rows with any of those cells empty are dropped.
func LoadTrainingSet(path string) ([][]decimal.Decimal, []int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	return ReadTrainingSet(file)
}

func ReadTrainingSet(r io.Reader) ([][]decimal.Decimal, []int, error) {
	reader := newCSVReader(r)
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	required := append(StatColumns[:], LabelColumn)
	cols, err := columnIndex(headers, required)
	if err != nil {
		return nil, nil, err
	}

	var X [][]decimal.Decimal
	var y []int
	missingCount := 0
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		hasEmpty := false
		for _, col := range required {
			if cell(record, cols[col]) == "" {
				hasEmpty = true
				break
			}
		}
		if hasEmpty {
			missingCount++
			continue
		}

		row := make([]decimal.Decimal, NumStats)
		for j, col := range StatColumns {
			val, err := decimal.NewFromString(cell(record, cols[col]))
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d, column %s: non-numeric value %q",
					ErrMalformed, line, col, cell(record, cols[col]))
			}
			row[j] = val
		}

		label, err := parseLabel(cell(record, cols[LabelColumn]))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}

		X = append(X, row)
		y = append(y, label)
	}

	logging.New("data").Info("training set loaded", "samples", len(X), "skipped", missingCount)
	return X, y, nil
}

func parseLabel(raw string) (int, error) {
	if b, err := strconv.ParseBool(raw); err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}

	val, err := decimal.NewFromString(raw)
	if err != nil || !(val.Equal(decimal.Zero) || val.Equal(decimal.NewFromInt(1))) {
		return 0, fmt.Errorf("invalid %s value %q", LabelColumn, raw)
	}
	return int(val.IntPart()), nil
}
