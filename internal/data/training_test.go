package data

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTrainingSet(t *testing.T) {
	csv := header +
		"Pikachu,electric,,35,55,40,50,50,90,0\n" +
		"Mewtwo,psychic,,106,110,90,154,90,130,1\n" +
		",ghost,,60,65,60,130,75,110,False\n" +
		"Broken,normal,,,10,10,10,10,10,0\n" +
		"Unlabelled,normal,,10,10,10,10,10,10,\n"

	X, y, err := ReadTrainingSet(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, X, 3)
	assert.Equal(t, []int{0, 1, 0}, y)
	assert.True(t, X[1][3].Equal(decimal.NewFromInt(154)))
}

func TestReadTrainingSet_Errors(t *testing.T) {
	_, _, err := ReadTrainingSet(strings.NewReader("name,hp\nA,1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, _, err = ReadTrainingSet(strings.NewReader(header + "A,x,,1,2,3,4,5,6,maybe\n"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, _, err = ReadTrainingSet(strings.NewReader(header + "A,x,,1,2,three,4,5,6,1\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseLabel(t *testing.T) {
	for raw, want := range map[string]int{"0": 0, "1": 1, "True": 1, "false": 0, "1.0": 1, "0.0": 0} {
		got, err := parseLabel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := parseLabel("2")
	assert.Error(t, err)
}

func TestDataValidator(t *testing.T) {
	dv := NewDataValidator()
	row := Stats{1, 2, 3, 4, 5, 6}.Features()

	assert.Error(t, dv.ValidateDataset(nil, nil))
	assert.Error(t, dv.ValidateDataset([][]decimal.Decimal{row}, []int{0, 1}))
	assert.Error(t, dv.ValidateDataset([][]decimal.Decimal{row[:3]}, []int{0}))
	assert.NoError(t, dv.ValidateDataset([][]decimal.Decimal{row}, []int{1}))

	assert.Error(t, dv.ValidateLabels([]int{0, 0}))
	assert.Error(t, dv.ValidateLabels([]int{0, 2}))
	assert.NoError(t, dv.ValidateLabels([]int{0, 1}))

	stats := dv.GetDatasetStats(
		[][]decimal.Decimal{Stats{10, 0, 0, 0, 0, 0}.Features(), Stats{30, 0, 0, 0, 0, 0}.Features()},
		[]int{0, 1},
	)
	assert.Equal(t, 2, stats.Samples)
	assert.Equal(t, map[int]int{0: 1, 1: 1}, stats.ClassDistribution)
	assert.Equal(t, "hp", stats.Features[0].Name)
	assert.True(t, stats.Features[0].Mean.Equal(decimal.NewFromInt(20)))
	assert.True(t, stats.Features[0].Min.Equal(decimal.NewFromInt(10)))
	assert.True(t, stats.Features[0].Max.Equal(decimal.NewFromInt(30)))
}
