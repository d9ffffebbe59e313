package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const NumStats = 6

// StatColumns is the fixed feature order the classifier is trained on.
var StatColumns = [NumStats]string{"hp", "attack", "defense", "sp_attack", "sp_defense", "speed"}

// StatLabels are the prompt labels for StatColumns, in the same order.
var StatLabels = [NumStats]string{"HP", "Attack", "Defense", "Special Attack", "Special Defense", "Speed"}

// Stats is a feature vector in StatColumns order.
type Stats [NumStats]int

func StatsFromSlice(values []int) (Stats, error) {
	var s Stats
	if len(values) != NumStats {
		return s, fmt.Errorf("expected %d stats, got %d", NumStats, len(values))
	}
	copy(s[:], values)
	return s, nil
}

func (s Stats) Slice() []int {
	out := make([]int, NumStats)
	copy(out, s[:])
	return out
}

func (s Stats) Features() []decimal.Decimal {
	features := make([]decimal.Decimal, NumStats)
	for i, v := range s {
		features[i] = decimal.NewFromInt(int64(v))
	}
	return features
}

func (s Stats) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

type Pokemon struct {
	Name  string
	Type1 string
	Type2 string
	Stats Stats
}
