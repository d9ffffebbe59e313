package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"legendary/internal/logging"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformed     = errors.New("malformed dataset")
)

// PokedexColumns are the columns LoadPokedex requires, in addition to any
// others the file carries.
var PokedexColumns = append([]string{"name", "type1", "type2"}, StatColumns[:]...)

type Pokedex struct {
	entries map[string]Pokemon
	dropped int
}

// LoadPokedex reads the dataset at path into a name-keyed Pokedex. Rows
// without a name or primary type are dropped; duplicate names keep the
// last row.
func LoadPokedex(path string) (*Pokedex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	return ReadPokedex(file)
}

func ReadPokedex(r io.Reader) (*Pokedex, error) {
	logger := logging.New("data")

	reader := newCSVReader(r)
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cols, err := columnIndex(headers, PokedexColumns)
	if err != nil {
		return nil, err
	}

	dex := &Pokedex{entries: make(map[string]Pokemon)}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		name := cell(record, cols["name"])
		type1 := cell(record, cols["type1"])
		if name == "" || type1 == "" {
			dex.dropped++
			continue
		}

		p := Pokemon{
			Name:  name,
			Type1: type1,
			Type2: cell(record, cols["type2"]),
		}
		for i, col := range StatColumns {
			raw := cell(record, cols[col])
			if raw == "" {
				logger.Warn("empty stat stored as zero", "name", name, "column", col, "line", line)
				continue
			}
			v, err := parseStat(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, column %s: %v", ErrMalformed, line, col, err)
			}
			p.Stats[i] = v
		}

		dex.entries[name] = p
	}

	logger.Info("dataset loaded", "entries", len(dex.entries), "dropped", dex.dropped)
	return dex, nil
}

// Lookup is a case-sensitive exact match on name. Types come back lowercased.
func (d *Pokedex) Lookup(name string) (Pokemon, bool) {
	p, ok := d.entries[name]
	if !ok {
		return Pokemon{}, false
	}
	p.Type1 = strings.ToLower(p.Type1)
	p.Type2 = strings.ToLower(p.Type2)
	return p, true
}

func (d *Pokedex) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Pokedex) Len() int {
	return len(d.entries)
}

// Dropped reports how many rows were skipped for a missing name or type1.
func (d *Pokedex) Dropped() int {
	return d.dropped
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	return reader
}

func columnIndex(headers []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func cell(record []string, idx int) string {
	return strings.TrimSpace(record[idx])
}

func parseStat(raw string) (int, error) {
	val, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", raw)
	}
	if !val.IsInteger() {
		return 0, fmt.Errorf("fractional value %q", raw)
	}
	return int(val.IntPart()), nil
}
