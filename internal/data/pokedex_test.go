package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "name,type1,type2,hp,attack,defense,sp_attack,sp_defense,speed,is_legendary\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokemon.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPokedex_Pikachu(t *testing.T) {
	path := writeCSV(t, header+"Pikachu, electric, , 35,55,40,50,50,90,0\n")

	dex, err := LoadPokedex(path)
	require.NoError(t, err)

	p, ok := dex.Lookup("Pikachu")
	require.True(t, ok)
	assert.Equal(t, Stats{35, 55, 40, 50, 50, 90}, p.Stats)
	assert.Equal(t, "electric", p.Type1)
	assert.Empty(t, p.Type2)
}

func TestLoadPokedex_DropsRowsWithoutNameOrType1(t *testing.T) {
	path := writeCSV(t, header+
		"Bulbasaur,grass,poison,45,49,49,65,65,45,0\n"+
		",fire,,39,52,43,60,50,65,0\n"+
		"Missingno,,,33,136,0,6,6,29,0\n"+
		"Mewtwo,psychic,,106,110,90,154,90,130,1\n")

	dex, err := LoadPokedex(path)
	require.NoError(t, err)

	assert.Equal(t, 2, dex.Len())
	assert.Equal(t, 2, dex.Dropped())
	assert.Equal(t, []string{"Bulbasaur", "Mewtwo"}, dex.Names())

	_, ok := dex.Lookup("Missingno")
	assert.False(t, ok)

	b, ok := dex.Lookup("Bulbasaur")
	require.True(t, ok)
	assert.Equal(t, Pokemon{Name: "Bulbasaur", Type1: "grass", Type2: "poison", Stats: Stats{45, 49, 49, 65, 65, 45}}, b)
}

func TestLoadPokedex_LookupIsCaseSensitive(t *testing.T) {
	dex, err := ReadPokedex(strings.NewReader(header + "Eevee,Normal,,55,55,50,45,65,55,0\n"))
	require.NoError(t, err)

	_, ok := dex.Lookup("eevee")
	assert.False(t, ok)

	p, ok := dex.Lookup("Eevee")
	require.True(t, ok)
	assert.Equal(t, "normal", p.Type1)
}

func TestLoadPokedex_DuplicateNameLastWins(t *testing.T) {
	dex, err := ReadPokedex(strings.NewReader(header +
		"Ditto,normal,,48,48,48,48,48,48,0\n" +
		"Ditto,normal,,1,2,3,4,5,6,0\n"))
	require.NoError(t, err)

	p, ok := dex.Lookup("Ditto")
	require.True(t, ok)
	assert.Equal(t, Stats{1, 2, 3, 4, 5, 6}, p.Stats)
}

func TestLoadPokedex_ColumnOrderAndFloatStats(t *testing.T) {
	csv := "speed,name,hp,attack,defense,sp_attack,sp_defense,type1,type2,generation\n" +
		"90.0,Pikachu,35.0,55,40,50,50,electric,,1\n"
	dex, err := ReadPokedex(strings.NewReader(csv))
	require.NoError(t, err)

	p, ok := dex.Lookup("Pikachu")
	require.True(t, ok)
	assert.Equal(t, Stats{35, 55, 40, 50, 50, 90}, p.Stats)
}

func TestLoadPokedex_EmptyStatKeepsRow(t *testing.T) {
	dex, err := ReadPokedex(strings.NewReader(header + "Unown,psychic,,48,72,48,72,48,,0\n"))
	require.NoError(t, err)

	p, ok := dex.Lookup("Unown")
	require.True(t, ok)
	assert.Equal(t, 0, p.Stats[5])
}

func TestLoadPokedex_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPokedex(filepath.Join(t.TempDir(), "absent.csv"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := ReadPokedex(strings.NewReader("name,type1,hp\nPikachu,electric,35\n"))
		require.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "type2")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ReadPokedex(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := ReadPokedex(strings.NewReader(header + "Pikachu,electric\n"))
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("non-numeric stat", func(t *testing.T) {
		_, err := ReadPokedex(strings.NewReader(header + "Pikachu,electric,,lots,55,40,50,50,90,0\n"))
		require.ErrorIs(t, err, ErrMalformed)
		assert.Contains(t, err.Error(), "hp")
	})
}

func TestStats(t *testing.T) {
	s, err := StatsFromSlice([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 21, s.Total())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, s.Slice())

	features := s.Features()
	require.Len(t, features, NumStats)
	assert.Equal(t, "6", features[5].String())

	_, err = StatsFromSlice([]int{1, 2, 3})
	assert.Error(t, err)
}
