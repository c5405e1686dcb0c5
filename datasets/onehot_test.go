package datasets

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestOneHotEncode_SingleSymbol(t *testing.T) {
	m, err := OneHotEncode("G")
	require.NoError(t, err)

	want := make([]float64, 20)
	want[0] = 1
	r, c := m.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 20, c)
	assert.Equal(t, want, m.Row(0))
}

func TestOneHotEncode_ShapeAndRows(t *testing.T) {
	for _, seq := range []string{"A", Alphabet, "MKTAYIAKQRQISFVKSHFSRQ", "WWWW"} {
		m, err := OneHotEncode(seq)
		require.NoError(t, err, seq)

		r, c := m.Dims()
		require.Equal(t, len(seq), r, seq)
		require.Equal(t, len(Alphabet), c, seq)
		for i := range r {
			row := m.Row(i)
			if floats.Sum(row) != 1 {
				t.Fatalf("%s: row %d sums to %v", seq, i, floats.Sum(row))
			}
			assert.Equal(t, 1.0, row[aaIndex[rune(seq[i])]])
		}
	}
}

func TestOneHotEncode_AlphabetIsIdentity(t *testing.T) {
	m, err := OneHotEncode(Alphabet)
	require.NoError(t, err)

	id := mat.NewDiagDense(len(Alphabet), nil)
	for i := range len(Alphabet) {
		id.SetDiag(i, 1)
	}
	assert.True(t, mat.Equal(m, id))
	assert.True(t, mat.Equal(m.T(), id))
}

func TestOneHotEncode_Deterministic(t *testing.T) {
	a, err := OneHotEncode("QESPVICY")
	require.NoError(t, err)
	b, err := OneHotEncode("QESPVICY")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOneHotEncode_Empty(t *testing.T) {
	m, err := OneHotEncode("")
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 0, r)
	assert.Equal(t, 20, c)
	assert.Nil(t, m.Dense())
}

func TestOneHotEncode_InvalidSymbol(t *testing.T) {
	for _, seq := range []string{"GAX", "gal", "GA L", "B"} {
		_, err := OneHotEncode(seq)
		require.Error(t, err, seq)
		assert.True(t, errors.Is(err, ErrInvalidSymbol), "%s: got %v", seq, err)
	}

	_, err := OneHotEncode("GALZ")
	var symErr *InvalidSymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 'Z', symErr.Symbol)
	assert.Equal(t, 3, symErr.Position)
	assert.Equal(t, "GALZ", symErr.Sequence)

	_, err = OneHotEncode("Gé")
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 'é', symErr.Symbol)
	assert.Equal(t, 1, symErr.Position)

	_, err = OneHotEncode("ééX")
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 0, symErr.Position)
}

func TestOneHotEncodeAll(t *testing.T) {
	enc, err := OneHotEncodeAll([]string{"GA", "T"})
	require.NoError(t, err)
	require.Len(t, enc, 2)
	assert.Equal(t, 2, enc[0].Rows)
	assert.Equal(t, 1.0, enc[1].At(0, 19))

	_, err = OneHotEncodeAll([]string{"GA", "T*"})
	assert.True(t, errors.Is(err, ErrInvalidSymbol))
}

func TestOneHotDecode(t *testing.T) {
	for _, seq := range []string{"", "G", Alphabet, "TDNRHYCIVPSEQKWFMLAG"} {
		m, err := OneHotEncode(seq)
		require.NoError(t, err)
		got, err := OneHotDecode(m)
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	}

	bad := NewMatrix(1, 20)
	_, err := OneHotDecode(bad)
	assert.Error(t, err, "row without hot column")

	bad.Set(0, 1, 1)
	bad.Set(0, 2, 1)
	_, err = OneHotDecode(bad)
	assert.Error(t, err, "row with two hot columns")

	_, err = OneHotDecode(NewMatrix(1, 5))
	assert.Error(t, err, "wrong width")
}
