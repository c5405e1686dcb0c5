package datasets

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeMatrix(rows, cols int) *Matrix {
	m := NewMatrix(rows, cols)
	for i := range m.Data {
		m.Data[i] = float64(i)
	}
	return m
}

func TestMatrix_SelectRows(t *testing.T) {
	m := rangeMatrix(4, 2)

	sel, err := m.SelectRows([]int{3, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 7, 0, 1, 6, 7}, sel.Data)

	empty, err := m.SelectRows(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows)
	assert.Equal(t, 2, empty.Cols)

	_, err = m.SelectRows([]int{4})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.SelectRows([]int{-1})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMatrix_Dense(t *testing.T) {
	m := rangeMatrix(2, 3)
	d := m.Dense()
	require.NotNil(t, d)
	assert.Equal(t, 5.0, d.At(1, 2))

	d.Set(0, 0, 42)
	assert.Equal(t, 0.0, m.At(0, 0), "Dense must copy")

	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { m.At(0, 3) })
}

func TestMatrix_ToGomlxTensor(t *testing.T) {
	tt := rangeMatrix(3, 4).ToGomlxTensor()
	require.NotNil(t, tt)
	assert.Equal(t, []int{3, 4}, tt.Shape().Dimensions)
}

func TestSplitTensors(t *testing.T) {
	xs := &FeatureSplit{Train: rangeMatrix(3, 2), Val: rangeMatrix(1, 2), Test: rangeMatrix(2, 2)}
	tr, va, te := xs.ToGomlxTensors()
	assert.Equal(t, []int{3, 2}, tr.Shape().Dimensions)
	assert.Equal(t, []int{1, 2}, va.Shape().Dimensions)
	assert.Equal(t, []int{2, 2}, te.Shape().Dimensions)

	ys := &LabelSplit{Train: []float64{1, 2, 3}, Val: []float64{4}, Test: []float64{5, 6}}
	ytr, yva, yte := ys.ToGomlxTensors()
	assert.Equal(t, []int{3, 1}, ytr.Shape().Dimensions)
	assert.Equal(t, []int{1, 1}, yva.Shape().Dimensions)
	assert.Equal(t, []int{2, 1}, yte.Shape().Dimensions)
}

func TestSequenceSet_ToGomlxTensor(t *testing.T) {
	seqs := []string{"GAL", "MFWKQ"}
	enc, err := OneHotEncodeAll(seqs)
	require.NoError(t, err)
	set := &SequenceSet{Sequences: seqs, OneHot: enc}

	assert.Equal(t, 5, set.MaxLen())
	assert.Equal(t, []int{2, 5, 20}, set.ToGomlxTensor(0).Shape().Dimensions)
	assert.Equal(t, []int{2, 8, 20}, set.ToGomlxTensor(8).Shape().Dimensions)
}

func TestBatchDataset_Yield(t *testing.T) {
	x := rangeMatrix(5, 3)
	y := []float64{0, 1, 2, 3, 4}

	ds, err := NewBatchDataset("train", x, y, 2)
	require.NoError(t, err)
	assert.Equal(t, "train", ds.Name())
	assert.Equal(t, 5, ds.Len())

	var sizes []int
	for {
		_, inputs, labels, err := ds.Yield()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Len(t, inputs, 1)
		require.Len(t, labels, 1)
		dims := inputs[0].Shape().Dimensions
		assert.Equal(t, 3, dims[1])
		assert.Equal(t, dims[0], labels[0].Shape().Dimensions[0])
		sizes = append(sizes, dims[0])
	}
	assert.Equal(t, []int{2, 2, 1}, sizes)

	_, _, _, err = ds.Yield()
	assert.Equal(t, io.EOF, err)

	ds.Reset()
	_, inputs, _, err := ds.Yield()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, inputs[0].Shape().Dimensions)
}

func TestBatchDataset_Shuffle(t *testing.T) {
	x := rangeMatrix(6, 1)
	y := []float64{0, 1, 2, 3, 4, 5}

	a, err := NewBatchDataset("a", x, y, 6)
	require.NoError(t, err)
	b, err := NewBatchDataset("b", x, y, 6)
	require.NoError(t, err)

	a.Shuffle(7)
	b.Shuffle(7)
	assert.Equal(t, a.order, b.order)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, a.order)

	bx, by, err := a.Batch(a.order)
	require.NoError(t, err)
	for i := range by {
		assert.Equal(t, by[i], bx.At(i, 0), "features and labels must stay aligned")
	}
}

func TestNewBatchDataset_Errors(t *testing.T) {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for _, tc := range []struct {
		name string
		x    *Matrix
		y    []float64
		bs   int
		msg  string
	}{
		{"nil features", nil, nil, 1, "features are nil"},
		{"row mismatch", rangeMatrix(2, 1), []float64{1}, 1, "2 != 1"},
		{"batch size", rangeMatrix(2, 1), []float64{1, 2}, 0, "got 0"},
	} {
		_, err := NewBatchDataset("x", tc.x, tc.y, tc.bs)
		require.Error(t, err, tc.name)
		assert.Contains(t, err.Error(), tc.msg, tc.name)
		_, ok := err.(stackTracer)
		assert.True(t, ok, "%s: error should carry a stack trace", tc.name)
	}
}
