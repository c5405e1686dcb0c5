package datasets

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix stores a row-major matrix in a flat contiguous buffer. Unlike
// mat.Dense it may have zero rows, which happens for empty partitions and
// empty sequences. It implements mat.Matrix.
type Matrix struct {
	Data []float64
	Rows int
	Cols int
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Data: make([]float64, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

// Dims implements mat.Matrix.
func (m *Matrix) Dims() (r, c int) {
	return m.Rows, m.Cols
}

// At implements mat.Matrix.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.Rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.Cols {
		panic(mat.ErrColAccess)
	}
	return m.Data[i*m.Cols+j]
}

// T implements mat.Matrix.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// Set writes v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	if i < 0 || i >= m.Rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.Cols {
		panic(mat.ErrColAccess)
	}
	m.Data[i*m.Cols+j] = v
}

// Row returns a view of row i. Writes through the slice modify the matrix.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.Rows {
		panic(mat.ErrRowAccess)
	}
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// SetCol fills column j from src, which must have Rows elements.
func (m *Matrix) SetCol(j int, src []float64) {
	if j < 0 || j >= m.Cols {
		panic(mat.ErrColAccess)
	}
	if len(src) != m.Rows {
		panic(mat.ErrColLength)
	}
	for i, v := range src {
		m.Data[i*m.Cols+j] = v
	}
}

// SelectRows copies the rows at the given positions, in the given order, into
// a new matrix. Repeated positions are copied repeatedly.
func (m *Matrix) SelectRows(indices []int) (*Matrix, error) {
	if err := checkIndices(indices, m.Rows); err != nil {
		return nil, err
	}
	out := NewMatrix(len(indices), m.Cols)
	for i, idx := range indices {
		copy(out.Data[i*m.Cols:(i+1)*m.Cols], m.Data[idx*m.Cols:(idx+1)*m.Cols])
	}
	return out, nil
}

// Dense copies the matrix into a gonum dense matrix. It returns nil for an
// empty matrix, which mat.Dense cannot represent.
func (m *Matrix) Dense() *mat.Dense {
	if m.Rows == 0 || m.Cols == 0 {
		return nil
	}
	data := make([]float64, len(m.Data))
	copy(data, m.Data)
	return mat.NewDense(m.Rows, m.Cols, data)
}

// ToGomlxTensor converts the matrix into a float32 gomlx tensor of shape
// [Rows, Cols].
func (m *Matrix) ToGomlxTensor() *tensors.Tensor {
	flat := make([]float32, len(m.Data))
	for i, v := range m.Data {
		flat[i] = float32(v)
	}
	return tensors.FromFlatDataAndDimensions(flat, m.Rows, m.Cols)
}

func checkIndices(indices []int, rows int) error {
	for pos, idx := range indices {
		if idx < 0 || idx >= rows {
			return errors.Wrapf(ErrIndexOutOfRange, "index %d at position %d not in [0, %d)", idx, pos, rows)
		}
	}
	return nil
}

func selectFloats(src []float64, indices []int) ([]float64, error) {
	if err := checkIndices(indices, len(src)); err != nil {
		return nil, err
	}
	out := make([]float64, len(indices))
	for i, idx := range indices {
		out[i] = src[idx]
	}
	return out, nil
}

func selectStrings(src []string, indices []int) ([]string, error) {
	if err := checkIndices(indices, len(src)); err != nil {
		return nil, err
	}
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = src[idx]
	}
	return out, nil
}
