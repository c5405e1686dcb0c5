package datasets

import (
	"io"
	"math/rand"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// ToGomlxTensors converts the three feature partitions to float32 tensors of
// shape [rows, features].
func (s *FeatureSplit) ToGomlxTensors() (train, val, test *tensors.Tensor) {
	return s.Train.ToGomlxTensor(), s.Val.ToGomlxTensor(), s.Test.ToGomlxTensor()
}

// ToGomlxTensors converts the three label partitions to float32 tensors of
// shape [rows, 1].
func (s *LabelSplit) ToGomlxTensors() (train, val, test *tensors.Tensor) {
	return labelTensor(s.Train), labelTensor(s.Val), labelTensor(s.Test)
}

func labelTensor(y []float64) *tensors.Tensor {
	flat := make([]float32, len(y))
	for i, v := range y {
		flat[i] = float32(v)
	}
	return tensors.FromFlatDataAndDimensions(flat, len(y), 1)
}

// MaxLen returns the length of the longest sequence in the set.
func (s *SequenceSet) MaxLen() int {
	n := 0
	for _, oh := range s.OneHot {
		n = max(n, oh.Rows)
	}
	return n
}

// ToGomlxTensor packs the one-hot encodings into a float32 tensor of shape
// [len(Sequences), padTo, 20]. Shorter sequences are zero padded. If padTo is
// less than MaxLen, MaxLen is used.
func (s *SequenceSet) ToGomlxTensor(padTo int) *tensors.Tensor {
	width := len(Alphabet)
	steps := max(padTo, s.MaxLen())
	flat := make([]float32, len(s.OneHot)*steps*width)
	for i, oh := range s.OneHot {
		base := i * steps * width
		for j, v := range oh.Data {
			flat[base+j] = float32(v)
		}
	}
	return tensors.FromFlatDataAndDimensions(flat, len(s.OneHot), steps, width)
}

// BatchDataset yields one partition of a loaded split in batches, in the
// shape expected by gomlx training loops: Name, Yield and Reset.
type BatchDataset struct {
	// BatchSize is the number of rows per Yield. The last batch of an epoch
	// may be smaller.
	BatchSize int

	name   string
	x      *Matrix
	y      []float64
	order  []int
	cursor int
}

// NewBatchDataset wraps features x and labels y, which must have the same
// number of rows.
func NewBatchDataset(name string, x *Matrix, y []float64, batchSize int) (*BatchDataset, error) {
	if x == nil {
		return nil, errors.New("features are nil")
	}
	if x.Rows != len(y) {
		return nil, errors.Errorf("features and labels row counts don't match: %d != %d", x.Rows, len(y))
	}
	if batchSize < 1 {
		return nil, errors.Errorf("batch size must be >= 1, got %d", batchSize)
	}
	order := make([]int, x.Rows)
	for i := range order {
		order[i] = i
	}
	return &BatchDataset{
		BatchSize: batchSize,
		name:      name,
		x:         x,
		y:         y,
		order:     order,
	}, nil
}

// Name returns the name of the dataset.
func (d *BatchDataset) Name() string {
	return d.name
}

// Len returns the number of rows.
func (d *BatchDataset) Len() int {
	return d.x.Rows
}

// Shuffle permutes the row order with a deterministic seed and restarts the
// epoch.
func (d *BatchDataset) Shuffle(seed int64) {
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.cursor = 0
}

// Batch returns the rows at the given positions.
func (d *BatchDataset) Batch(indices []int) (*Matrix, []float64, error) {
	x, err := d.x.SelectRows(indices)
	if err != nil {
		return nil, nil, err
	}
	y, err := selectFloats(d.y, indices)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Yield returns the next batch as gomlx tensors. It returns io.EOF once every
// row of the epoch has been yielded.
func (d *BatchDataset) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if d.cursor >= len(d.order) {
		return nil, nil, nil, io.EOF
	}
	end := min(d.cursor+d.BatchSize, len(d.order))
	x, y, err := d.Batch(d.order[d.cursor:end])
	if err != nil {
		return nil, nil, nil, err
	}
	d.cursor = end
	return d, []*tensors.Tensor{x.ToGomlxTensor()}, []*tensors.Tensor{labelTensor(y)}, nil
}

// Reset restarts the epoch.
func (d *BatchDataset) Reset() {
	d.cursor = 0
}
