package datasets

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Loader reads a UniRep dataset CSV and splits it with the index partition of
// its dataset.
//
// The CSV is read again by every Load call. The loader only keeps the label
// column name and the index partition, both resolved by NewLoader.
type Loader struct {
	// Path of the CSV file.
	Path string

	cfg       Config
	fs        afero.Fs
	log       *zap.Logger
	dataset   DatasetID
	indexPath string
	labelCol  string
	index     *IndexPartition
}

// FeatureSplit holds the embedding rows of each partition.
type FeatureSplit struct {
	Train *Matrix
	Val   *Matrix
	Test  *Matrix
}

// LabelSplit holds the labels of each partition.
type LabelSplit struct {
	Train []float64
	Val   []float64
	Test  []float64
}

// SequenceSet is one partition of a sequence load. OneHot[i] encodes
// Sequences[i].
type SequenceSet struct {
	Sequences []string
	OneHot    []*Matrix
}

// SequenceSplit holds the sequences of each partition.
type SequenceSplit struct {
	Train *SequenceSet
	Val   *SequenceSet
	Test  *SequenceSet
}

// NewLoader resolves the label column of the CSV at path and loads the index
// partition of its dataset.
func NewLoader(path string, cfg Config) (*Loader, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Loader{
		Path: path,
		cfg:  cfg,
		fs:   cfg.Fs,
		log:  cfg.Logger.With(zap.String("path", path)),
	}

	header, err := l.readHeader()
	if err != nil {
		return nil, err
	}
	l.labelCol, err = resolveLabelColumn(header, cfg.LabelColumn, cfg.LabelMarker)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	l.dataset = cfg.Dataset
	if l.dataset == "" {
		l.dataset, err = DetectDatasetID(path)
		if err != nil {
			return nil, err
		}
	}
	l.indexPath, err = cfg.IndexPath(l.dataset)
	if err != nil {
		return nil, err
	}
	l.index, err = ReadIndexFile(l.fs, l.indexPath)
	if err != nil {
		return nil, err
	}

	l.log.Debug("loader ready",
		zap.String("dataset", string(l.dataset)),
		zap.String("label_column", l.labelCol),
		zap.String("index_file", l.indexPath),
		zap.Int("train", len(l.index.Train)),
		zap.Int("val", len(l.index.Val)),
		zap.Int("test", len(l.index.Test)),
	)
	return l, nil
}

// Dataset returns the dataset whose index partition was loaded.
func (l *Loader) Dataset() DatasetID { return l.dataset }

// IndexPath returns the path of the loaded index file.
func (l *Loader) IndexPath() string { return l.indexPath }

// LabelColumn returns the name of the label column.
func (l *Loader) LabelColumn() string { return l.labelCol }

// Indices returns the train, validation and test index lists as loaded.
func (l *Loader) Indices() (train, val, test []int) {
	return l.index.Train, l.index.Val, l.index.Test
}

// Partition returns the loaded index partition.
func (l *Loader) Partition() *IndexPartition { return l.index }

// LoadRaw reads the embedding features as a rows x FeatureCount matrix and
// the label column.
func (l *Loader) LoadRaw() (*Matrix, []float64, error) {
	df, err := l.readFrame()
	if err != nil {
		return nil, nil, err
	}

	cols := UniRepColumns(l.cfg.FeaturePrefix, l.cfg.FeatureCount)
	if err := requireColumns(df, cols...); err != nil {
		return nil, nil, errors.Wrapf(err, "%s", l.Path)
	}

	x := NewMatrix(df.Nrow(), len(cols))
	for j, name := range cols {
		s := df.Col(name)
		if s.Err != nil {
			return nil, nil, errors.Wrapf(s.Err, "failed to read column %s", name)
		}
		x.SetCol(j, s.Float())
	}

	y, err := l.labels(df)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// LoadSplit loads the features and labels and selects the rows of each
// partition, keeping the order of the index lists.
func (l *Loader) LoadSplit() (*FeatureSplit, *LabelSplit, error) {
	x, y, err := l.LoadRaw()
	if err != nil {
		return nil, nil, err
	}

	xs := &FeatureSplit{}
	parts := []struct {
		name string
		idx  []int
		dst  **Matrix
	}{
		{"train", l.index.Train, &xs.Train},
		{"val", l.index.Val, &xs.Val},
		{"test", l.index.Test, &xs.Test},
	}
	for _, p := range parts {
		m, err := x.SelectRows(p.idx)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s features", p.name)
		}
		*p.dst = m
	}

	ys, err := l.splitLabels(y)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// LoadRawSequence reads the sequence column and the label column.
func (l *Loader) LoadRawSequence() ([]string, []float64, error) {
	df, err := l.readFrame()
	if err != nil {
		return nil, nil, err
	}
	if err := requireColumns(df, l.cfg.SequenceColumn); err != nil {
		return nil, nil, errors.Wrapf(err, "%s", l.Path)
	}
	seqs := df.Col(l.cfg.SequenceColumn).Records()

	y, err := l.labels(df)
	if err != nil {
		return nil, nil, err
	}
	return seqs, y, nil
}

// LoadSplitSequence loads the sequences, one-hot encodes each of them and
// splits sequences, encodings and labels by row position.
func (l *Loader) LoadSplitSequence() (*SequenceSplit, *LabelSplit, error) {
	seqs, y, err := l.LoadRawSequence()
	if err != nil {
		return nil, nil, err
	}
	enc, err := OneHotEncodeAll(seqs)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s column of %s", OneHotColumn, l.Path)
	}

	xs := &SequenceSplit{}
	parts := []struct {
		name string
		idx  []int
		dst  **SequenceSet
	}{
		{"train", l.index.Train, &xs.Train},
		{"val", l.index.Val, &xs.Val},
		{"test", l.index.Test, &xs.Test},
	}
	for _, p := range parts {
		s, err := selectStrings(seqs, p.idx)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s sequences", p.name)
		}
		oh := make([]*Matrix, len(p.idx))
		for i, idx := range p.idx {
			oh[i] = enc[idx]
		}
		*p.dst = &SequenceSet{Sequences: s, OneHot: oh}
	}

	ys, err := l.splitLabels(y)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

func (l *Loader) splitLabels(y []float64) (*LabelSplit, error) {
	ys := &LabelSplit{}
	var err error
	if ys.Train, err = selectFloats(y, l.index.Train); err != nil {
		return nil, errors.Wrap(err, "train labels")
	}
	if ys.Val, err = selectFloats(y, l.index.Val); err != nil {
		return nil, errors.Wrap(err, "val labels")
	}
	if ys.Test, err = selectFloats(y, l.index.Test); err != nil {
		return nil, errors.Wrap(err, "test labels")
	}
	return ys, nil
}

func (l *Loader) labels(df dataframe.DataFrame) ([]float64, error) {
	if err := requireColumns(df, l.labelCol); err != nil {
		return nil, errors.Wrapf(ErrLabelColumnNotFound, "%s: %v", l.Path, err)
	}
	return df.Col(l.labelCol).Float(), nil
}

// readHeader reads only the first CSV record. Names are kept verbatim so they
// match the columns of readFrame.
func (l *Loader) readHeader() ([]string, error) {
	file, err := l.open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %s", l.Path)
	}
	l.log.Debug("read header", zap.Int("columns", len(header)))
	return header, nil
}

// readFrame reads the whole CSV. The sequence column is kept as strings
// whatever its content looks like. No cell is mapped to NaN on read, "NA" is a
// valid sequence; cells that don't parse as numbers still become NaN when a
// column is converted to floats.
func (l *Loader) readFrame() (dataframe.DataFrame, error) {
	file, err := l.open()
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues([]string{}),
		dataframe.WithTypes(map[string]series.Type{
			l.cfg.SequenceColumn: series.String,
		}),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(df.Err, "failed to parse %s", l.Path)
	}
	l.log.Debug("read csv", zap.Int("rows", df.Nrow()), zap.Int("columns", df.Ncol()))
	return df, nil
}

func (l *Loader) open() (afero.File, error) {
	file, err := l.fs.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "dataset %s", l.Path)
		}
		return nil, errors.Wrapf(err, "failed to open %s", l.Path)
	}
	return file, nil
}

// resolveLabelColumn returns explicit if it is a column, else the only column
// containing marker.
func resolveLabelColumn(header []string, explicit, marker string) (string, error) {
	if explicit != "" {
		for _, col := range header {
			if col == explicit {
				return col, nil
			}
		}
		return "", errors.Wrapf(ErrLabelColumnNotFound, "no column named %q", explicit)
	}

	var matches []string
	for _, col := range header {
		if strings.Contains(col, marker) {
			matches = append(matches, col)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.Wrapf(ErrLabelColumnNotFound, "no column contains %q", marker)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Wrapf(ErrAmbiguousLabelColumn, "columns %q all contain %q", matches, marker)
	}
}

func requireColumns(df dataframe.DataFrame, cols ...string) error {
	have := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		have[name] = true
	}
	var missing []string
	for _, col := range cols {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) > 3 {
		return errors.Wrapf(ErrColumnMissing, "%d columns missing, first %q", len(missing), missing[:3])
	}
	return errors.Wrapf(ErrColumnMissing, "%q", missing)
}
