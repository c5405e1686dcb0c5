package datasets

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// IndexPartition is the train/validation/test row assignment of a dataset.
// Disjointness and coverage are the index file's responsibility; see Validate.
type IndexPartition struct {
	Train []int `json:"train_index"`
	Val   []int `json:"val_index"`
	Test  []int `json:"test_index"`
}

// indexFile mirrors IndexPartition with pointers so absent fields can be told
// apart from empty lists.
type indexFile struct {
	Train *[]int `json:"train_index"`
	Val   *[]int `json:"val_index"`
	Test  *[]int `json:"test_index"`
}

// ReadIndexFile loads an index partition from a JSON file.
func ReadIndexFile(fs afero.Fs, path string) (*IndexPartition, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "index file %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read index file %s", path)
	}
	return parseIndexFile(buf, path)
}

func parseIndexFile(buf []byte, path string) (*IndexPartition, error) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()

	var f indexFile
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrapf(ErrInvalidIndexFile, "%s: %v", path, err)
	}

	fields := []struct {
		name string
		vals *[]int
	}{
		{"train_index", f.Train},
		{"val_index", f.Val},
		{"test_index", f.Test},
	}
	for _, fld := range fields {
		if fld.vals == nil {
			return nil, errors.Wrapf(ErrInvalidIndexFile, "%s: missing field %s", path, fld.name)
		}
		for i, v := range *fld.vals {
			if v < 0 {
				return nil, errors.Wrapf(ErrInvalidIndexFile, "%s: %s[%d] is negative (%d)", path, fld.name, i, v)
			}
		}
	}

	return &IndexPartition{Train: *f.Train, Val: *f.Val, Test: *f.Test}, nil
}

// Len returns the total number of indices over the three lists.
func (p *IndexPartition) Len() int {
	return len(p.Train) + len(p.Val) + len(p.Test)
}

// Validate checks that every index is a row of a file with rows rows, that the
// lists are disjoint and that together they cover every row. The loader never
// calls it.
func (p *IndexPartition) Validate(rows int) error {
	seen := make(map[int]string, p.Len())
	lists := []struct {
		name string
		idx  []int
	}{
		{"train", p.Train},
		{"val", p.Val},
		{"test", p.Test},
	}
	for _, l := range lists {
		if err := checkIndices(l.idx, rows); err != nil {
			return errors.Wrapf(err, "%s indices", l.name)
		}
		for _, idx := range l.idx {
			if prev, ok := seen[idx]; ok {
				return errors.Errorf("row %d appears in both %s and %s indices", idx, prev, l.name)
			}
			seen[idx] = l.name
		}
	}
	if len(seen) != rows {
		return errors.Errorf("index lists cover %d of %d rows", len(seen), rows)
	}
	return nil
}

// WriteEntry writes v as JSON to dir/name.json, creating dir if needed.
func WriteEntry(fs afero.Fs, dir, name string, v any) error {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode entry %s", name)
	}
	path := filepath.Join(dir, name+".json")
	if err := afero.WriteFile(fs, path, buf, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
