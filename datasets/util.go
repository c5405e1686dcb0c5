package datasets

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// CountRows counts the data rows of a CSV file (excluding header).
func CountRows(fs afero.Fs, path string) (int, error) {
	file, err := fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.ReuseRecord = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, err
	}

	count := 0
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		count++
	}

	return count, nil
}

// FindDatasetCSVs returns the CSV files in dir whose names identify a known
// dataset, keyed by dataset. When several files match one dataset the first
// in lexical order wins.
func FindDatasetCSVs(fs afero.Fs, dir string) (map[DatasetID]string, error) {
	matches, err := afero.Glob(fs, filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.Wrapf(ErrFileNotFound, "no CSV files found in %s", dir)
	}
	sort.Strings(matches)

	found := make(map[DatasetID]string)
	for _, path := range matches {
		id, err := DetectDatasetID(filepath.Base(path))
		if err != nil {
			continue
		}
		if _, ok := found[id]; !ok {
			found[id] = path
		}
	}
	if len(found) == 0 {
		return nil, errors.Wrapf(ErrFileNotFound, "no dataset CSV files found in %s", dir)
	}
	return found, nil
}
