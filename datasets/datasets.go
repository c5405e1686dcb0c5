package datasets

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// This file holds the shared vocabulary of the package: the column layout of
// the UniRep CSV exports and the set of datasets with a known index partition.
//
// Layout of a dataset CSV:
//   - avg_UniRep_0 .. avg_UniRep_1899: averaged UniRep embedding (float)
//   - "Extended Domain sequence": amino-acid sequence of the domain
//   - exactly one label column whose name contains "Avg" (e.g. Avg_Fitness)
//
// Every load call reads the whole file again. Nothing is cached between
// calls; only the label column name and the index partition live on the
// Loader.

const (
	// UniRepLen is the width of a UniRep embedding.
	UniRepLen = 1900

	// UniRepPrefix prefixes the positional embedding column names.
	UniRepPrefix = "avg_UniRep_"

	// SequenceColumn holds the raw amino-acid sequence.
	SequenceColumn = "Extended Domain sequence"

	// OneHotColumn names the derived one-hot column of sequence loads.
	OneHotColumn = "OneHotEnc"

	// LabelMarker is the substring identifying the label column when none is
	// configured explicitly.
	LabelMarker = "Avg"
)

// DatasetID identifies a dataset with a known train/val/test index file.
type DatasetID string

const (
	NucAct  DatasetID = "NucAct"
	NucRepr DatasetID = "NucRepr"
	Tiling  DatasetID = "Tiling"
)

// KnownDatasets lists the dataset ids in the order DetectDatasetID probes
// them. "NucAct" must come before "NucRepr".
var KnownDatasets = []DatasetID{NucAct, NucRepr, Tiling}

// DefaultIndexFiles maps each dataset to its index file name.
var DefaultIndexFiles = map[DatasetID]string{
	NucAct:  "index_BareNucAct.json",
	NucRepr: "index_BareNucRepr.json",
	Tiling:  "index_BareTilingRepressors.json",
}

// ParseDatasetID validates a dataset name.
func ParseDatasetID(s string) (DatasetID, error) {
	for _, id := range KnownDatasets {
		if strings.EqualFold(s, string(id)) {
			return id, nil
		}
	}
	return "", errors.Errorf("unknown dataset %q (want one of %v)", s, KnownDatasets)
}

// DetectDatasetID picks the dataset from a substring of the CSV path. It is
// the fallback used when Config.Dataset is empty.
func DetectDatasetID(path string) (DatasetID, error) {
	for _, id := range KnownDatasets {
		if strings.Contains(path, string(id)) {
			return id, nil
		}
	}
	return "", errors.Wrapf(ErrFileNotFound, "no index file for %s", path)
}

// UniRepColumns returns the n embedding column names for prefix.
func UniRepColumns(prefix string, n int) []string {
	cols := make([]string, n)
	for i := range n {
		cols[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return cols
}
