package datasets

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LabelStats summarizes the labels of one partition.
type LabelStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SplitSummary summarizes the three partitions of a split.
type SplitSummary struct {
	Dataset     DatasetID  `json:"dataset"`
	LabelColumn string     `json:"label_column"`
	Train       LabelStats `json:"train"`
	Val         LabelStats `json:"val"`
	Test        LabelStats `json:"test"`
}

// Summarize computes label statistics for each partition.
func Summarize(ys *LabelSplit) SplitSummary {
	return SplitSummary{
		Train: labelStats(ys.Train),
		Val:   labelStats(ys.Val),
		Test:  labelStats(ys.Test),
	}
}

func labelStats(y []float64) LabelStats {
	s := LabelStats{Count: len(y)}
	if len(y) == 0 {
		return s
	}
	s.Mean = stat.Mean(y, nil)
	if len(y) > 1 {
		s.StdDev = stat.StdDev(y, nil)
	}
	s.Min = floats.Min(y)
	s.Max = floats.Max(y)
	return s
}
