package main

// Example command that loads the sequence split of a dataset, one-hot encodes
// the sequences and converts the training partition into gomlx tensors.
//
// Every Load call reads the CSV again; only the label column name and the
// index partition are kept by the loader.
//
// Usage:
//   go run ./datasets/example ../assets/BareNucAct_unirep.csv ../assets
//
// The second argument is the directory holding index_BareNucAct.json (or the
// index file of whichever dataset the CSV name refers to).

import (
	"fmt"
	"log"
	"os"

	"github.com/Noofbiz/uniRepData/datasets"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <dataset.csv> <index-dir>", os.Args[0])
	}

	l, err := datasets.NewLoader(os.Args[1], datasets.Config{IndexDir: os.Args[2]})
	if err != nil {
		log.Fatalf("failed to create loader: %v", err)
	}
	train, val, test := l.Indices()
	fmt.Printf("Dataset %s, label column %q\n", l.Dataset(), l.LabelColumn())
	fmt.Printf("  Index sizes: train=%d val=%d test=%d\n", len(train), len(val), len(test))

	xs, ys, err := l.LoadSplitSequence()
	if err != nil {
		log.Fatalf("failed to load sequence split: %v", err)
	}

	maxLen := max(xs.Train.MaxLen(), xs.Val.MaxLen(), xs.Test.MaxLen())
	inT := xs.Train.ToGomlxTensor(maxLen)
	labT, _, _ := ys.ToGomlxTensors()
	fmt.Printf("Created training tensors: input=%v label=%v\n", inT.Shape(), labT.Shape())

	if len(xs.Train.Sequences) > 0 {
		fmt.Printf("  First training sequence: %s (label %v)\n", xs.Train.Sequences[0], ys.Train[0])
	}

	// UniRep features go through the same split.
	fx, fy, err := l.LoadSplit()
	if err != nil {
		log.Fatalf("failed to load UniRep split: %v", err)
	}
	ds, err := datasets.NewBatchDataset("train", fx.Train, fy.Train, 32)
	if err != nil {
		log.Fatalf("failed to create batch dataset: %v", err)
	}
	_, inputs, labels, err := ds.Yield()
	if err != nil {
		log.Fatalf("failed to yield batch: %v", err)
	}
	fmt.Printf("First UniRep batch: input=%v label=%v\n", inputs[0].Shape(), labels[0].Shape())
}
