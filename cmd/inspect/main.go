package main

// inspect loads a UniRep dataset CSV with its train/val/test index file and
// reports the size and label statistics of each partition. It can also write
// the summary as JSON and plot the label distributions.
//
// Usage:
//
//	inspect data/BareNucAct_unirep.csv --index-dir data/ --summary-dir out/ --plot out/labels.png
//	inspect data/unirep.csv --config dataset.yaml --sequences

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Noofbiz/uniRepData/datasets"

	"github.com/alexflint/go-arg"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type args struct {
	Input       string `arg:"positional,required" help:"dataset CSV file, or a directory to scan for dataset CSVs"`
	Config      string `arg:"--config" help:"YAML config file"`
	Dataset     string `arg:"--dataset" help:"dataset id (NucAct, NucRepr, Tiling); detected from the file name if empty"`
	IndexDir    string `arg:"--index-dir" help:"directory holding the index files"`
	LabelColumn string `arg:"--label-column" help:"label column name; defaults to the column containing Avg"`
	Sequences   bool   `arg:"--sequences" help:"load sequences and one-hot encodings instead of UniRep features"`
	Validate    bool   `arg:"--validate" help:"check that the index lists are disjoint and cover every row"`
	SummaryDir  string `arg:"--summary-dir" help:"write <dataset>_summary.json to this directory"`
	Plot        string `arg:"--plot" help:"write label histograms to this image file"`
	Bins        int    `arg:"--bins" default:"30" help:"histogram bins"`
	Verbose     bool   `arg:"-v,--verbose" help:"debug logging"`
}

func (args) Description() string {
	return "Load a UniRep dataset and summarize its train/val/test split."
}

func main() {
	var a args
	arg.MustParse(&a)

	logger, err := newLogger(a.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(a, afero.NewOsFs(), logger); err != nil {
		logger.Fatal("inspect failed", zap.Error(err))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(a args, fs afero.Fs, logger *zap.Logger) error {
	cfg := datasets.Config{}
	if a.Config != "" {
		var err error
		if cfg, err = datasets.LoadConfig(fs, a.Config); err != nil {
			return err
		}
	}
	if a.Dataset != "" {
		id, err := datasets.ParseDatasetID(a.Dataset)
		if err != nil {
			return err
		}
		cfg.Dataset = id
	}
	if a.IndexDir != "" {
		cfg.IndexDir = a.IndexDir
	}
	if a.LabelColumn != "" {
		cfg.LabelColumn = a.LabelColumn
	}
	cfg.Fs = fs
	cfg.Logger = logger

	paths, err := inputPaths(fs, a.Input)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := inspect(a, path, cfg, logger); err != nil {
			return err
		}
	}
	return nil
}

// inputPaths expands a directory into its dataset CSVs.
func inputPaths(fs afero.Fs, input string) ([]string, error) {
	info, err := fs.Stat(input)
	if err != nil || !info.IsDir() {
		return []string{input}, nil
	}
	found, err := datasets.FindDatasetCSVs(fs, input)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, id := range datasets.KnownDatasets {
		if p, ok := found[id]; ok {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func inspect(a args, path string, cfg datasets.Config, logger *zap.Logger) error {
	l, err := datasets.NewLoader(path, cfg)
	if err != nil {
		return err
	}
	log := logger.With(zap.String("dataset", string(l.Dataset())), zap.String("path", path))

	var ys *datasets.LabelSplit
	if a.Sequences {
		var xs *datasets.SequenceSplit
		xs, ys, err = l.LoadSplitSequence()
		if err != nil {
			return err
		}
		log.Info("loaded sequence split",
			zap.Int("train", len(xs.Train.Sequences)),
			zap.Int("val", len(xs.Val.Sequences)),
			zap.Int("test", len(xs.Test.Sequences)),
			zap.Int("max_len", max(xs.Train.MaxLen(), xs.Val.MaxLen(), xs.Test.MaxLen())),
		)
	} else {
		var xs *datasets.FeatureSplit
		xs, ys, err = l.LoadSplit()
		if err != nil {
			return err
		}
		log.Info("loaded feature split",
			zap.Int("train", xs.Train.Rows),
			zap.Int("val", xs.Val.Rows),
			zap.Int("test", xs.Test.Rows),
			zap.Int("features", xs.Train.Cols),
		)
	}

	if a.Validate {
		rows := len(ys.Train) + len(ys.Val) + len(ys.Test)
		if n, err := datasets.CountRows(cfg.Fs, path); err == nil {
			rows = n
		}
		if err := l.Partition().Validate(rows); err != nil {
			log.Warn("index partition is not a clean split", zap.Error(err))
		}
	}

	summary := datasets.Summarize(ys)
	summary.Dataset = l.Dataset()
	summary.LabelColumn = l.LabelColumn()
	log.Info("label statistics",
		zap.Any("train", summary.Train),
		zap.Any("val", summary.Val),
		zap.Any("test", summary.Test),
	)

	if a.SummaryDir != "" {
		name := strings.ToLower(string(l.Dataset())) + "_summary"
		if err := datasets.WriteEntry(cfg.Fs, a.SummaryDir, name, summary); err != nil {
			return err
		}
		log.Info("wrote summary", zap.String("file", filepath.Join(a.SummaryDir, name+".json")))
	}

	if a.Plot != "" {
		out := a.Plot
		// one plot per dataset when a directory was scanned
		if isDir(cfg.Fs, a.Input) {
			ext := filepath.Ext(out)
			out = strings.TrimSuffix(out, ext) + "_" + string(l.Dataset()) + ext
		}
		title := fmt.Sprintf("%s: %s", l.Dataset(), l.LabelColumn())
		if err := datasets.PlotLabelHistograms(cfg.Fs, ys, title, out, a.Bins); err != nil {
			return err
		}
		log.Info("wrote plot", zap.String("file", out))
	}
	return nil
}

func isDir(fs afero.Fs, path string) bool {
	ok, err := afero.IsDir(fs, path)
	return err == nil && ok
}
