package datasets

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Config controls how a Loader finds its label column and index file. Zero
// values are replaced with the package defaults by NewLoader.
type Config struct {
	// Dataset selects the index file. If empty, it is detected from the CSV
	// path with DetectDatasetID.
	Dataset DatasetID `yaml:"dataset"`

	// IndexDir is joined to relative index file paths.
	IndexDir string `yaml:"index_dir"`

	// IndexFiles maps dataset ids to index file paths. Entries missing here
	// fall back to DefaultIndexFiles.
	IndexFiles map[DatasetID]string `yaml:"index_files"`

	// LabelColumn names the label column. If empty, the single column
	// containing LabelMarker is used.
	LabelColumn string `yaml:"label_column"`
	LabelMarker string `yaml:"label_marker"`

	FeaturePrefix  string `yaml:"feature_prefix"`
	FeatureCount   int    `yaml:"feature_count"`
	SequenceColumn string `yaml:"sequence_column"`

	// Fs is used for every file access. Defaults to the OS filesystem.
	Fs afero.Fs `yaml:"-"`

	// Logger defaults to a no-op logger.
	Logger *zap.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration matching the UniRep CSV exports.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.LabelMarker == "" {
		c.LabelMarker = LabelMarker
	}
	if c.FeaturePrefix == "" {
		c.FeaturePrefix = UniRepPrefix
	}
	if c.FeatureCount == 0 {
		c.FeatureCount = UniRepLen
	}
	if c.SequenceColumn == "" {
		c.SequenceColumn = SequenceColumn
	}
	files := make(map[DatasetID]string, len(DefaultIndexFiles))
	for id, f := range DefaultIndexFiles {
		files[id] = f
	}
	for id, f := range c.IndexFiles {
		files[id] = f
	}
	c.IndexFiles = files
	// ids without an index entry of their own take the canonical spelling
	if _, ok := files[c.Dataset]; !ok && c.Dataset != "" {
		if id, err := ParseDatasetID(string(c.Dataset)); err == nil {
			c.Dataset = id
		}
	}
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Validate checks the fields that have no usable default.
func (c Config) Validate() error {
	if c.FeatureCount < 0 {
		return errors.Errorf("feature_count must be >= 0, got %d", c.FeatureCount)
	}
	if c.Dataset != "" {
		if _, err := ParseDatasetID(string(c.Dataset)); err != nil {
			if _, ok := c.IndexFiles[c.Dataset]; !ok {
				return err
			}
		}
	}
	return nil
}

// IndexPath resolves the index file of a dataset.
func (c Config) IndexPath(id DatasetID) (string, error) {
	name, ok := c.IndexFiles[id]
	if !ok || name == "" {
		return "", errors.Wrapf(ErrFileNotFound, "no index file configured for dataset %q", id)
	}
	if c.IndexDir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(c.IndexDir, name)
	}
	return name, nil
}

// LoadConfig reads a YAML configuration file. The returned config has no
// defaults applied.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	var cfg Config
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrapf(ErrFileNotFound, "config %s", path)
		}
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if cfg.Dataset != "" {
		id, err := ParseDatasetID(string(cfg.Dataset))
		if err == nil {
			cfg.Dataset = id
		}
	}
	return cfg, nil
}
