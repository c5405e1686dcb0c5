package datasets

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotLabelHistograms writes overlaid label histograms of the train (blue),
// val (orange) and test (red) partitions to path on fs, creating its
// directory. The image format follows the file extension. Empty partitions are
// left out.
func PlotLabelHistograms(fs afero.Fs, ys *LabelSplit, title, path string, bins int) error {
	if bins < 1 {
		return errors.Errorf("bins must be >= 1, got %d", bins)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "label"
	p.Y.Label.Text = "count"

	parts := []struct {
		name string
		vals []float64
		col  color.RGBA
	}{
		{"train", ys.Train, color.RGBA{R: 20, G: 80, B: 200, A: 140}},
		{"val", ys.Val, color.RGBA{R: 230, G: 140, B: 20, A: 140}},
		{"test", ys.Test, color.RGBA{R: 200, G: 30, B: 30, A: 140}},
	}
	added := 0
	for _, part := range parts {
		if len(part.vals) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(part.vals), bins)
		if err != nil {
			return errors.Wrapf(err, "%s histogram", part.name)
		}
		h.FillColor = part.col
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(part.name, h)
		added++
	}
	if added == 0 {
		return errors.New("no labels to plot")
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	img, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return errors.Wrapf(err, "failed to render %s", path)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	file, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if _, err := img.WriteTo(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return file.Close()
}
