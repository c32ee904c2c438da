package preview

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Faultbox/crystalz/pkg/voxel"
)

// HistogramBins is the bin count used for grids with non-integral values.
const HistogramBins = 20

// HistogramHTML writes an interactive bar chart of the grid value
// distribution to path.
func HistogramHTML(g *voxel.Grid, path string) error {
	h := g.Histogram(HistogramBins)
	st := g.Stats()

	labels := make([]string, len(h.Counts))
	data := make([]opts.BarData, len(h.Counts))
	for i, c := range h.Counts {
		if h.Integral {
			labels[i] = fmt.Sprintf("%g", h.Edges[i])
		} else {
			labels[i] = fmt.Sprintf("%.3g-%.3g", h.Edges[i], h.Edges[i+1])
		}
		data[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "crystalz " + g.Method, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s occupancy", g.Method),
			Subtitle: fmt.Sprintf("n=%d mean=%.3f filled=%.1f%%", g.N, st.Mean, 100*st.Filled),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "value", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "voxels"}),
	)
	bar.SetXAxis(labels).AddSeries("voxels", data)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bar.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering histogram %s: %w", path, err)
	}
	return f.Close()
}
