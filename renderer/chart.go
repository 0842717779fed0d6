package renderer

import (
	"errors"

	charts "github.com/vicanso/go-charts/v2"

	"github.com/prometalle/metalsim"
)

// ValueChartPNG renders the portfolio value and invested cash over time as a
// PNG line chart.
func ValueChartPNG(r *metalsim.SimulationReport) ([]byte, error) {
	if len(r.Timeline) == 0 {
		return nil, errors.New("no data points to chart")
	}

	labels := make([]string, 0, len(r.Timeline))
	values := make([]float64, 0, len(r.Timeline))
	invested := make([]float64, 0, len(r.Timeline))
	for _, entry := range r.Timeline {
		labels = append(labels, entry.Date.String())
		values = append(values, entry.Total.InexactFloat64())
		invested = append(invested, entry.Invested.InexactFloat64())
	}

	painter, err := charts.LineRender([][]float64{values, invested},
		charts.TitleTextOptionFunc(r.Name+" • portfolio value"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{"value", "invested"}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// AllocationChartPNG renders the final per-metal allocation as a pie chart.
func AllocationChartPNG(r *metalsim.SimulationReport) ([]byte, error) {
	names := make([]string, 0, len(r.Positions))
	values := make([]float64, 0, len(r.Positions))
	for _, pos := range r.Positions {
		if pos.Value.IsPositive() {
			names = append(names, pos.Metal.String())
			values = append(values, pos.Value.InexactFloat64())
		}
	}
	if len(values) == 0 {
		return nil, errors.New("no positions to chart")
	}

	painter, err := charts.PieRender(values,
		charts.TitleTextOptionFunc(r.Name+" • final allocation"),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
