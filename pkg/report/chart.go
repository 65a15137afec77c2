// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/radialab/sweepbench/pkg/sweep"
)

// RenderChart renders an HTML page with power and frequency line charts over
// the sweep spots for one board/channel.
func RenderChart(w io.Writer, board, channel int, results []sweep.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to chart")
	}

	spots := make([]string, len(results))
	powerData := make([]opts.LineData, len(results))
	freqData := make([]opts.LineData, len(results))
	for i, r := range results {
		spots[i] = "0x" + r.Spot
		powerData[i] = opts.LineData{Value: r.PowerDBm}
		freqData[i] = opts.LineData{Value: r.FrequencyHz / 1e9}
	}

	subtitle := fmt.Sprintf("DTRC board %d, channel %d (%d spots)", board, channel, len(results))

	power := charts.NewLine()
	power.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "DTRC Sweep Results", Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Peak Power vs Spot", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Spot"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Power (dBm)"}),
	)
	power.SetXAxis(spots).AddSeries("power_dbm", powerData,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))

	freq := charts.NewLine()
	freq.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Peak Frequency vs Spot", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Spot"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency (GHz)"}),
	)
	freq.SetXAxis(spots).AddSeries("freq_ghz", freqData,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))

	page := components.NewPage()
	page.AddCharts(power, freq)
	return page.Render(w)
}
