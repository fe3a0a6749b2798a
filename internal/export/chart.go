package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/yachtscore/internal/board"
	"github.com/verte-zerg/yachtscore/internal/players"
)

const (
	chartHeight   = 400
	chartMinWidth = 400
	chartBarWidth = 48
)

var (
	barColor  = drawing.ColorFromHex("2e7d32")
	textColor = drawing.ColorFromHex("212121")
)

// WriteChartPNG renders a bar chart of each player's total.
func WriteChartPNG(w io.Writer, entries []players.Entry) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}

	maxTotal := 10.0
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		total := float64(e.Board.TotalScore)
		if total > maxTotal {
			maxTotal = total
		}
		bars = append(bars, chart.Value{
			Label: board.DisplayName(e.Name),
			Value: total,
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
			},
		})
	}

	width := 120 + len(entries)*(chartBarWidth*2)
	if width < chartMinWidth {
		width = chartMinWidth
	}

	graph := chart.BarChart{
		Title:    "Total score",
		Width:    width,
		Height:   chartHeight,
		BarWidth: chartBarWidth,
		TitleStyle: chart.Style{
			FontColor: textColor,
		},
		XAxis: chart.Style{
			FontColor: textColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: textColor,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxTotal * 1.1,
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
