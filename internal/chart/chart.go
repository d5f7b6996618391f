// Package chart renders prediction results as a bar chart PNG.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"nationbot/core/logger"
	"nationbot/internal/country"
	"nationbot/internal/nationalize"

	"log/slog"
)

const (
	chartTitle  = "Вероятность этничностей/национальностей"
	chartYLabel = "Вероятность (%)"

	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// skyBlue matches the classic matplotlib bar color.
var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// RenderError reports a chart rendering failure.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("chart: render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Code reports the stable error code used in handler summaries.
func (e *RenderError) Code() string { return "RENDER_ERROR" }

// Render draws a bar chart of the given guesses and returns it as PNG bytes.
// Country codes are resolved to full names for the x axis, probabilities are
// shown as percentages with a value label above each bar.
func Render(guesses []nationalize.Guess) ([]byte, error) {
	start := time.Now()

	img, err := render(guesses)
	logOutcome(len(guesses), len(img), start, err)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return img, nil
}

func render(guesses []nationalize.Guess) ([]byte, error) {
	names := make([]string, len(guesses))
	values := make(plotter.Values, len(guesses))
	for i, g := range guesses {
		names[i] = country.Resolve(g.CountryID)
		values[i] = g.Probability * 100
	}

	p := plot.New()
	p.Title.Text = chartTitle
	p.Y.Label.Text = chartYLabel
	p.Y.Min = 0

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(40))
		if err != nil {
			return nil, fmt.Errorf("build bars: %w", err)
		}
		bars.Color = skyBlue
		bars.LineStyle.Width = 0
		p.Add(bars)

		p.NominalX(names...)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter

		labels, err := valueLabels(values)
		if err != nil {
			return nil, fmt.Errorf("build labels: %w", err)
		}
		p.Add(labels)
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write png: %w", err)
	}
	return buf.Bytes(), nil
}

// valueLabels places the percentage above each bar, matching the bar order
// on the nominal x axis.
func valueLabels(values plotter.Values) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(values))
	texts := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		texts[i] = fmt.Sprintf("%.1f%%", v)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}
	return labels, nil
}

func logOutcome(bars, size int, start time.Time, err error) {
	if logger.SVCChart == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("event", "render"),
		slog.Int("bars", bars),
		slog.Int("bytes", size),
		slog.Duration("duration", logger.Took(start)),
		slog.String("status", logger.Status(err)),
	}
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("err", logger.Sanitize(err.Error())))
	}
	logger.SVCChart.LogAttrs(logger.Background(), level, "render", attrs...)
}
