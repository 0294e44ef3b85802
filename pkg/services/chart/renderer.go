// Package chart renders the daily usage trend as a fixed-size PNG.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/de-tools/insight-deck/pkg/format"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/metrics"
)

// RollingWindow is the rolling-average window in days.
const RollingWindow = 7

const tickLayout = "02 Jan"

var ErrNoData = errors.New("no daily points to chart")

// Config holds rendering parameters for the trend chart.
type Config struct {
	Width       int // pixels
	Height      int // pixels
	Title       string
	YAxisName   string
	FontSize    float64
	RawColor    drawing.Color
	TrendColor  drawing.Color
	MarkerColor drawing.Color
	GridColor   drawing.Color
	TextColor   drawing.Color
}

// DefaultConfig is a 16:5.2 image, wide enough to keep its aspect when fitted into the dashboard panel.
func DefaultConfig() Config {
	return Config{
		Width:       1600,
		Height:      520,
		Title:       "Cloud Platform Usage Trend",
		YAxisName:   "Usage units",
		FontSize:    10,
		RawColor:    drawing.ColorFromHex("1f77b4").WithAlpha(90),
		TrendColor:  drawing.ColorFromHex("ff7f0e"),
		MarkerColor: drawing.ColorFromHex("1f77b4"),
		GridColor:   drawing.ColorFromHex("e6e6e6"),
		TextColor:   drawing.ColorFromHex("333333"),
	}
}

type Renderer interface {
	RenderTrendChart(daily []domain.DailyAggregate) (domain.ChartArtifact, error)
}

type renderer struct {
	cfg   Config
	newID func() string
}

func NewRenderer(cfg Config) Renderer {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg = DefaultConfig()
	}
	return &renderer{cfg: cfg, newID: uuid.NewString}
}

// RenderTrendChart plots total usage per day with its 7-day rolling mean, marks and labels
// the latest point, and overlays a one-line summary of the window.
func (r *renderer) RenderTrendChart(daily []domain.DailyAggregate) (domain.ChartArtifact, error) {
	if len(daily) == 0 {
		return domain.ChartArtifact{}, domain.NewRenderError("chart", ErrNoData)
	}

	days := make([]time.Time, len(daily))
	usage := make([]float64, len(daily))
	for i, d := range daily {
		days[i] = d.Day
		usage[i] = d.TotalUsage
	}
	first, last := daily[0], daily[len(daily)-1]

	graph := gochart.Chart{
		Title:  r.cfg.Title,
		Width:  r.cfg.Width,
		Height: r.cfg.Height,
		TitleStyle: gochart.Style{
			FontSize:  r.cfg.FontSize + 5,
			FontColor: r.cfg.TextColor,
		},
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Left: 20, Right: 40, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Range: xRange(first.Day, last.Day),
			Ticks: xTicks(first.Day, last.Day),
			Style: gochart.Style{FontSize: r.cfg.FontSize - 1, FontColor: r.cfg.TextColor},
		},
		YAxis: gochart.YAxis{
			Name:      r.cfg.YAxisName,
			NameStyle: gochart.Style{FontSize: r.cfg.FontSize, FontColor: r.cfg.TextColor},
			Range:     yRange(usage),
			Style:     gochart.Style{FontSize: r.cfg.FontSize - 1, FontColor: r.cfg.TextColor},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return format.Number(f, 0)
				}
				return ""
			},
			GridMajorStyle: gochart.Style{StrokeColor: r.cfg.GridColor, StrokeWidth: 0.8},
		},
	}

	if len(daily) > 1 {
		graph.Series = append(graph.Series,
			gochart.TimeSeries{
				Name:    "Daily usage",
				Style:   gochart.Style{StrokeColor: r.cfg.RawColor, StrokeWidth: 1.1},
				XValues: days,
				YValues: usage,
			},
			gochart.TimeSeries{
				Name:    fmt.Sprintf("%d-day rolling avg", RollingWindow),
				Style:   gochart.Style{StrokeColor: r.cfg.TrendColor, StrokeWidth: 2.4},
				XValues: days,
				YValues: metrics.RollingMean(usage, RollingWindow),
			},
		)
	}
	graph.Series = append(graph.Series,
		gochart.TimeSeries{
			Name: "Latest",
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    5,
				DotColor:    r.cfg.MarkerColor,
			},
			XValues: []time.Time{last.Day},
			YValues: []float64{last.TotalUsage},
		},
		gochart.AnnotationSeries{
			Style: gochart.Style{
				FontSize:    r.cfg.FontSize,
				FontColor:   r.cfg.TextColor,
				StrokeColor: r.cfg.MarkerColor,
				FillColor:   drawing.ColorWhite,
			},
			Annotations: []gochart.Value2{{
				XValue: gochart.TimeToFloat64(last.Day),
				YValue: last.TotalUsage,
				Label:  "Latest: " + format.Number(math.Trunc(last.TotalUsage), 0),
			}},
		},
	)
	graph.Elements = []gochart.Renderable{
		r.summary(Summary(daily)),
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return domain.ChartArtifact{}, domain.NewRenderError("chart", err)
	}

	return domain.ChartArtifact{
		ID:       r.newID(),
		PNG:      buf.Bytes(),
		WidthPx:  r.cfg.Width,
		HeightPx: r.cfg.Height,
	}, nil
}

// Summary is the overlay line: latest value, first-to-last change and the date window.
func Summary(daily []domain.DailyAggregate) string {
	if len(daily) == 0 {
		return ""
	}
	first, last := daily[0], daily[len(daily)-1]
	return fmt.Sprintf("Latest usage: %s | Period change: %s | Window: %s to %s",
		format.Number(math.Trunc(last.TotalUsage), 0),
		format.SignedPercent(metrics.GrowthPct(first.TotalUsage, last.TotalUsage)),
		first.Day.Format(time.DateOnly),
		last.Day.Format(time.DateOnly),
	)
}

func (r *renderer) summary(text string) gochart.Renderable {
	return func(rd gochart.Renderer, box gochart.Box, defaults gochart.Style) {
		style := gochart.Style{
			FontSize:  r.cfg.FontSize,
			FontColor: r.cfg.TextColor.WithAlpha(220),
		}
		style.InheritFrom(defaults).WriteTextOptionsToRenderer(rd)
		rd.Text(text, box.Left+12, box.Top+int(r.cfg.FontSize*2))
	}
}

// xWindow pads the days by half a day each side, and by a full day for a single point.
func xWindow(start, end time.Time) (time.Time, time.Time) {
	pad := 12 * time.Hour
	if !end.After(start) {
		pad = 24 * time.Hour
	}
	return start.Add(-pad), end.Add(pad)
}

func xRange(start, end time.Time) *gochart.ContinuousRange {
	lo, hi := xWindow(start, end)
	return &gochart.ContinuousRange{
		Min: gochart.TimeToFloat64(lo),
		Max: gochart.TimeToFloat64(hi),
	}
}

// yRange starts at zero and leaves headroom for the annotation. A flat zero series gets a unit range.
func yRange(values []float64) *gochart.ContinuousRange {
	maxV := 0.0
	for _, v := range values {
		maxV = math.Max(maxV, v)
	}
	if maxV == 0 {
		maxV = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: maxV * 1.15}
}

// xTicks are the weekly ticks bracketed by two unlabelled ticks at the padded window edges.
// go-chart sizes the axis from explicit ticks, so the brackets keep the range wide for short windows.
func xTicks(start, end time.Time) []gochart.Tick {
	lo, hi := xWindow(start, end)
	ticks := []gochart.Tick{{Value: gochart.TimeToFloat64(lo)}}
	ticks = append(ticks, weeklyTicks(start, end)...)
	return append(ticks, gochart.Tick{Value: gochart.TimeToFloat64(hi)})
}

// weeklyTicks places a tick every 7 days from the first day.
func weeklyTicks(start, end time.Time) []gochart.Tick {
	var ticks []gochart.Tick
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		ticks = append(ticks, gochart.Tick{Value: gochart.TimeToFloat64(d), Label: d.Format(tickLayout)})
	}
	return ticks
}
