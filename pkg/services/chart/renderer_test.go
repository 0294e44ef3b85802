package chart

import (
	"bytes"
	"image"
	_ "image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

func series(values ...float64) []domain.DailyAggregate {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.DailyAggregate, len(values))
	for i, v := range values {
		out[i] = domain.DailyAggregate{Day: start.AddDate(0, 0, i), TotalUsage: v}
	}
	return out
}

func TestRenderTrendChart(t *testing.T) {
	tests := []struct {
		name  string
		daily []domain.DailyAggregate
	}{
		{"three weeks", series(100, 120, 90, 130, 140, 150, 110, 120, 125, 130, 135, 140, 160, 170, 150, 155, 165, 170, 180, 175, 190)},
		{"single point", series(42)},
		{"single zero point", series(0)},
		{"two days", series(100, 110)},
		{"one week", series(100, 100, 100, 100, 100, 100, 100)},
		{"eight days", series(100, 100, 100, 100, 100, 100, 100, 100)},
		{"flat zero usage", series(0, 0, 0)},
		{"fourteen flat days", series(50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			cfg := DefaultConfig()
			r := NewRenderer(cfg)

			// When
			artifact, err := r.RenderTrendChart(tt.daily)

			// Then
			require.NoError(t, err)
			assert.NotEmpty(t, artifact.ID)
			assert.Equal(t, cfg.Width, artifact.WidthPx)
			assert.Equal(t, cfg.Height, artifact.HeightPx)

			decoded, kind, err := image.DecodeConfig(bytes.NewReader(artifact.PNG))
			require.NoError(t, err)
			assert.Equal(t, "png", kind)
			assert.Equal(t, cfg.Width, decoded.Width)
			assert.Equal(t, cfg.Height, decoded.Height)
		})
	}
}

func TestRenderTrendChart_UniqueIDs(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	a, err := r.RenderTrendChart(series(1, 2))
	require.NoError(t, err)
	b, err := r.RenderTrendChart(series(1, 2))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestRenderTrendChart_Empty(t *testing.T) {
	_, err := NewRenderer(DefaultConfig()).RenderTrendChart(nil)

	require.Error(t, err)
	assert.Equal(t, domain.KindRenderError, domain.KindOf(err))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSummary(t *testing.T) {
	assert.Equal(t,
		"Latest usage: 1,500 | Period change: +50.0% | Window: 2024-01-01 to 2024-01-03",
		Summary(series(1000, 1200, 1500.4)))
	assert.Empty(t, Summary(nil))
}

func TestWeeklyTicks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ticks := weeklyTicks(start, start.AddDate(0, 0, 20))

	require.Len(t, ticks, 3)
	assert.Equal(t, "01 Jan", ticks[0].Label)
	assert.Equal(t, "08 Jan", ticks[1].Label)
	assert.Equal(t, "15 Jan", ticks[2].Label)
}

func TestXTicks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		labels   []string
		min, max time.Time
	}{
		{
			name:   "single day",
			end:    start,
			labels: []string{"", "01 Jan", ""},
			min:    start.Add(-24 * time.Hour),
			max:    start.Add(24 * time.Hour),
		},
		{
			name:   "one week",
			end:    start.AddDate(0, 0, 6),
			labels: []string{"", "01 Jan", ""},
			min:    start.Add(-12 * time.Hour),
			max:    start.AddDate(0, 0, 6).Add(12 * time.Hour),
		},
		{
			name:   "eight days",
			end:    start.AddDate(0, 0, 7),
			labels: []string{"", "01 Jan", "08 Jan", ""},
			min:    start.Add(-12 * time.Hour),
			max:    start.AddDate(0, 0, 7).Add(12 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := xTicks(start, tt.end)

			labels := make([]string, len(ticks))
			for i, tick := range ticks {
				labels[i] = tick.Label
			}
			assert.Equal(t, tt.labels, labels)
			assert.Equal(t, gochart.TimeToFloat64(tt.min), ticks[0].Value)
			assert.Equal(t, gochart.TimeToFloat64(tt.max), ticks[len(ticks)-1].Value)
			assert.Less(t, ticks[0].Value, ticks[len(ticks)-1].Value)
		})
	}
}
