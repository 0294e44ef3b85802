package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

func TestPageBuilder(t *testing.T) {
	// Given
	theme := DefaultTheme()
	b := NewPage("dashboard", theme, nil)
	accent := theme.Palette.Accent2

	// When
	b.Background(theme.Palette.Background)
	card := b.Card(domain.NewBox(domain.Inches(1), domain.Inches(1), domain.Inches(3), domain.Inches(1.5)), &accent)
	b.Badge(domain.NewBox(domain.Inches(1.2), domain.Inches(1.1), domain.Inches(0.9), domain.Inches(0.26)), "GOOD", accent)
	b.Label(card.Inset(theme.Inset, theme.Inset), "Usage growth", domain.TextStyle{Size: 12, Bold: true}, 9)
	fit := b.Image(domain.NewBox(domain.Inches(5), domain.Inches(1), domain.Inches(7), domain.Inches(3)),
		domain.ChartArtifact{ID: "chart", WidthPx: 1600, HeightPx: 520})
	page, err := b.Page()

	// Then
	require.NoError(t, err)
	assert.Equal(t, "dashboard", page.Name)
	assert.Equal(t, theme.CanvasWidth, page.Width)
	assert.Len(t, page.ElementsOfKind(domain.KindBackground), 1)
	assert.Len(t, page.ElementsOfKind(domain.KindCard), 1)
	assert.Len(t, page.ElementsOfKind(domain.KindShape), 1, "accent bar")
	assert.Len(t, page.ElementsOfKind(domain.KindBadge), 1)

	images := page.ElementsOfKind(domain.KindImage)
	require.Len(t, images, 1)
	assert.Equal(t, fit.Box(), images[0].Box)
	assert.Equal(t, "chart", images[0].Image.ArtifactID)

	bar := page.ElementsOfKind(domain.KindShape)[0]
	assert.Equal(t, card.X, bar.Box.X)
	assert.Equal(t, card.H, bar.Box.H)
	assert.Equal(t, theme.AccentBarWidth, bar.Box.W)

	badge := page.ElementsOfKind(domain.KindBadge)[0]
	require.NotNil(t, badge.Text)
	assert.Equal(t, []string{"GOOD"}, badge.Text.Lines)
	assert.Equal(t, domain.AlignCenter, badge.Text.Style.Align)

	label := page.ElementsOfKind(domain.KindText)[0]
	assert.Equal(t, theme.Fonts.Body, label.Text.Style.Font)
	assert.False(t, label.Text.Style.Wrap)
}

func TestPageBuilder_RejectsOverflow(t *testing.T) {
	theme := DefaultTheme()
	b := NewPage("broken", theme, nil)

	b.Panel(domain.NewBox(theme.CanvasWidth-domain.Inches(1), 0, domain.Inches(2), domain.Inches(1)), PanelStyle{})

	_, err := b.Page()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflows the canvas")
}

func TestValidate(t *testing.T) {
	page := domain.Page{
		Name:   "p",
		Width:  domain.Inches(10),
		Height: domain.Inches(5),
		Elements: []domain.Element{
			{Box: domain.NewBox(0, 0, domain.Inches(10), domain.Inches(5)), Kind: domain.KindBackground},
		},
	}
	assert.NoError(t, Validate(page))

	page.Elements = append(page.Elements, domain.Element{
		Box:  domain.NewBox(domain.Inches(9), domain.Inches(4), domain.Inches(1), domain.Inches(1.01)),
		Kind: domain.KindText,
	})
	assert.Error(t, Validate(page))
}
