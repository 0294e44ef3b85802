package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

// NarrativeReporter prints the narrative blocks as plain text sections.
type NarrativeReporter struct {
	writer io.Writer
}

func NewNarrativeReporter(writer io.Writer) *NarrativeReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &NarrativeReporter{writer: writer}
}

func (c *NarrativeReporter) Handle(story *domain.Narrative) error {
	tmpl := `{{range .}}
=== {{title .Category}} ===
{{range .Lines}}- {{.}}
{{end}}{{end}}`

	t, err := template.New("narrative").Funcs(template.FuncMap{
		"title": func(c domain.NarrativeCategory) string {
			s := string(c)
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	blocks := []domain.NarrativeBlock{story.Insights, story.Risks, story.Actions, story.Method}
	return t.Execute(c.writer, blocks)
}
