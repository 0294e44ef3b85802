package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/insight-deck/pkg/format"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/report"
)

const maxServiceRows = 5

type TableConfig struct {
	NameWidth   int
	ValueWidth  int
	StatusWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   24,
		ValueWidth:  16,
		StatusWidth: 8,
	}
}

// Summary is what the console prints for one analyzed table.
type Summary struct {
	Source    string
	Rows      int
	Period    domain.TimePeriod
	KPIs      domain.KPISet
	Services  []domain.ServiceAggregate
	Document  string
	Published string
}

type row struct {
	Name   string
	Value  string
	Status string
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func kpiRows(k domain.KPISet) []row {
	return []row{
		{"Usage (units)", format.Number(k.UsageTotal, 0), report.UsageStatus(k).String()},
		{"Usage growth", format.SignedPercent(k.UsageGrowthPct), report.UsageStatus(k).String()},
		{"Cost", format.GBP(k.CostTotal), report.CostStatus(k).String()},
		{"Cost growth", format.SignedPercent(k.CostGrowthPct), report.CostStatus(k).String()},
		{"SLA latest", format.Number(k.SLALatest, 2) + "%", report.SLAStatus(k.SLALatest).String()},
		{"SLA overall", format.Number(k.SLAOverall, 2) + "%", ""},
		{"Incidents", format.Integer(k.IncidentsTotal), report.IncidentStatus(k.IncidentsTotal).String()},
	}
}

func serviceRows(services []domain.ServiceAggregate) []row {
	if len(services) > maxServiceRows {
		services = services[:maxServiceRows]
	}
	rows := make([]row, 0, len(services))
	for _, s := range services {
		rows = append(rows, row{
			Name:   s.Service,
			Value:  format.Number(s.TotalUsage, 0),
			Status: format.Number(s.AvgSLA, 2) + "%",
		})
	}
	return rows
}

func (c *Reporter) Handle(summary *Summary) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value, status string) string {
			return fmt.Sprintf("| %-*s | %*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.StatusWidth, status)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.StatusWidth+2))
		},
	}

	tmpl := `
{{.Summary.Source}}: {{.Summary.Rows}} rows, {{.Summary.Period.Duration}} days
Period: {{.Summary.Period.Start.Format "2006-01-02"}} to {{.Summary.Period.End.Format "2006-01-02"}}

{{separator}}
{{formatRow "KPI" "Value" "Status"}}
{{separator}}
{{range .KPIs}}{{formatRow .Name .Value .Status}}
{{end}}{{separator}}
{{if .Services}}
{{separator}}
{{formatRow "Service" "Usage" "SLA"}}
{{separator}}
{{range .Services}}{{formatRow .Name .Value .Status}}
{{end}}{{separator}}
{{end}}{{with .Summary.Document}}
Report written to {{.}}
{{end}}{{with .Summary.Published}}Published to {{.}}
{{end}}`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Summary  *Summary
		KPIs     []row
		Services []row
	}{
		Summary:  summary,
		KPIs:     kpiRows(summary.KPIs),
		Services: serviceRows(summary.Services),
	})
}
