package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/de-tools/insight-deck/pkg/runtime/terminal/export"
	"github.com/de-tools/insight-deck/pkg/services/narrative"
	"github.com/de-tools/insight-deck/pkg/services/pipeline"
)

type ValidateCmd struct {
	settings      *Settings
	input         string
	showNarrative bool
	reporter      *export.Reporter
	narrative     *export.NarrativeReporter
}

func NewValidateCmd(settings *Settings, reporter *export.Reporter, narrativeReporter *export.NarrativeReporter) *cobra.Command {
	vc := &ValidateCmd{settings: settings, reporter: reporter, narrative: narrativeReporter}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a usage table and print its KPI summary",
		RunE:  vc.run,
	}

	cmd.Flags().StringVarP(&vc.input, "input", "i", "", "Path to the .csv or .xlsx usage table")
	cmd.Flags().BoolVar(&vc.showNarrative, "narrative", false, "Also print the narrative blocks")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cfg, err := loadConfig(cmd.Context(), vc.settings)
	if err != nil {
		return err
	}

	raw, err := readTable(vc.input)
	if err != nil {
		return err
	}

	analysis, err := pipeline.New(cfg.Theme()).Analyze(ctx, raw)
	if err != nil {
		return err
	}

	err = vc.reporter.Handle(&export.Summary{
		Source:   filepath.Base(vc.input),
		Rows:     analysis.Rows,
		Period:   analysis.Period,
		KPIs:     analysis.KPIs,
		Services: analysis.Services,
	})
	if err != nil || !vc.showNarrative {
		return err
	}

	story := narrative.Synthesize(analysis.KPIs, analysis.Daily, analysis.Services, narrative.AppendixCaps)
	return vc.narrative.Handle(&story)
}
