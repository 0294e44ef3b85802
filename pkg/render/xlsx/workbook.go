// Package xlsx exports the computed aggregates as a workbook for further analysis.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

const (
	SheetDaily    = "Daily"
	SheetServices = "Services"
	SheetKPIs     = "KPIs"
)

// Metrics is the content of the exported workbook.
type Metrics struct {
	Daily    []domain.DailyAggregate
	Services []domain.ServiceAggregate
	KPIs     domain.KPISet
}

// Write saves the Daily, Services and KPIs sheets to w.
func Write(w io.Writer, m Metrics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDaily); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, name := range []string{SheetServices, SheetKPIs} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	daily := [][]interface{}{{"day", "total_usage", "total_cost", "total_incidents", "avg_sla"}}
	for _, d := range m.Daily {
		daily = append(daily, []interface{}{d.Day.Format("2006-01-02"), d.TotalUsage, d.TotalCost, d.TotalIncidents, d.AvgSLA})
	}

	services := [][]interface{}{{"service", "total_usage", "total_incidents", "avg_sla"}}
	for _, s := range m.Services {
		services = append(services, []interface{}{s.Service, s.TotalUsage, s.TotalIncidents, s.AvgSLA})
	}

	k := m.KPIs
	kpis := [][]interface{}{
		{"kpi", "value"},
		{"usage_growth_pct", k.UsageGrowthPct},
		{"cost_growth_pct", k.CostGrowthPct},
		{"sla_latest", k.SLALatest},
		{"sla_overall", k.SLAOverall},
		{"incidents_total", k.IncidentsTotal},
		{"usage_total", k.UsageTotal},
		{"cost_total", k.CostTotal},
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetDaily:    daily,
		SheetServices: services,
		SheetKPIs:     kpis,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
