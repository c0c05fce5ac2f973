package report

import (
	"fmt"
	"io"

	"github.com/personalplanner/planner/internal/evolution"

	"github.com/xuri/excelize/v2"
)

const (
	SheetEvolution = "Evolução"
	ChartTitle     = "Evolução do Peso"
)

// RenderWorkbook writes the evolution view as an XLSX workbook: the plotted points,
// the summary cards and a line chart over the points using the view's Y axis domain.
func RenderWorkbook(view evolution.View, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetEvolution); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3B82F6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	if err != nil {
		return fmt.Errorf("create label style: %w", err)
	}

	cells := []struct {
		cell  string
		value any
	}{
		{"A1", "Data"},
		{"B1", "Peso (kg)"},
	}
	for _, c := range cells {
		if err := f.SetCellValue(SheetEvolution, c.cell, c.value); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetEvolution, "A1", "B1", headerStyle); err != nil {
		return err
	}

	for _, col := range []struct {
		col   string
		width float64
	}{
		{"A", 14},
		{"B", 12},
		{"D", 18},
		{"E", 24},
	} {
		if err := f.SetColWidth(SheetEvolution, col.col, col.col, col.width); err != nil {
			return err
		}
	}

	if len(view.Points) == 0 {
		if err := f.SetCellValue(SheetEvolution, "A2", view.EmptyMessage); err != nil {
			return err
		}
		return writeWorkbook(f, w)
	}

	for i, p := range view.Points {
		row := i + 2
		if err := f.SetCellValue(SheetEvolution, fmt.Sprintf("A%d", row), p.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetEvolution, fmt.Sprintf("B%d", row), p.Weight); err != nil {
			return err
		}
	}

	if err := writeSummary(f, view, labelStyle); err != nil {
		return err
	}

	lastRow := len(view.Points) + 1
	minY, maxY := view.YAxis.Min, view.YAxis.Max
	if err := f.AddChart(SheetEvolution, "G2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", SheetEvolution),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", SheetEvolution, lastRow),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", SheetEvolution, lastRow),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
			},
		},
		Title:  []excelize.RichTextRun{{Text: ChartTitle}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		YAxis: excelize.ChartAxis{
			Minimum: &minY,
			Maximum: &maxY,
		},
	}); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}

	return writeWorkbook(f, w)
}

func writeSummary(f *excelize.File, view evolution.View, labelStyle int) error {
	if view.Summary == nil {
		return nil
	}

	rows := [][2]string{
		{"Primeiro peso", formatNumber(view.Summary.FirstWeight) + " kg"},
		{"Último peso", formatNumber(view.Summary.LastWeight) + " kg"},
		{"Variação", view.DeltaText},
		{"Percentual", view.PercentText},
	}
	if view.GoalLabel != "" {
		rows = append(rows, [2]string{"Meta", view.GoalLabel}, [2]string{"Progresso", view.VerdictLabel})
	}

	for i, r := range rows {
		row := i + 2
		if err := f.SetCellValue(SheetEvolution, fmt.Sprintf("D%d", row), r[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetEvolution, fmt.Sprintf("E%d", row), r[1]); err != nil {
			return err
		}
	}
	return f.SetCellStyle(SheetEvolution, "D2", fmt.Sprintf("D%d", len(rows)+1), labelStyle)
}

func writeWorkbook(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
