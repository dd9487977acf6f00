package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const portfolioSheet = "Portfolio"

// WorkbookRow is one asset type line of the exported workbook.
type WorkbookRow struct {
	Type         string
	Amount       float64
	ExchangeRate float64
	Value        float64
}

// BuildPortfolioWorkbook writes the valuation table into a new workbook and adds a
// pie chart of the value column on its own sheet.
func BuildPortfolioWorkbook(date string, rows []WorkbookRow, total float64) (*bytes.Buffer, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", portfolioSheet); err != nil {
		return nil, err
	}

	if err := file.SetSheetRow(portfolioSheet, "A1", &[]interface{}{"Date", date}); err != nil {
		return nil, err
	}
	header := []interface{}{"Type", "Amount", "Exchange rate (KRW)", "Value (KRW)"}
	if err := file.SetSheetRow(portfolioSheet, "A2", &header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		values := []interface{}{row.Type, row.Amount, row.ExchangeRate, row.Value}
		if err := file.SetSheetRow(portfolioSheet, cell, &values); err != nil {
			return nil, err
		}
	}
	totalCell, _ := excelize.CoordinatesToCellName(1, len(rows)+3)
	if err := file.SetSheetRow(portfolioSheet, totalCell, &[]interface{}{"Total", nil, nil, total}); err != nil {
		return nil, err
	}

	if len(rows) > 0 {
		if err := addValuePieChart(file, portfolioSheet, len(rows)); err != nil {
			return nil, err
		}
	}
	file.SetActiveSheet(0)

	return file.WriteToBuffer()
}

// addValuePieChart charts rows 3..n+2 of the data sheet, type names against values.
func addValuePieChart(file *excelize.File, dataSheet string, n int) error {
	startRow := 3
	endRow := startRow + n - 1

	categories := fmt.Sprintf("%s!$A$%d:$A$%d", dataSheet, startRow, endRow)
	values := fmt.Sprintf("%s!$D$%d:$D$%d", dataSheet, startRow, endRow)

	titleFont := excelize.Font{
		Bold: true,
		Size: 20,
	}

	chart := excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       dataSheet,
				Categories: categories,
				Values:     values,
			},
		},
		Title: []excelize.RichTextRun{
			{
				Text: "Value by asset type",
				Font: &titleFont,
			},
		},
		Legend: excelize.ChartLegend{
			Position: "right",
		},
		Dimension: excelize.ChartDimension{
			Width:  960,
			Height: 600,
		},
		PlotArea: excelize.ChartPlotArea{
			ShowCatName: true,
			ShowVal:     true,
			ShowPercent: true,
		},
	}

	chartSheetName := fmt.Sprintf("%s - Pie Chart", dataSheet)
	if _, err := file.NewSheet(chartSheetName); err != nil {
		return err
	}

	if err := file.AddChart(chartSheetName, "A1", &chart); err != nil {
		return fmt.Errorf("failed to add pie chart to sheet %s: %v", chartSheetName, err)
	}
	return nil
}
