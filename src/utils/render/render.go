package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//go:embed templates/*
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ValuationRow is one asset type line of the dashboard and report tables.
type ValuationRow struct {
	Type         string
	DisplayName  string
	Amount       string
	ExchangeRate string
	Value        string
	Color        string
}

type AssetRow struct {
	ID       int
	Name     string
	Type     string
	Amount   string
	BuyPrice string
	BuyDate  string
	Cost     string
}

// AssetTypeOption fills the type selects of the dashboard.
type AssetTypeOption struct {
	Code string
	Name string
}

// PortfolioPage carries everything the dashboard and report templates print.
type PortfolioPage struct {
	Date       string
	Total      string
	Rows       []ValuationRow
	Assets     []AssetRow
	AssetTypes []AssetTypeOption
}

// ChartSlice is one named value of a pie chart.
type ChartSlice struct {
	Name  string
	Value float64
	Color string
}

func renderTemplate(name string, data interface{}) (string, error) {
	var output bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&output, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return output.String(), nil
}

func RenderDashboard(page PortfolioPage) (string, error) {
	return renderTemplate("dashboard.html", page)
}

// RenderReport renders the printable page used for PDF reports.
func RenderReport(page PortfolioPage) (string, error) {
	return renderTemplate("report.html", page)
}

// RenderPieChart returns a standalone HTML page with the value share per slice.
func RenderPieChart(title string, slices []ChartSlice) (string, error) {
	pie := charts.NewPie()

	colors := make([]string, 0, len(slices))
	items := make([]opts.PieData, 0, len(slices))
	for _, slice := range slices {
		items = append(items, opts.PieData{Name: slice.Name, Value: slice.Value})
		colors = append(colors, slice.Color)
	}
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithColorsOpts(colors),
	)
	pie.AddSeries("Value (KRW)", items)

	var chartBuffer bytes.Buffer
	if err := pie.Render(&chartBuffer); err != nil {
		return "", err
	}
	return chartBuffer.String(), nil
}

// GeneratePDF generates a PDF from an array of HTML strings
func GeneratePDF(htmlContents []string) (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	for _, html := range htmlContents {
		page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(html)))
		// echarts draws after load
		page.JavascriptDelay.Set(500)
		pdfg.AddPage(page)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}
