package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFGenerator generates PDF reports
type PDFGenerator struct {
	pdf     *gofpdf.Fpdf
	options PDFOptions
}

// PDFOptions configures PDF generation
type PDFOptions struct {
	Title          string
	Subtitle       string
	DateFormat     string
	IncludeDate    bool
	HeaderColor    PDFColor
	AlternateColor PDFColor
	FontFamily     string
	FontSize       float64
	HeaderFontSize float64
	TitleFontSize  float64
	Margins        PDFMargins
}

// PDFColor represents an RGB color
type PDFColor struct {
	R int
	G int
	B int
}

// PDFMargins represents page margins
type PDFMargins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// DefaultPDFOptions returns default PDF options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Title:          "Report",
		DateFormat:     "2006-01-02",
		IncludeDate:    true,
		HeaderColor:    PDFColor{R: 68, G: 114, B: 196},
		AlternateColor: PDFColor{R: 242, G: 242, B: 242},
		FontFamily:     "Arial",
		FontSize:       10,
		HeaderFontSize: 11,
		TitleFontSize:  16,
		Margins: PDFMargins{
			Left:   15,
			Right:  15,
			Top:    20,
			Bottom: 20,
		},
	}
}

// SummaryItem is one labeled value in a summary section. Items render in
// slice order.
type SummaryItem struct {
	Label string
	Value string
}

// NewPDFGenerator creates a new PDF generator
func NewPDFGenerator(options PDFOptions) *PDFGenerator {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(options.Margins.Left, options.Margins.Top, options.Margins.Right)
	pdf.SetAutoPageBreak(true, options.Margins.Bottom)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(options.FontFamily, "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	return &PDFGenerator{
		pdf:     pdf,
		options: options,
	}
}

// GenerateReport renders a titled report: an optional summary section
// followed by a striped table. Column widths are proportional weights
// scaled to the printable page width.
func (g *PDFGenerator) GenerateReport(labels []string, weights []float64, rows [][]string, summary []SummaryItem) error {
	if len(labels) != len(weights) {
		return fmt.Errorf("got %d column labels but %d widths", len(labels), len(weights))
	}

	g.pdf.AddPage()
	g.addTitle()

	if g.options.Subtitle != "" {
		g.addSubtitle()
	}
	if g.options.IncludeDate {
		g.addDate()
	}

	if len(summary) > 0 {
		g.addSummarySection("Summary", summary)
	}

	g.pdf.Ln(8)

	widths := g.scaleWidths(weights)
	g.addTableHeader(labels, widths)
	g.addTableData(labels, rows, widths)

	return g.pdf.Error()
}

// addTitle adds the report title
func (g *PDFGenerator) addTitle() {
	g.pdf.SetFont(g.options.FontFamily, "B", g.options.TitleFontSize)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.CellFormat(0, 10, g.options.Title, "", 1, "C", false, 0, "")
}

// addSubtitle adds the report subtitle
func (g *PDFGenerator) addSubtitle() {
	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize+2)
	g.pdf.SetTextColor(100, 100, 100)
	g.pdf.CellFormat(0, 8, g.options.Subtitle, "", 1, "C", false, 0, "")
}

// addDate adds the report generation date
func (g *PDFGenerator) addDate() {
	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize-1)
	g.pdf.SetTextColor(128, 128, 128)
	dateStr := fmt.Sprintf("Generated: %s", time.Now().Format(g.options.DateFormat))
	g.pdf.CellFormat(0, 6, dateStr, "", 1, "R", false, 0, "")
}

// addSummarySection renders labeled key/value pairs above the table.
func (g *PDFGenerator) addSummarySection(title string, items []SummaryItem) {
	g.pdf.Ln(4)
	g.pdf.SetFont(g.options.FontFamily, "B", g.options.FontSize+2)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	g.pdf.Ln(1)

	for _, item := range items {
		g.pdf.SetFont(g.options.FontFamily, "B", g.options.FontSize)
		g.pdf.CellFormat(60, 6, item.Label+":", "", 0, "L", false, 0, "")
		g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
		g.pdf.CellFormat(0, 6, item.Value, "", 1, "L", false, 0, "")
	}
}

// scaleWidths converts proportional weights into millimeter widths that
// fill the printable area.
func (g *PDFGenerator) scaleWidths(weights []float64) []float64 {
	pageWidth, _ := g.pdf.GetPageSize()
	available := pageWidth - g.options.Margins.Left - g.options.Margins.Right

	total := 0.0
	for _, w := range weights {
		total += w
	}

	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = w / total * available
	}
	return widths
}

// addTableHeader adds the table header row
func (g *PDFGenerator) addTableHeader(labels []string, widths []float64) {
	g.pdf.SetFont(g.options.FontFamily, "B", g.options.HeaderFontSize)
	g.pdf.SetFillColor(g.options.HeaderColor.R, g.options.HeaderColor.G, g.options.HeaderColor.B)
	g.pdf.SetTextColor(255, 255, 255)

	for i, label := range labels {
		g.pdf.CellFormat(widths[i], 8, label, "1", 0, "C", true, 0, "")
	}
	g.pdf.Ln(-1)
}

// addTableData adds the data rows, striping alternate rows and repeating
// the header after a page break.
func (g *PDFGenerator) addTableData(labels []string, rows [][]string, widths []float64) {
	_, pageHeight := g.pdf.GetPageSize()

	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
	g.pdf.SetTextColor(0, 0, 0)

	for i, row := range rows {
		if i%2 == 1 {
			g.pdf.SetFillColor(g.options.AlternateColor.R, g.options.AlternateColor.G, g.options.AlternateColor.B)
		} else {
			g.pdf.SetFillColor(255, 255, 255)
		}

		if g.pdf.GetY()+8 > pageHeight-g.options.Margins.Bottom {
			g.pdf.AddPage()
			g.addTableHeader(labels, widths)
			g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
			g.pdf.SetTextColor(0, 0, 0)
		}

		for j, val := range row {
			if j >= len(widths) {
				break
			}
			maxChars := int(widths[j] / 2)
			if maxChars > 3 && len(val) > maxChars {
				val = val[:maxChars-3] + "..."
			}
			g.pdf.CellFormat(widths[j], 7, val, "1", 0, "L", true, 0, "")
		}
		g.pdf.Ln(-1)
	}
}

// WriteTo writes the PDF to a writer
func (g *PDFGenerator) WriteTo(w io.Writer) error {
	return g.pdf.Output(w)
}
