package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter exports report rows to Excel format
type ExcelExporter struct {
	file    *excelize.File
	options ExcelOptions
}

// ExcelOptions configures Excel export behavior
type ExcelOptions struct {
	SheetName    string
	FreezeHeader bool
	AutoFilter   bool
	NumberFormat string
	HeaderStyle  *ExcelStyleConfig
	DataStyle    *ExcelStyleConfig
}

// ExcelStyleConfig defines style for cells
type ExcelStyleConfig struct {
	FontBold  bool
	FontSize  int
	FontColor string
	FillColor string
	Alignment string // left, center, right
	Border    bool
}

// DefaultExcelOptions returns default Excel export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		SheetName:    "Report",
		FreezeHeader: true,
		AutoFilter:   true,
		NumberFormat: "#,##0.00",
		HeaderStyle: &ExcelStyleConfig{
			FontBold:  true,
			FontSize:  11,
			FillColor: "4472C4",
			FontColor: "FFFFFF",
			Alignment: "center",
			Border:    true,
		},
		DataStyle: &ExcelStyleConfig{
			FontSize:  11,
			Alignment: "left",
			Border:    true,
		},
	}
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(options ExcelOptions) *ExcelExporter {
	file := excelize.NewFile()
	file.SetSheetName("Sheet1", options.SheetName)

	return &ExcelExporter{
		file:    file,
		options: options,
	}
}

// WriteHeader writes the styled header row and freezes it.
func (e *ExcelExporter) WriteHeader(columns []string) error {
	sheetName := e.options.SheetName

	headerStyleID := 0
	if e.options.HeaderStyle != nil {
		style, err := e.createStyle(e.options.HeaderStyle)
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		headerStyleID = style
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		e.file.SetCellValue(sheetName, cell, col)

		if headerStyleID > 0 {
			e.file.SetCellStyle(sheetName, cell, cell, headerStyleID)
		}
	}

	if e.options.FreezeHeader {
		e.file.SetPanes(sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}

	return nil
}

// WriteRows writes data rows below the header and finishes the sheet with
// an auto filter and width-fitted columns.
func (e *ExcelExporter) WriteRows(rows [][]interface{}) error {
	sheetName := e.options.SheetName

	dataStyleID := 0
	if e.options.DataStyle != nil {
		style, err := e.createStyle(e.options.DataStyle)
		if err != nil {
			return fmt.Errorf("failed to create data style: %w", err)
		}
		dataStyleID = style
	}

	columnWidths := make(map[int]float64)
	columnCount := 0

	for rowIdx, row := range rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)

			if err := e.setCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}

			if dataStyleID > 0 {
				e.file.SetCellStyle(sheetName, cell, cell, dataStyleID)
			}

			if width := estimateCellWidth(val); width > columnWidths[colIdx] {
				columnWidths[colIdx] = width
			}
		}
	}

	if e.options.AutoFilter && len(rows) > 0 && columnCount > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(columnCount, len(rows)+1)
		e.file.AutoFilter(sheetName, "A1:"+lastCell, nil)
	}

	for colIdx, width := range columnWidths {
		colName, _ := excelize.ColumnNumberToName(colIdx + 1)
		if width < 10 {
			width = 10
		}
		if width > 50 {
			width = 50
		}
		e.file.SetColWidth(sheetName, colName, colName, width)
	}

	return nil
}

// WriteTo writes the Excel file to a writer
func (e *ExcelExporter) WriteTo(w io.Writer) error {
	return e.file.Write(w)
}

// Close closes the Excel file
func (e *ExcelExporter) Close() error {
	return e.file.Close()
}

// createStyle creates an Excel style from config
func (e *ExcelExporter) createStyle(config *ExcelStyleConfig) (int, error) {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold: config.FontBold,
			Size: float64(config.FontSize),
		},
	}
	if config.FontColor != "" {
		style.Font.Color = config.FontColor
	}

	if config.FillColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{config.FillColor},
		}
	}

	if config.Alignment != "" {
		style.Alignment = &excelize.Alignment{
			Horizontal: config.Alignment,
		}
	}

	if config.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}

	return e.file.NewStyle(style)
}

// setCellValue sets a cell value with appropriate formatting
func (e *ExcelExporter) setCellValue(sheet, cell string, val interface{}) error {
	if val == nil {
		return e.file.SetCellValue(sheet, cell, "")
	}

	switch v := val.(type) {
	case time.Time:
		if v.IsZero() {
			return e.file.SetCellValue(sheet, cell, "")
		}
		e.file.SetCellValue(sheet, cell, v)
		style, _ := e.file.NewStyle(&excelize.Style{
			NumFmt: 14, // mm-dd-yy
		})
		e.file.SetCellStyle(sheet, cell, cell, style)
	case float64:
		e.file.SetCellValue(sheet, cell, v)
		if e.options.NumberFormat != "" {
			style, _ := e.file.NewStyle(&excelize.Style{
				CustomNumFmt: &e.options.NumberFormat,
			})
			e.file.SetCellStyle(sheet, cell, cell, style)
		}
	default:
		return e.file.SetCellValue(sheet, cell, v)
	}

	return nil
}

// estimateCellWidth estimates the display width of a cell value
func estimateCellWidth(val interface{}) float64 {
	if val == nil {
		return 0
	}
	return float64(len(fmt.Sprintf("%v", val))) * 1.2
}
