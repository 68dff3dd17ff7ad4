package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVExporter exports report rows to CSV format
type CSVExporter struct {
	writer  *csv.Writer
	options CSVOptions
}

// CSVOptions configures CSV export behavior
type CSVOptions struct {
	Delimiter      rune   // Field delimiter (default: comma)
	UseCRLF        bool   // Use \r\n for line terminator
	IncludeHeader  bool   // Include column headers
	DateFormat     string // Format for date fields
	NullValue      string // String to use for null values
	BoolTrueValue  string // String for true
	BoolFalseValue string // String for false
}

// DefaultCSVOptions returns default CSV export options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:      ',',
		UseCRLF:        false,
		IncludeHeader:  true,
		DateFormat:     "2006-01-02",
		NullValue:      "",
		BoolTrueValue:  "yes",
		BoolFalseValue: "no",
	}
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(w io.Writer, options CSVOptions) *CSVExporter {
	writer := csv.NewWriter(w)
	writer.Comma = options.Delimiter
	writer.UseCRLF = options.UseCRLF

	return &CSVExporter{
		writer:  writer,
		options: options,
	}
}

// WriteHeader writes the CSV header row
func (e *CSVExporter) WriteHeader(columns []string) error {
	if !e.options.IncludeHeader {
		return nil
	}

	if err := e.writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// WriteRow writes a single row of data
func (e *CSVExporter) WriteRow(row []interface{}) error {
	record := make([]string, len(row))
	for i, val := range row {
		record[i] = e.formatValue(val)
	}

	if err := e.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// Flush writes any buffered data to the underlying writer
func (e *CSVExporter) Flush() error {
	e.writer.Flush()
	return e.writer.Error()
}

// formatValue formats a value for CSV output
func (e *CSVExporter) formatValue(val interface{}) string {
	if val == nil {
		return e.options.NullValue
	}

	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return e.options.BoolTrueValue
		}
		return e.options.BoolFalseValue
	case time.Time:
		if v.IsZero() {
			return e.options.NullValue
		}
		return v.Format(e.options.DateFormat)
	case *time.Time:
		if v == nil || v.IsZero() {
			return e.options.NullValue
		}
		return v.Format(e.options.DateFormat)
	default:
		return fmt.Sprintf("%v", v)
	}
}
