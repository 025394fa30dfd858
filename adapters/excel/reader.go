package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fleetreport/domain/report"
)

// DataReader handles reading Excel and CSV files into an untyped cell grid.
// It performs no schema inference; structural interpretation is the
// domain's job.
type DataReader struct {
	filePath   string
	sourceName string
	fileType   string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files.
// sourceName is the user-facing name (the original upload filename); filePath
// is where the bytes actually live.
func NewDataReader(filePath, sourceName string) *DataReader {
	ext := strings.ToLower(filepath.Ext(sourceName))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filePath))
	}
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if sourceName == "" {
		sourceName = filepath.Base(filePath)
	}
	return &DataReader{filePath: filePath, sourceName: sourceName, fileType: fileType}
}

// ReadGrid reads the named worksheet (first worksheet when sheet is empty)
// as a raw cell grid. CSV files have a single implicit sheet.
func (r *DataReader) ReadGrid(sheet string) (report.RawGrid, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return report.RawGrid{}, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVGrid()
	case "xlsx":
		return r.readExcelGrid(sheet)
	default:
		return report.RawGrid{}, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// SheetNames lists the worksheets in the source. CSV sources report a
// single empty name.
func (r *DataReader) SheetNames() ([]string, error) {
	if r.fileType == "csv" {
		return []string{""}, nil
	}
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func (r *DataReader) readExcelGrid(sheet string) (report.RawGrid, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return report.RawGrid{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return report.RawGrid{}, fmt.Errorf("workbook contains no worksheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return report.RawGrid{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	log.Printf("[DataReader] sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return report.RawGrid{Source: r.sourceName, Sheet: sheet, Cells: rows}, nil
}

func (r *DataReader) readCSVGrid() (report.RawGrid, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return report.RawGrid{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return report.RawGrid{}, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read (%d rows)", len(rows))

	return report.RawGrid{Source: r.sourceName, Cells: rows}, nil
}
