package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"heredity/domain/family"
	"heredity/internal"
	"heredity/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader reads family records from Excel and CSV files
type DataReader struct {
	config   Config
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a reader that picks CSV or Excel parsing from the file extension
func NewDataReader(config Config) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		logger:   internal.DefaultLogger.With("DataReader"),
	}
}

// NewFamilyReader returns a DataReader as a ports.FamilyReader
func NewFamilyReader(filePath string) ports.FamilyReader {
	return NewDataReader(DefaultConfig(filePath))
}

// ReadFamily reads and validates the family in the configured file
func (r *DataReader) ReadFamily(ctx context.Context) (*family.Family, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.ReadRows()
	if err != nil {
		return nil, err
	}

	fam, err := FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(r.config.FilePath), err)
	}
	return fam, nil
}

// ReadRows returns the raw rows, header first
func (r *DataReader) ReadRows() ([][]string, error) {
	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath)
	}

	start := time.Now()
	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	r.logger.Debug("%s file read in %.2fms (%d rows)",
		strings.ToUpper(r.fileType), float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}
