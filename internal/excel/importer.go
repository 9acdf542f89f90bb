// Package excel loads the word catalog from an Excel or CSV workbook.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/database"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath      string // Path to the Excel or CSV file
	DayColumn     string // Column with the curriculum day number
	WordColumn    string // Column with the word
	MeaningColumn string // Column with the meaning
	SheetName     string // Name of the sheet to import
	StartRow      int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DayColumn:     "A",
		WordColumn:    "B",
		MeaningColumn: "C",
		SheetName:     "Sheet1",
		StartRow:      2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords imports the word catalog from an Excel or CSV file and
// upserts it into the words table.
func ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	var words []models.Word
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		word, err := parseRow(row, config)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		words = append(words, word)
	}

	if len(words) > 0 {
		wordRepo := database.NewWordRepository()
		if err := wordRepo.BulkInsert(words); err != nil {
			return nil, fmt.Errorf("failed to store imported words: %v", err)
		}
		result.Imported = len(words)
	}

	return result, nil
}

// readExcel returns all rows of the configured sheet
func readExcel(config ImportConfig) ([][]string, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

// readCSV returns all rows of a CSV file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow extracts one catalog word from a row
func parseRow(row []string, config ImportConfig) (models.Word, error) {
	var dayRaw, word, meaning string

	if colIdx := columnToIndex(config.DayColumn); colIdx >= 0 && colIdx < len(row) {
		dayRaw = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.WordColumn); colIdx >= 0 && colIdx < len(row) {
		word = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.MeaningColumn); colIdx >= 0 && colIdx < len(row) {
		meaning = strings.TrimSpace(row[colIdx])
	}

	if word == "" {
		return models.Word{}, fmt.Errorf("word cannot be empty")
	}
	if meaning == "" {
		return models.Word{}, fmt.Errorf("meaning cannot be empty")
	}

	day, err := strconv.Atoi(dayRaw)
	if err != nil || day < 1 {
		return models.Word{}, fmt.Errorf("invalid day %q", dayRaw)
	}

	return models.Word{
		Day:     day,
		Word:    word,
		Meaning: meaning,
	}, nil
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
