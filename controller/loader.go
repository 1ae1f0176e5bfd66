package controller

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mww/fantasy_basketball/model"
)

var errMissingHeader = errors.New("stats file has no header row")

// LoadStats reads the stats file at path. See ReadStats.
func LoadStats(path string) ([]model.StatRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := ReadStats(f)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return records, nil
}

// ReadStats parses CSV player stats with a header row. One record is returned
// per data row in the same order as the input. The Player and Pos columns
// are required, every other column is optional.
func ReadStats(r io.Reader) ([]model.StatRecord, error) {
	reader, err := newStatsCSVReader(r)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	records := make([]model.StatRecord, 0, 64)
	for {
		rec, err := reader.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Err: err}
		}
		records = append(records, rec)
	}

	return records, nil
}

type statsCSVReader struct {
	csvReader *csv.Reader
	header    []string
	nameIdx   int
	posIdx    int
	line      int
}

func newStatsCSVReader(r io.Reader) (*statsCSVReader, error) {
	sr := &statsCSVReader{
		csvReader: csv.NewReader(r),
		nameIdx:   -1,
		posIdx:    -1,
	}
	// Rows are allowed to be shorter than the header, the missing columns are
	// treated as absent.
	sr.csvReader.FieldsPerRecord = -1

	header, err := sr.csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errMissingHeader
		}
		return nil, fmt.Errorf("error reading stats CSV file header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	for i, h := range header {
		h = strings.TrimSpace(h)
		header[i] = h
		if h == model.ColName {
			sr.nameIdx = i
		} else if h == model.ColPosition {
			sr.posIdx = i
		}
	}

	if sr.nameIdx == -1 || sr.posIdx == -1 {
		return nil, fmt.Errorf("error finding required columns; name: %d, position: %d", sr.nameIdx, sr.posIdx)
	}

	sr.header = header
	return sr, nil
}

func (sr *statsCSVReader) readLine() (model.StatRecord, error) {
	row, err := sr.csvReader.Read()
	if errors.Is(err, io.EOF) {
		return model.StatRecord{}, err
	}
	sr.line++
	if err != nil {
		return model.StatRecord{}, fmt.Errorf("error reading line %d in stats file: %w", sr.line, err)
	}

	fields := make(map[string]string, len(sr.header))
	for i, col := range sr.header {
		if i >= len(row) {
			break
		}
		if col == "" {
			continue
		}
		fields[col] = row[i]
	}

	return model.NewStatRecord(fields), nil
}
