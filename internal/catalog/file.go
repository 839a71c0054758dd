package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/cropyield/advisor-service/internal/engine"
	"github.com/cropyield/advisor-service/internal/normalize"
)

// File serves quotes from a CSV or XLSX dataset loaded once at startup.
// Expected columns: crop, region, market_name, price_per_quintal, distance_km.
// The header row is required; column order is taken from the header.
type File struct {
	rows []Row
	path string
}

// NewFile loads a dataset file, choosing the parser by extension.
func NewFile(path string) (*File, error) {
	var rows []Row
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = loadCSV(path)
	case ".xlsx":
		rows, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s contains no quote rows", path)
	}

	log.Info().Str("component", "catalog").Str("path", path).Int("rows", len(rows)).Msg("Dataset loaded")

	return &File{rows: rows, path: path}, nil
}

// QuotesFor returns the candidate markets for a crop near a location.
func (f *File) QuotesFor(ctx context.Context, crop, location string) ([]engine.MarketQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return selectQuotes(f.rows, crop, location)
}

// Path returns the dataset path this source was loaded from.
func (f *File) Path() string {
	return f.path
}

func loadCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRow(record, cols)
		if err != nil {
			// A single bad row should not discard the dataset.
			log.Warn().Str("component", "catalog").Int("line", line).Err(err).Msg("Skipping bad dataset row")
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadXLSX(path string) ([]Row, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		row, err := parseRow(record, cols)
		if err != nil {
			log.Warn().Str("component", "catalog").Int("row", i+2).Err(err).Msg("Skipping bad dataset row")
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndexes maps the dataset columns to their positions in a record.
type columnIndexes struct {
	crop, region, market, price, distance int
}

func mapColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{crop: -1, region: -1, market: -1, price: -1, distance: -1}
	for i, name := range header {
		switch normalize.Key(name) {
		case "crop":
			cols.crop = i
		case "region":
			cols.region = i
		case "market_name", "market name", "market":
			cols.market = i
		case "price_per_quintal", "price per quintal", "price":
			cols.price = i
		case "distance_km", "distance km", "distance":
			cols.distance = i
		}
	}
	if cols.crop < 0 || cols.market < 0 || cols.price < 0 || cols.distance < 0 {
		return cols, fmt.Errorf("header missing required columns (crop, market_name, price_per_quintal, distance_km)")
	}
	return cols, nil
}

func parseRow(record []string, cols columnIndexes) (Row, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	crop := field(cols.crop)
	market := field(cols.market)
	if crop == "" || market == "" {
		return Row{}, fmt.Errorf("empty crop or market name")
	}

	price, err := strconv.ParseFloat(field(cols.price), 64)
	if err != nil {
		return Row{}, fmt.Errorf("bad price %q: %w", field(cols.price), err)
	}
	distance, err := strconv.ParseFloat(field(cols.distance), 64)
	if err != nil {
		return Row{}, fmt.Errorf("bad distance %q: %w", field(cols.distance), err)
	}
	// ParseFloat accepts "NaN"; the accepting-direction check rejects it
	// along with negatives.
	if !(price >= 0) || !(distance >= 0) {
		return Row{}, fmt.Errorf("negative or NaN price or distance")
	}

	return Row{
		Crop:            normalize.Key(crop),
		Region:          normalize.Key(field(cols.region)),
		MarketName:      market,
		PricePerQuintal: price,
		DistanceKm:      distance,
	}, nil
}
