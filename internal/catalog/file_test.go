package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quotes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileCSV(t *testing.T) {
	path := writeCSV(t, `crop,region,market_name,price_per_quintal,distance_km
wheat,delhi,Azadpur Mandi,2150,12
wheat,,District Mandi,2125,15
onion,nashik,Lasalgaon APMC,1550,25
`)

	f, err := NewFile(path)
	require.NoError(t, err)

	quotes, err := f.QuotesFor(context.Background(), "Wheat", "Delhi, India")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Azadpur Mandi", quotes[0].MarketName)
	assert.Equal(t, 2150.0, quotes[0].PricePerUnit)
	assert.Equal(t, 12.0, quotes[0].DistanceKm)

	// Unprofiled region falls through to the fallback row.
	quotes, err = f.QuotesFor(context.Background(), "wheat", "Bhopal")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "District Mandi", quotes[0].MarketName)
}

func TestFileCSVSkipsBadRows(t *testing.T) {
	path := writeCSV(t, `crop,region,market_name,price_per_quintal,distance_km
wheat,,Good Mandi,2100,10
wheat,,Bad Mandi,not-a-price,10
wheat,,Negative Mandi,-5,10
wheat,,NaN Mandi,NaN,10
wheat,,Far Mandi,2100,NaN
`)

	f, err := NewFile(path)
	require.NoError(t, err)

	quotes, err := f.QuotesFor(context.Background(), "wheat", "anywhere")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Good Mandi", quotes[0].MarketName)
}

func TestFileCSVMissingColumns(t *testing.T) {
	path := writeCSV(t, "crop,market_name\nwheat,Mandi\n")

	_, err := NewFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestFileRejectsUnknownExtension(t *testing.T) {
	_, err := NewFile("quotes.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dataset format")
}

func TestFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.xlsx")

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	rows := [][]any{
		{"crop", "region", "market_name", "price_per_quintal", "distance_km"},
		{"rice", "kolkata", "Sealdah Koley Market", 2090, 10},
		{"rice", "", "District Mandi", 2040, 15},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	f, err := NewFile(path)
	require.NoError(t, err)

	quotes, err := f.QuotesFor(context.Background(), "Rice", "Kolkata")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Sealdah Koley Market", quotes[0].MarketName)
	assert.Equal(t, 2090.0, quotes[0].PricePerUnit)
}
