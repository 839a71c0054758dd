// Package catalog supplies candidate market quotes for a crop and farm
// location. The dataset is static or externally sourced (file or database);
// live market-data ingestion is deliberately not part of this service.
package catalog

import (
	"context"
	"fmt"

	"github.com/cropyield/advisor-service/internal/engine"
	"github.com/cropyield/advisor-service/internal/normalize"
)

// Row is one dataset entry: a market's quoted price for a crop, with the
// distance from the region hub it serves. Region is a normalized region key;
// an empty Region marks a fallback row used for unprofiled farm locations.
type Row struct {
	Crop            string
	Region          string
	MarketName      string
	PricePerQuintal float64
	DistanceKm      float64
}

// Source supplies market quotes for a crop and location.
type Source interface {
	// QuotesFor returns the candidate markets for a crop near a location.
	// Returns ErrNoMarketData when the dataset has nothing for the crop.
	QuotesFor(ctx context.Context, crop, location string) ([]engine.MarketQuote, error)
}

// ErrNoMarketData is returned when the dataset holds no quotes for a crop.
type ErrNoMarketData struct {
	Crop string
}

func (e ErrNoMarketData) Error() string {
	return fmt.Sprintf("no market quotes for crop %q", e.Crop)
}

// selectQuotes applies the shared region-matching rule over a row set:
// rows for the farm's region win; otherwise fallback rows (empty region)
// serve, with their distances left as-is.
func selectQuotes(rows []Row, crop, location string) ([]engine.MarketQuote, error) {
	cropKey := normalize.Key(crop)
	regionKey := normalize.RegionKey(location)

	var regional, fallback []engine.MarketQuote
	for _, r := range rows {
		if normalize.Key(r.Crop) != cropKey {
			continue
		}
		q := engine.MarketQuote{
			MarketName:   r.MarketName,
			PricePerUnit: r.PricePerQuintal,
			DistanceKm:   r.DistanceKm,
		}
		switch r.Region {
		case regionKey:
			regional = append(regional, q)
		case "":
			fallback = append(fallback, q)
		}
	}

	if len(regional) > 0 {
		return regional, nil
	}
	if len(fallback) > 0 {
		return fallback, nil
	}
	return nil, ErrNoMarketData{Crop: crop}
}
