package catalog

import (
	"context"

	"github.com/cropyield/advisor-service/internal/engine"
)

// Static serves quotes from a built-in dataset. It is the default source
// when no file or database is configured, and the fixture source in tests.
type Static struct {
	rows []Row
}

// NewStatic creates a static source over the built-in dataset.
func NewStatic() *Static {
	return &Static{rows: builtinRows()}
}

// NewStaticWithRows creates a static source over a caller-supplied dataset.
func NewStaticWithRows(rows []Row) *Static {
	return &Static{rows: rows}
}

// QuotesFor returns the candidate markets for a crop near a location.
func (s *Static) QuotesFor(ctx context.Context, crop, location string) ([]engine.MarketQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return selectQuotes(s.rows, crop, location)
}

// builtinRows is a planning dataset of mandi quotes in currency per quintal.
// Rows with a region key serve farms in that region; empty-region rows are
// the nationwide fallback.
func builtinRows() []Row {
	return []Row{
		// Wheat
		{Crop: "wheat", Region: "delhi", MarketName: "Azadpur Mandi", PricePerQuintal: 2150, DistanceKm: 12},
		{Crop: "wheat", Region: "delhi", MarketName: "Ghazipur Mandi", PricePerQuintal: 2190, DistanceKm: 28},
		{Crop: "wheat", Region: "delhi", MarketName: "Narela Mandi", PricePerQuintal: 2125, DistanceKm: 35},
		{Crop: "wheat", Region: "ludhiana", MarketName: "Khanna Mandi", PricePerQuintal: 2215, DistanceKm: 45},
		{Crop: "wheat", Region: "ludhiana", MarketName: "Ludhiana Grain Market", PricePerQuintal: 2180, DistanceKm: 8},
		{Crop: "wheat", Region: "", MarketName: "District Mandi", PricePerQuintal: 2125, DistanceKm: 15},
		{Crop: "wheat", Region: "", MarketName: "Regional Wholesale Market", PricePerQuintal: 2200, DistanceKm: 60},
		{Crop: "wheat", Region: "", MarketName: "FCI Procurement Centre", PricePerQuintal: 2275, DistanceKm: 95},

		// Rice
		{Crop: "rice", Region: "kolkata", MarketName: "Sealdah Koley Market", PricePerQuintal: 2090, DistanceKm: 10},
		{Crop: "rice", Region: "kolkata", MarketName: "Burdwan Mandi", PricePerQuintal: 2160, DistanceKm: 100},
		{Crop: "rice", Region: "patna", MarketName: "Musallahpur Mandi", PricePerQuintal: 2040, DistanceKm: 9},
		{Crop: "rice", Region: "", MarketName: "District Mandi", PricePerQuintal: 2040, DistanceKm: 15},
		{Crop: "rice", Region: "", MarketName: "Rice Millers Cooperative", PricePerQuintal: 2140, DistanceKm: 55},

		// Onion
		{Crop: "onion", Region: "nashik", MarketName: "Lasalgaon APMC", PricePerQuintal: 1550, DistanceKm: 25},
		{Crop: "onion", Region: "nashik", MarketName: "Pimpalgaon APMC", PricePerQuintal: 1520, DistanceKm: 18},
		{Crop: "onion", Region: "nashik", MarketName: "Mumbai Vashi APMC", PricePerQuintal: 1750, DistanceKm: 170},
		{Crop: "onion", Region: "", MarketName: "District Vegetable Market", PricePerQuintal: 1380, DistanceKm: 12},
		{Crop: "onion", Region: "", MarketName: "State APMC Yard", PricePerQuintal: 1480, DistanceKm: 70},

		// Potato
		{Crop: "potato", Region: "agra", MarketName: "Sikandra Mandi", PricePerQuintal: 1240, DistanceKm: 10},
		{Crop: "potato", Region: "agra", MarketName: "Delhi Azadpur Mandi", PricePerQuintal: 1390, DistanceKm: 230},
		{Crop: "potato", Region: "", MarketName: "District Vegetable Market", PricePerQuintal: 1180, DistanceKm: 12},
		{Crop: "potato", Region: "", MarketName: "Cold Storage Buyers Yard", PricePerQuintal: 1290, DistanceKm: 45},

		// Tomato
		{Crop: "tomato", Region: "bangalore", MarketName: "Kolar APMC", PricePerQuintal: 1620, DistanceKm: 70},
		{Crop: "tomato", Region: "bangalore", MarketName: "Binny Mills Market", PricePerQuintal: 1540, DistanceKm: 15},
		{Crop: "tomato", Region: "", MarketName: "District Vegetable Market", PricePerQuintal: 1450, DistanceKm: 12},
		{Crop: "tomato", Region: "", MarketName: "City Wholesale Market", PricePerQuintal: 1560, DistanceKm: 50},

		// Cotton
		{Crop: "cotton", Region: "nagpur", MarketName: "Nagpur Cotton Market", PricePerQuintal: 6150, DistanceKm: 20},
		{Crop: "cotton", Region: "", MarketName: "CCI Procurement Centre", PricePerQuintal: 6080, DistanceKm: 40},
		{Crop: "cotton", Region: "", MarketName: "Ginning Mill Gate", PricePerQuintal: 6230, DistanceKm: 85},

		// Corn
		{Crop: "corn", Region: "", MarketName: "District Mandi", PricePerQuintal: 1962, DistanceKm: 15},
		{Crop: "corn", Region: "", MarketName: "Poultry Feed Mill", PricePerQuintal: 2060, DistanceKm: 55},
		{Crop: "corn", Region: "", MarketName: "Starch Factory Gate", PricePerQuintal: 2110, DistanceKm: 110},

		// Barley
		{Crop: "barley", Region: "", MarketName: "District Mandi", PricePerQuintal: 1735, DistanceKm: 15},
		{Crop: "barley", Region: "", MarketName: "Malting Plant Gate", PricePerQuintal: 1890, DistanceKm: 120},

		// Soybeans
		{Crop: "soybeans", Region: "indore", MarketName: "Indore Chhawni Mandi", PricePerQuintal: 4380, DistanceKm: 14},
		{Crop: "soybeans", Region: "", MarketName: "District Mandi", PricePerQuintal: 4300, DistanceKm: 15},
		{Crop: "soybeans", Region: "", MarketName: "Solvent Extraction Plant", PricePerQuintal: 4420, DistanceKm: 75},

		// Sugarcane
		{Crop: "sugarcane", Region: "", MarketName: "Cooperative Sugar Mill", PricePerQuintal: 340, DistanceKm: 25},
		{Crop: "sugarcane", Region: "", MarketName: "Private Sugar Mill", PricePerQuintal: 330, DistanceKm: 18},
		{Crop: "sugarcane", Region: "", MarketName: "Jaggery Unit", PricePerQuintal: 355, DistanceKm: 40},

		// Garlic
		{Crop: "garlic", Region: "", MarketName: "District Mandi", PricePerQuintal: 4500, DistanceKm: 15},
		{Crop: "garlic", Region: "", MarketName: "Spice Traders Yard", PricePerQuintal: 4750, DistanceKm: 65},

		// Chili
		{Crop: "chili", Region: "hyderabad", MarketName: "Guntur Mirchi Yard", PricePerQuintal: 7450, DistanceKm: 270},
		{Crop: "chili", Region: "hyderabad", MarketName: "Malakpet Mandi", PricePerQuintal: 7050, DistanceKm: 12},
		{Crop: "chili", Region: "", MarketName: "District Mandi", PricePerQuintal: 6900, DistanceKm: 15},
		{Crop: "chili", Region: "", MarketName: "Spice Exporters Yard", PricePerQuintal: 7300, DistanceKm: 90},

		// Turmeric
		{Crop: "turmeric", Region: "", MarketName: "District Mandi", PricePerQuintal: 6500, DistanceKm: 15},
		{Crop: "turmeric", Region: "", MarketName: "Erode Turmeric Market", PricePerQuintal: 6850, DistanceKm: 130},

		// Ginger
		{Crop: "ginger", Region: "", MarketName: "District Mandi", PricePerQuintal: 5500, DistanceKm: 15},
		{Crop: "ginger", Region: "", MarketName: "Spice Traders Yard", PricePerQuintal: 5720, DistanceKm: 65},

		// Tea
		{Crop: "tea", Region: "darjeeling", MarketName: "Darjeeling Auction Centre", PricePerQuintal: 14200, DistanceKm: 30},
		{Crop: "tea", Region: "", MarketName: "Regional Tea Auction", PricePerQuintal: 13500, DistanceKm: 60},
		{Crop: "tea", Region: "", MarketName: "Estate Factory Gate", PricePerQuintal: 13100, DistanceKm: 10},

		// Coffee
		{Crop: "coffee", Region: "", MarketName: "Curing Works Gate", PricePerQuintal: 15000, DistanceKm: 35},
		{Crop: "coffee", Region: "", MarketName: "Coffee Board Auction", PricePerQuintal: 15400, DistanceKm: 95},
	}
}
