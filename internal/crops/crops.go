// Package crops defines the enumerated crop types the advisor supports.
package crops

import "github.com/cropyield/advisor-service/internal/normalize"

// Crop is an enumerated crop type. The zero value is invalid.
type Crop string

const (
	Rice      Crop = "rice"
	Wheat     Crop = "wheat"
	Corn      Crop = "corn"
	Barley    Crop = "barley"
	Soybeans  Crop = "soybeans"
	Cotton    Crop = "cotton"
	Sugarcane Crop = "sugarcane"
	Potato    Crop = "potato"
	Tomato    Crop = "tomato"
	Onion     Crop = "onion"
	Garlic    Crop = "garlic"
	Chili     Crop = "chili"
	Turmeric  Crop = "turmeric"
	Ginger    Crop = "ginger"
	Tea       Crop = "tea"
	Coffee    Crop = "coffee"
)

// All returns the supported crops in display order.
func All() []Crop {
	return []Crop{
		Rice, Wheat, Corn, Barley, Soybeans, Cotton,
		Sugarcane, Potato, Tomato, Onion, Garlic,
		Chili, Turmeric, Ginger, Tea, Coffee,
	}
}

var displayNames = map[Crop]string{
	Rice:      "Rice",
	Wheat:     "Wheat",
	Corn:      "Corn",
	Barley:    "Barley",
	Soybeans:  "Soybeans",
	Cotton:    "Cotton",
	Sugarcane: "Sugarcane",
	Potato:    "Potato",
	Tomato:    "Tomato",
	Onion:     "Onion",
	Garlic:    "Garlic",
	Chili:     "Chili",
	Turmeric:  "Turmeric",
	Ginger:    "Ginger",
	Tea:       "Tea",
	Coffee:    "Coffee",
}

// DisplayName returns the human-readable crop name.
func (c Crop) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// Parse normalizes a free-form crop name into a Crop. Returns the crop and
// true when supported, false otherwise.
func Parse(name string) (Crop, bool) {
	c := Crop(normalize.Key(name))
	if _, ok := displayNames[c]; ok {
		return c, true
	}
	return "", false
}

// IsValid checks if a crop name is supported.
func IsValid(name string) bool {
	_, ok := Parse(name)
	return ok
}
