// Package suitability answers whether a crop can viably be grown in a
// region, independent of market economics. It is a pure decision table over
// normalized region keys and enumerated crops; the comparison engine is only
// invoked for crops this package clears.
package suitability

import (
	"fmt"

	"github.com/cropyield/advisor-service/internal/crops"
	"github.com/cropyield/advisor-service/internal/normalize"
)

// Verdict is the outcome of a suitability check.
type Verdict struct {
	Suitable          bool
	Message           string
	Reason            string
	Alternatives      []string // Recommended crops when unsuitable
	OptimalConditions string   // Present when suitable and known
}

// Zone is a coarse agro-climatic classification of a region.
type Zone string

const (
	ZoneTropical  Zone = "tropical"  // Hot, humid, heavy monsoon
	ZoneSubtropic Zone = "subtropic" // Warm with mild winters
	ZoneSemiArid  Zone = "semi-arid" // Low rainfall, hot summers
	ZoneArid      Zone = "arid"      // Desert and near-desert
	ZoneHighland  Zone = "highland"  // Cool hills and plateaus
	ZoneUnknown   Zone = ""
)

// regionZones maps normalized region keys to their agro-climatic zone.
// Open-ended locations that are not listed fall back to ZoneUnknown.
var regionZones = map[string]Zone{
	"delhi":      ZoneSemiArid,
	"punjab":     ZoneSubtropic,
	"ludhiana":   ZoneSubtropic,
	"amritsar":   ZoneSubtropic,
	"haryana":    ZoneSemiArid,
	"lucknow":    ZoneSubtropic,
	"kanpur":     ZoneSubtropic,
	"patna":      ZoneSubtropic,
	"kolkata":    ZoneTropical,
	"guwahati":   ZoneTropical,
	"mumbai":     ZoneTropical,
	"pune":       ZoneSemiArid,
	"nashik":     ZoneSemiArid,
	"nagpur":     ZoneSemiArid,
	"hyderabad":  ZoneSemiArid,
	"bangalore":  ZoneHighland,
	"bengaluru":  ZoneHighland,
	"mysore":     ZoneHighland,
	"chennai":    ZoneTropical,
	"coimbatore": ZoneSemiArid,
	"kochi":      ZoneTropical,
	"munnar":     ZoneHighland,
	"jaipur":     ZoneArid,
	"jodhpur":    ZoneArid,
	"bikaner":    ZoneArid,
	"ahmedabad":  ZoneSemiArid,
	"rajkot":     ZoneSemiArid,
	"bhopal":     ZoneSubtropic,
	"indore":     ZoneSemiArid,
	"darjeeling": ZoneHighland,
	"shimla":     ZoneHighland,
	"agra":       ZoneSemiArid,
	"varanasi":   ZoneSubtropic,
}

// cropProfile describes where a crop grows and why.
type cropProfile struct {
	zones      map[Zone]bool
	conditions string // Optimal conditions note shown when suitable
	constraint string // Agronomic constraint cited when unsuitable
}

var cropProfiles = map[crops.Crop]cropProfile{
	crops.Rice: {
		zones:      map[Zone]bool{ZoneTropical: true, ZoneSubtropic: true},
		conditions: "Standing water during early growth; 20-35°C and high humidity.",
		constraint: "Rice needs abundant water and humidity that dry regions cannot provide without heavy irrigation.",
	},
	crops.Wheat: {
		zones:      map[Zone]bool{ZoneSubtropic: true, ZoneSemiArid: true, ZoneHighland: true},
		conditions: "Cool sowing season (10-25°C) with moderate irrigation.",
		constraint: "Wheat fails in hot, humid tropical conditions; grain filling needs a cool, dry spell.",
	},
	crops.Corn: {
		zones:      map[Zone]bool{ZoneTropical: true, ZoneSubtropic: true, ZoneSemiArid: true},
		conditions: "Warm season (21-30°C) with well-drained soil.",
		constraint: "Corn struggles in arid heat and in cold highland seasons.",
	},
	crops.Barley: {
		zones:      map[Zone]bool{ZoneSemiArid: true, ZoneArid: true, ZoneHighland: true, ZoneSubtropic: true},
		conditions: "Tolerates poor soils and limited water; cool growing season preferred.",
		constraint: "Barley dislikes waterlogged tropical conditions.",
	},
	crops.Soybeans: {
		zones:      map[Zone]bool{ZoneSubtropic: true, ZoneSemiArid: true},
		conditions: "Warm season with 60-80 cm of rain; well-drained loam.",
		constraint: "Soybeans need a moderate rainfall window that arid and wet-tropical regions miss.",
	},
	crops.Cotton: {
		zones:      map[Zone]bool{ZoneSemiArid: true, ZoneSubtropic: true},
		conditions: "Long frost-free season, 21-30°C, moderate water.",
		constraint: "Cotton needs a long hot season; cool highlands and humid tropics invite boll rot.",
	},
	crops.Sugarcane: {
		zones:      map[Zone]bool{ZoneTropical: true, ZoneSubtropic: true},
		conditions: "Year-round warmth and generous irrigation.",
		constraint: "Sugarcane's water demand cannot be met in arid or semi-arid regions.",
	},
	crops.Potato: {
		zones:      map[Zone]bool{ZoneHighland: true, ZoneSubtropic: true, ZoneSemiArid: true},
		conditions: "Cool nights (15-20°C) during tuber formation.",
		constraint: "Potato tubers fail to form in sustained tropical heat.",
	},
	crops.Tomato: {
		zones:      map[Zone]bool{ZoneSubtropic: true, ZoneSemiArid: true, ZoneHighland: true, ZoneTropical: true},
		conditions: "18-27°C with staking and regular irrigation.",
		constraint: "Tomato is broadly adaptable but fails in true desert heat without protected cultivation.",
	},
	crops.Onion: {
		zones:      map[Zone]bool{ZoneSemiArid: true, ZoneSubtropic: true, ZoneArid: true},
		conditions: "Mild season for bulbing; dry weather at harvest.",
		constraint: "Onion bulbs rot in high-rainfall tropical conditions.",
	},
	crops.Garlic: {
		zones:      map[Zone]bool{ZoneSemiArid: true, ZoneSubtropic: true, ZoneHighland: true},
		conditions: "Cool establishment period; dry harvest window.",
		constraint: "Garlic needs a cool spell for clove formation that hot tropical regions lack.",
	},
	crops.Chili: {
		zones:      map[Zone]bool{ZoneTropical: true, ZoneSubtropic: true, ZoneSemiArid: true},
		conditions: "Warm season (20-30°C) with moderate irrigation.",
		constraint: "Chili tolerates heat but not highland frost.",
	},
	crops.Turmeric: {
		zones:      map[Zone]bool{ZoneTropical: true, ZoneSubtropic: true},
		conditions: "Warm, humid climate with 150+ cm rainfall or irrigation.",
		constraint: "Turmeric rhizomes need warmth and moisture that dry regions cannot supply.",
	},
	crops.Ginger: {
		zones:      map[Zone]bool{ZoneTropical: true, ZoneHighland: true},
		conditions: "Warm, humid, partially shaded; rich organic soil.",
		constraint: "Ginger fails in dry heat; it needs humid conditions through the season.",
	},
	crops.Tea: {
		zones:      map[Zone]bool{ZoneHighland: true, ZoneTropical: true},
		conditions: "Cool, misty slopes with acidic soil and 150+ cm rainfall.",
		constraint: "Tea needs high-rainfall hill climates; plains and dry regions are unsuitable.",
	},
	crops.Coffee: {
		zones:      map[Zone]bool{ZoneHighland: true},
		conditions: "Shaded slopes at elevation, 15-28°C, well-distributed rainfall.",
		constraint: "Coffee only thrives at elevation with mild temperatures; lowland heat scorches the plants.",
	},
}

// ZoneFor returns the agro-climatic zone for a location, ZoneUnknown when the
// region is not in the table.
func ZoneFor(location string) Zone {
	return regionZones[normalize.RegionKey(location)]
}

// Check reports whether a crop can viably be grown at a location. Unknown
// crops are rejected; unknown regions get the benefit of the doubt with a
// caveat, since refusing every unlisted village would make the advisor
// useless in the field.
func Check(cropName, location string) Verdict {
	crop, ok := crops.Parse(cropName)
	if !ok {
		return Verdict{
			Suitable:     false,
			Message:      fmt.Sprintf("%s is not a supported crop", cropName),
			Reason:       "The advisor has no agronomic profile for this crop.",
			Alternatives: AlternativesForRegion(location),
		}
	}

	profile := cropProfiles[crop]
	zone := ZoneFor(location)

	if zone == ZoneUnknown {
		return Verdict{
			Suitable:          true,
			Message:           fmt.Sprintf("%s can generally be grown near %s", crop.DisplayName(), location),
			Reason:            "Region not in the suitability table; verify local conditions before planting.",
			OptimalConditions: profile.conditions,
		}
	}

	if profile.zones[zone] {
		return Verdict{
			Suitable:          true,
			Message:           fmt.Sprintf("%s is well suited to the %s climate around %s", crop.DisplayName(), zone, location),
			OptimalConditions: profile.conditions,
		}
	}

	return Verdict{
		Suitable:     false,
		Message:      fmt.Sprintf("%s cannot be reliably grown around %s", crop.DisplayName(), location),
		Reason:       profile.constraint,
		Alternatives: alternativesForZone(zone, crop),
	}
}

// AlternativesForRegion returns the crops best suited to a location, in
// display order. Unknown regions get a broadly-adapted default list.
func AlternativesForRegion(location string) []string {
	zone := ZoneFor(location)
	if zone == ZoneUnknown {
		return []string{
			crops.Wheat.DisplayName(),
			crops.Corn.DisplayName(),
			crops.Tomato.DisplayName(),
			crops.Onion.DisplayName(),
			crops.Chili.DisplayName(),
		}
	}
	return alternativesForZone(zone, "")
}

// alternativesForZone lists crops viable in a zone, excluding the crop that
// was just rejected.
func alternativesForZone(zone Zone, exclude crops.Crop) []string {
	var alts []string
	for _, c := range crops.All() {
		if c == exclude {
			continue
		}
		if cropProfiles[c].zones[zone] {
			alts = append(alts, c.DisplayName())
		}
	}
	return alts
}

// ZonesFor lists the zones a crop grows in, in a stable order.
func ZonesFor(crop crops.Crop) []string {
	profile, ok := cropProfiles[crop]
	if !ok {
		return nil
	}
	ordered := []Zone{ZoneTropical, ZoneSubtropic, ZoneSemiArid, ZoneArid, ZoneHighland}
	var zones []string
	for _, z := range ordered {
		if profile.zones[z] {
			zones = append(zones, string(z))
		}
	}
	return zones
}
