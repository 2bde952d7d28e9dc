// Package catalog holds the immutable agro-climatic reference data the
// decision-support engine runs against: per-region climate parameters and
// per-crop agronomic, market, and resilience profiles.  The catalog is
// seeded once at startup from in-memory tables and never mutated, so it is
// safe for unlimited concurrent readers.
package catalog

import "time"

// RainfallPattern classifies a region's annual rainfall distribution.
type RainfallPattern string

const (
	// PatternBimodal marks regions with two rainy seasons (major and minor).
	PatternBimodal RainfallPattern = "bimodal"
	// PatternUnimodal marks regions with a single rainy season.
	PatternUnimodal RainfallPattern = "unimodal"
)

// Tier is a four-step qualitative grade used for climate-resilience
// attributes and demand stability.
type Tier string

const (
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierVeryHigh Tier = "very_high"
)

// IsValid reports whether t is one of the declared tiers.
func (t Tier) IsValid() bool {
	switch t {
	case TierLow, TierMedium, TierHigh, TierVeryHigh:
		return true
	}
	return false
}

// MarketGrade grades a crop's export potential or local-market access.
type MarketGrade string

const (
	GradeLimited   MarketGrade = "limited"
	GradeLow       MarketGrade = "low"
	GradeMedium    MarketGrade = "medium"
	GradeHigh      MarketGrade = "high"
	GradeExcellent MarketGrade = "excellent"
)

// IsValid reports whether g is one of the declared grades.
func (g MarketGrade) IsValid() bool {
	switch g {
	case GradeLimited, GradeLow, GradeMedium, GradeHigh, GradeExcellent:
		return true
	}
	return false
}

// Season is a planting-season tag.  Each tag maps to a fixed calendar-month
// window; the windows follow the West African agricultural calendar used by
// the original field data.
type Season string

const (
	SeasonMajorRains Season = "major_rains" // April–July
	SeasonMinorRains Season = "minor_rains" // September–November
	SeasonDry        Season = "dry_season"  // December–March
	SeasonYearRound  Season = "year_round"  // all months
)

// IsValid reports whether s is one of the declared season tags.
func (s Season) IsValid() bool {
	switch s {
	case SeasonMajorRains, SeasonMinorRains, SeasonDry, SeasonYearRound:
		return true
	}
	return false
}

// Contains reports whether the given calendar month falls inside the
// season's fixed window.
func (s Season) Contains(m time.Month) bool {
	switch s {
	case SeasonMajorRains:
		return m >= time.April && m <= time.July
	case SeasonMinorRains:
		return m >= time.September && m <= time.November
	case SeasonDry:
		return m == time.December || m <= time.March
	case SeasonYearRound:
		return true
	}
	return false
}

// Category classifies a crop agronomically.
type Category string

const (
	CategoryTreeCrop  Category = "tree_crop"
	CategoryCereal    Category = "cereal"
	CategoryRootTuber Category = "root_tuber"
	CategoryFruitCrop Category = "fruit_crop"
)

// Range is a closed interval [Min, Max] over one agro-climatic variable.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mid returns the interval midpoint.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Region describes one geographic area's fixed climate attributes.
type Region struct {
	ID              string
	Capital         string
	Latitude        float64
	Longitude       float64
	RainfallMm      float64 // mean annual rainfall
	TemperatureC    float64 // mean temperature
	SoilPH          Range
	ElevationM      float64
	RainfallPattern RainfallPattern

	// PrimaryCrops lists the crops traditionally farmed in the region.
	// Informational; suitability decisions key on CropProfile.SuitableRegions.
	PrimaryCrops []string
}

// OptimalConditions holds a crop's optimal-condition intervals.
type OptimalConditions struct {
	RainfallMm   Range
	TemperatureC Range
	SoilPH       Range
	ElevationM   Range
	HumidityPct  Range
}

// GrowthCharacteristics holds a crop's growth and yield parameters.
type GrowthCharacteristics struct {
	MaturityMonths        int
	ProductiveYears       int
	BaseYieldKgPerHectare float64
	PlantingDensityPerHa  int
	HarvestCyclesPerYear  int
	GrowthCycleDays       int
}

// MarketData holds a crop's market parameters in the reference currency.
type MarketData struct {
	BasePricePerKg    float64
	DemandStability   Tier
	ExportPotential   MarketGrade
	LocalMarketAccess MarketGrade

	// PriceVolatility is the relative daily price dispersion coefficient in
	// [0,1].  It also serves as the yield-uncertainty proxy in confidence
	// intervals; no separate yield-volatility figure exists in the source
	// data.
	PriceVolatility float64
}

// ClimateResilience holds a crop's tolerance tiers for adverse conditions.
type ClimateResilience struct {
	DroughtTolerance  Tier
	FloodTolerance    Tier
	HeatTolerance     Tier
	DiseaseResistance Tier
}

// CropProfile is the complete static agronomic, market, and resilience
// profile for one crop.
type CropProfile struct {
	ID             string
	ScientificName string
	Category       Category

	Optimal    OptimalConditions
	Growth     GrowthCharacteristics
	Market     MarketData
	Resilience ClimateResilience

	// OptimalRainfallMm is the single target annual rainfall figure used by
	// the yield model's weather adjustment.  It is maintained separately
	// from Optimal.RainfallMm because the yield model predates the interval
	// data and was calibrated against point targets.
	OptimalRainfallMm float64

	// SuitableRegions lists region identifiers where the crop is considered
	// well adapted.  Entries may name regions outside the seeded region
	// table; those simply never match.
	SuitableRegions []string

	PlantingSeasons []Season
	HarvestMonths   []time.Month
}

// SuitableFor reports whether the region id is in the crop's
// suitable-region list.
func (c *CropProfile) SuitableFor(regionID string) bool {
	for _, r := range c.SuitableRegions {
		if r == regionID {
			return true
		}
	}
	return false
}

// HarvestsIn reports whether m is one of the crop's harvest months.
func (c *CropProfile) HarvestsIn(m time.Month) bool {
	for _, hm := range c.HarvestMonths {
		if hm == m {
			return true
		}
	}
	return false
}

// PlantableIn reports whether m falls in any of the crop's planting-season
// windows.
func (c *CropProfile) PlantableIn(m time.Month) bool {
	for _, s := range c.PlantingSeasons {
		if s.Contains(m) {
			return true
		}
	}
	return false
}
