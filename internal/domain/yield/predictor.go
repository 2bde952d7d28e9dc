// Package yield implements the crop yield prediction model: a base
// per-hectare yield scaled by weather, regional-suitability, and
// management-practice factors, with a volatility-derived confidence
// interval.
package yield

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/weather"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/pkg/errors"
)

// Prediction is the yield estimate for one crop on one farm.
type Prediction struct {
	CropID           string  `json:"crop_id"`
	RegionID         string  `json:"region_id"`
	FarmSizeHectares float64 `json:"farm_size_hectares"`

	TotalKg      float64 `json:"total_kg"`
	PerHectareKg float64 `json:"per_hectare_kg"`

	// Confidence bounds reuse the crop's price-volatility coefficient as a
	// yield-uncertainty proxy; the source data carries no separate yield
	// volatility.
	ConfidenceLowKg  float64 `json:"confidence_low_kg"`
	ConfidenceHighKg float64 `json:"confidence_high_kg"`

	WeatherFactor    float64 `json:"weather_factor"`
	RegionalFactor   float64 `json:"regional_factor"`
	ManagementFactor float64 `json:"management_factor"`

	PlantingWindow  string `json:"planting_window"`
	HarvestWindow   string `json:"harvest_window"`
	GrowthCycleDays int    `json:"growth_cycle_days"`
}

// Predictor computes yield predictions against the catalog.
type Predictor struct {
	catalog *catalog.Catalog
	logger  logging.Logger
}

// NewPredictor constructs a Predictor over the given catalog.
func NewPredictor(cat *catalog.Catalog, logger logging.Logger) *Predictor {
	return &Predictor{catalog: cat, logger: logger.Named("yield")}
}

// Predict estimates the total and per-hectare yield for the crop on a farm
// of the given size.  obs is optional: when nil the weather factor is 1.0,
// otherwise it is derived from the forecast's annualised rainfall.  asOf
// anchors the planting/harvest window strings.  All randomness comes from
// rng.
//
// The weather factor is deliberately discontinuous at rainfall ratios 0.5
// and 1.5: the calibrated penalty plateaus (0.70 and 0.85) do not meet the
// interior curve at its endpoints.  Smoothing the boundary would change
// observable predictions, so the jumps are preserved.
func (p *Predictor) Predict(
	ctx context.Context,
	cropID, regionID string,
	farmSizeHectares float64,
	obs *weather.ObservationSet,
	asOf time.Time,
	rng *rand.Rand,
) (*Prediction, error) {
	if farmSizeHectares <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFarmProfile,
			fmt.Sprintf("farm size must be positive, got %.2f", farmSizeHectares))
	}

	crop, err := p.catalog.Crop(cropID)
	if err != nil {
		return nil, err
	}
	region, err := p.catalog.Region(regionID)
	if err != nil {
		return nil, err
	}

	weatherFactor := 1.0
	if obs != nil {
		annualizedMm := obs.TotalRainfallMm() * 365.0 / float64(weather.ForecastDays)
		ratio := annualizedMm / crop.OptimalRainfallMm
		switch {
		case ratio > 1.5:
			weatherFactor = 0.85 // waterlogging penalty plateau
		case ratio < 0.5:
			weatherFactor = 0.70 // drought penalty plateau
		default:
			weatherFactor = 0.8 + 0.4*(1-math.Abs(1-ratio))
		}
	}

	var regionalFactor float64
	if crop.SuitableFor(region.ID) {
		regionalFactor = uniform(rng, 0.9, 1.1)
	} else {
		regionalFactor = uniform(rng, 0.6, 0.8)
	}

	managementFactor := uniform(rng, 0.8, 1.2)

	perHectare := crop.Growth.BaseYieldKgPerHectare * weatherFactor * regionalFactor * managementFactor
	total := perHectare * farmSizeHectares

	vol := crop.Market.PriceVolatility

	pred := &Prediction{
		CropID:           crop.ID,
		RegionID:         region.ID,
		FarmSizeHectares: farmSizeHectares,
		TotalKg:          total,
		PerHectareKg:     perHectare,
		ConfidenceLowKg:  total * (1 - vol),
		ConfidenceHighKg: total * (1 + vol),
		WeatherFactor:    weatherFactor,
		RegionalFactor:   regionalFactor,
		ManagementFactor: managementFactor,
		PlantingWindow:   plantingWindow(region.RainfallPattern, asOf.Month()),
		HarvestWindow:    harvestWindow(crop, asOf.Month()),
		GrowthCycleDays:  crop.Growth.GrowthCycleDays,
	}

	p.logger.Debug("yield predicted",
		logging.String("crop", crop.ID),
		logging.String("region", region.ID),
		logging.Float64("total_kg", total),
		logging.Float64("weather_factor", weatherFactor),
	)
	return pred, nil
}

// plantingWindow describes the next optimal planting window for the
// region's rainfall pattern relative to the given month.
func plantingWindow(pattern catalog.RainfallPattern, month time.Month) string {
	if pattern == catalog.PatternBimodal {
		switch {
		case month <= time.March:
			return "April 1 - May 15 (Major Season)"
		case month <= time.August:
			return "September 1 - October 15 (Minor Season)"
		default:
			return "April 1 - May 15 (Next Major Season)"
		}
	}
	if month <= time.May {
		return "May 1 - June 30 (Rainy Season)"
	}
	return "May 1 - June 30 (Next Rainy Season)"
}

// harvestWindow describes when the crop can next be harvested relative to
// the given month.
func harvestWindow(crop catalog.CropProfile, month time.Month) string {
	if crop.HarvestsIn(month) {
		return fmt.Sprintf("Ready for harvest (%s)", month)
	}
	next := time.Month(0)
	for _, hm := range crop.HarvestMonths {
		if hm > month && (next == 0 || hm < next) {
			next = hm
		}
	}
	if next == 0 {
		// Wrap to the earliest harvest month of the following year.
		for _, hm := range crop.HarvestMonths {
			if next == 0 || hm < next {
				next = hm
			}
		}
	}
	return fmt.Sprintf("Expected harvest: %s", next)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
