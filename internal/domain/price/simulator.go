// Package price generates market price forecasts as a seasonally-biased
// bounded random walk over the crop's base price.
package price

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/pkg/errors"
)

// DefaultHorizonDays is the forecast length used when the caller does not
// supply one.
const DefaultHorizonDays = 30

// Day is a single point on the predicted price path.
type Day struct {
	Date          time.Time `json:"date"`
	PricePerKg    float64   `json:"price_per_kg"`
	Confidence    float64   `json:"confidence"`
	MarketFactors []string  `json:"market_factors"`
}

// Summary aggregates the path into headline statistics.
type Summary struct {
	MeanPrice         float64 `json:"mean_price"`
	MinPrice          float64 `json:"min_price"`
	MaxPrice          float64 `json:"max_price"`
	VolatilityPercent float64 `json:"volatility_percent"`
}

// Prediction is the full price forecast for one crop in one region.
type Prediction struct {
	CropID         string  `json:"crop_id"`
	RegionID       string  `json:"region_id"`
	HorizonDays    int     `json:"horizon_days"`
	BasePricePerKg float64 `json:"base_price_per_kg"`
	Days           []Day   `json:"days"`
	Summary        Summary `json:"summary"`
}

// Simulator produces price forecasts against the catalog.
type Simulator struct {
	catalog *catalog.Catalog
	logger  logging.Logger
}

// NewSimulator constructs a Simulator over the given catalog.
func NewSimulator(cat *catalog.Catalog, logger logging.Logger) *Simulator {
	return &Simulator{catalog: cat, logger: logger.Named("price")}
}

// Simulate walks the crop's price forward horizonDays days starting at
// asOf.  Each step draws a normal shock scaled by the crop's volatility,
// applies a seasonal drift (prices fall during harvest months, rise
// otherwise), and clamps the result to [0.5, 2.0] times the base price.
// All randomness comes from rng.
func (s *Simulator) Simulate(
	ctx context.Context,
	cropID, regionID string,
	horizonDays int,
	asOf time.Time,
	rng *rand.Rand,
) (*Prediction, error) {
	if horizonDays <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidHorizon,
			fmt.Sprintf("forecast horizon must be positive, got %d", horizonDays))
	}

	crop, err := s.catalog.Crop(cropID)
	if err != nil {
		return nil, err
	}
	region, err := s.catalog.Region(regionID)
	if err != nil {
		return nil, err
	}

	base := crop.Market.BasePricePerKg
	vol := crop.Market.PriceVolatility
	floor, ceiling := base*0.5, base*2.0

	days := make([]Day, 0, horizonDays)
	current := base
	sum, low, high := 0.0, 0.0, 0.0

	for i := 0; i < horizonDays; i++ {
		date := asOf.AddDate(0, 0, i)

		change := rng.NormFloat64() * vol * 0.1
		if crop.HarvestsIn(date.Month()) {
			change -= 0.02 // harvest glut pushes prices down
		} else {
			change += 0.01
		}

		current *= 1 + change
		current = clamp(current, floor, ceiling)

		days = append(days, Day{
			Date:          date,
			PricePerKg:    current,
			Confidence:    uniform(rng, 0.7, 0.95),
			MarketFactors: marketFactors(crop, date, rng),
		})

		sum += current
		if i == 0 || current < low {
			low = current
		}
		if i == 0 || current > high {
			high = current
		}
	}

	pred := &Prediction{
		CropID:         crop.ID,
		RegionID:       region.ID,
		HorizonDays:    horizonDays,
		BasePricePerKg: base,
		Days:           days,
		Summary: Summary{
			MeanPrice:         sum / float64(horizonDays),
			MinPrice:          low,
			MaxPrice:          high,
			VolatilityPercent: vol * 100,
		},
	}

	s.logger.Debug("price path simulated",
		logging.String("crop", crop.ID),
		logging.String("region", region.ID),
		logging.Int("horizon_days", horizonDays),
		logging.Float64("mean_price", pred.Summary.MeanPrice),
	)
	return pred, nil
}

// marketFactors tags a day with up to two qualitative demand drivers.
func marketFactors(crop catalog.CropProfile, date time.Time, rng *rand.Rand) []string {
	var factors []string

	switch date.Weekday() {
	case time.Friday, time.Saturday:
		factors = append(factors, "Weekend market demand")
	}
	if m := date.Month(); m == time.December || m == time.January {
		factors = append(factors, "Holiday season demand")
	}
	if crop.HarvestsIn(date.Month()) {
		factors = append(factors, "Main harvest season")
	}
	if rng.Float64() < 0.1 {
		factors = append(factors, "Export demand fluctuation")
	}

	if len(factors) > 2 {
		factors = factors[:2]
	}
	return factors
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
