// Package weather implements the short-horizon stochastic weather simulator.
// Forecasts are synthesised from seasonal parameter buckets rather than
// ingested from a meteorological provider; the engine's contract is a
// plausible, reproducible 7-day outlook for agronomic scoring, not a
// physically calibrated forecast.
package weather

import (
	"context"
	"math/rand"
	"time"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
)

// ForecastDays is the fixed forecast horizon.
const ForecastDays = 7

// Condition is the qualitative label attached to a forecast day.
type Condition string

const (
	ConditionRainy        Condition = "Rainy"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
	ConditionHotAndDry    Condition = "Hot and Dry"
	ConditionHumid        Condition = "Humid"
	ConditionFair         Condition = "Fair"
)

// Day is a single simulated forecast day.
type Day struct {
	Date               time.Time `json:"date"`
	TempMinC           float64   `json:"temp_min_c"`
	TempMaxC           float64   `json:"temp_max_c"`
	HumidityPct        float64   `json:"humidity_pct"`
	RainProbabilityPct float64   `json:"rain_probability_pct"`
	RainfallMm         float64   `json:"rainfall_mm"`
	WindSpeedKmh       float64   `json:"wind_speed_kmh"`
	WindDirection      string    `json:"wind_direction"`
	Condition          Condition `json:"condition"`
	Advice             []string  `json:"advice"`
}

// SeasonalOutlook is the qualitative month-level outlook attached to a
// forecast.
type SeasonalOutlook struct {
	Season          string   `json:"season"`
	Outlook         string   `json:"outlook"`
	Recommendations []string `json:"recommendations"`
}

// ObservationSet is a complete 7-day forecast for one region.
type ObservationSet struct {
	RegionID  string          `json:"region_id"`
	Location  string          `json:"location"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Days      []Day           `json:"days"`
	Outlook   SeasonalOutlook `json:"outlook"`
}

// TotalRainfallMm sums the simulated rainfall across all forecast days.
func (o *ObservationSet) TotalRainfallMm() float64 {
	var total float64
	for _, d := range o.Days {
		total += d.RainfallMm
	}
	return total
}

// Flags derives the adverse-condition flags the scorer's resilience penalty
// keys on.  Heat stress triggers on any day above 35 °C, drought risk on a
// mean rain probability below 20 %, flood risk on any single day with 20 mm
// or more of simulated rainfall.
func (o *ObservationSet) Flags() ConditionFlags {
	var f ConditionFlags
	var probSum float64
	for _, d := range o.Days {
		if d.TempMaxC > 35 {
			f.ExtremeHeat = true
		}
		if d.RainfallMm >= 20 {
			f.FloodRisk = true
		}
		probSum += d.RainProbabilityPct
	}
	if len(o.Days) > 0 && probSum/float64(len(o.Days)) < 20 {
		f.DroughtRisk = true
	}
	return f
}

// ConditionFlags marks adverse current conditions relevant to crop
// resilience.  Callers may supply their own flags or derive them from a
// simulated ObservationSet.
type ConditionFlags struct {
	ExtremeHeat bool `json:"extreme_heat"`
	DroughtRisk bool `json:"drought_risk"`
	FloodRisk   bool `json:"flood_risk"`
}

// seasonParams is one seasonal parameter bucket.  Buckets follow the West
// African calendar: harmattan (Dec–Feb), hot-dry (Mar–May), rainy
// (Jun–Sep), transitional (Oct–Nov).
type seasonParams struct {
	baseTempC       float64
	baseHumidityPct float64
	baseRainProbPct float64
	baseWindKmh     float64
}

func paramsForMonth(m time.Month) seasonParams {
	switch {
	case m == time.December || m <= time.February:
		return seasonParams{baseTempC: 28, baseHumidityPct: 35, baseRainProbPct: 10, baseWindKmh: 15}
	case m <= time.May:
		return seasonParams{baseTempC: 32, baseHumidityPct: 60, baseRainProbPct: 40, baseWindKmh: 8}
	case m <= time.September:
		return seasonParams{baseTempC: 26, baseHumidityPct: 85, baseRainProbPct: 80, baseWindKmh: 12}
	default:
		return seasonParams{baseTempC: 29, baseHumidityPct: 70, baseRainProbPct: 60, baseWindKmh: 10}
	}
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Simulator produces 7-day stochastic forecasts for catalog regions.
type Simulator struct {
	catalog *catalog.Catalog
	logger  logging.Logger
}

// NewSimulator constructs a Simulator over the given catalog.
func NewSimulator(cat *catalog.Catalog, logger logging.Logger) *Simulator {
	return &Simulator{catalog: cat, logger: logger.Named("weather")}
}

// Simulate generates a 7-day forecast for the region starting at asOf.
// The seasonal parameter bucket is selected once from asOf's calendar month
// and held fixed for the whole horizon, matching the field calibration.
// All randomness is drawn from rng so a fixed seed reproduces the forecast
// exactly.  Unknown region ids return a RegionNotFound error.
func (s *Simulator) Simulate(ctx context.Context, regionID string, asOf time.Time, rng *rand.Rand) (*ObservationSet, error) {
	region, err := s.catalog.Region(regionID)
	if err != nil {
		return nil, err
	}

	month := asOf.Month()
	p := paramsForMonth(month)

	days := make([]Day, 0, ForecastDays)
	for i := 0; i < ForecastDays; i++ {
		date := asOf.AddDate(0, 0, i)

		rainProb := clamp(p.baseRainProbPct+uniform(rng, -20, 20), 0, 100)

		// Rain is recorded only when the Bernoulli gate on the day's
		// probability fires; the probability value alone never implies rain.
		var rainfall float64
		if rng.Float64() < rainProb/100 {
			rainfall = uniform(rng, 0, 25)
		}

		days = append(days, Day{
			Date:               date,
			TempMinC:           p.baseTempC - uniform(rng, 3, 7),
			TempMaxC:           p.baseTempC + uniform(rng, 2, 6),
			HumidityPct:        clamp(p.baseHumidityPct+uniform(rng, -15, 15), 0, 100),
			RainProbabilityPct: rainProb,
			RainfallMm:         rainfall,
			WindSpeedKmh:       p.baseWindKmh + uniform(rng, -5, 5),
			WindDirection:      compassPoints[rng.Intn(len(compassPoints))],
			Condition:          determineCondition(p),
			Advice:             farmingAdvice(p, month),
		})
	}

	s.logger.Debug("forecast generated",
		logging.String("region", regionID),
		logging.String("month", month.String()),
		logging.Float64("total_rainfall_mm", sumRainfall(days)),
	)

	return &ObservationSet{
		RegionID:  region.ID,
		Location:  region.Capital,
		Latitude:  region.Latitude,
		Longitude: region.Longitude,
		Days:      days,
		Outlook:   seasonalOutlook(month),
	}, nil
}

// determineCondition labels a day from the bucket's base parameters.  The
// label reflects the prevailing seasonal character rather than the sampled
// values, so all days of one forecast share it.
func determineCondition(p seasonParams) Condition {
	switch {
	case p.baseRainProbPct > 70:
		return ConditionRainy
	case p.baseRainProbPct > 40:
		return ConditionPartlyCloudy
	case p.baseTempC > 30 && p.baseHumidityPct < 50:
		return ConditionHotAndDry
	case p.baseHumidityPct > 80:
		return ConditionHumid
	default:
		return ConditionFair
	}
}

// farmingAdvice derives up to two advice strings from the bucket parameters
// and the calendar month.
func farmingAdvice(p seasonParams, month time.Month) []string {
	var advice []string

	if p.baseRainProbPct > 70 {
		advice = append(advice,
			"Good time for land preparation and planting",
			"Ensure proper drainage to prevent waterlogging")
	} else if p.baseRainProbPct < 20 && p.baseTempC > 30 {
		advice = append(advice,
			"Consider irrigation for crops",
			"Harvest mature crops before heat stress")
	}

	switch month {
	case time.April, time.May, time.June:
		advice = append(advice, "Optimal time for maize and rice planting")
	case time.September, time.October:
		advice = append(advice, "Good for vegetable cultivation")
	}

	if p.baseHumidityPct > 80 {
		advice = append(advice, "Monitor crops for fungal diseases")
	}

	if len(advice) > 2 {
		advice = advice[:2]
	}
	return advice
}

// seasonalOutlook selects the month-level qualitative outlook.
func seasonalOutlook(month time.Month) SeasonalOutlook {
	switch {
	case month >= time.April && month <= time.July:
		return SeasonalOutlook{
			Season:  "Major Growing Season",
			Outlook: "Favorable conditions for staple crops",
			Recommendations: []string{
				"Plant maize and rice early in season",
				"Apply fertilizer during peak growth",
				"Monitor for pest and disease outbreaks",
			},
		}
	case month >= time.September && month <= time.November:
		return SeasonalOutlook{
			Season:  "Minor Growing Season",
			Outlook: "Good for vegetable and cash crops",
			Recommendations: []string{
				"Focus on high-value vegetables",
				"Prepare for harmattan season",
				"Plan storage for harvested crops",
			},
		}
	default:
		return SeasonalOutlook{
			Season:  "Dry Season",
			Outlook: "Limited rain-fed agriculture",
			Recommendations: []string{
				"Invest in irrigation systems",
				"Focus on crop processing and marketing",
				"Prepare for next planting season",
			},
		}
	}
}

func sumRainfall(days []Day) float64 {
	var total float64
	for _, d := range days {
		total += d.RainfallMm
	}
	return total
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
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
