package yield

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/weather"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/pkg/errors"
)

func newPredictor(t *testing.T) *Predictor {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewPredictor(cat, logging.NewNopLogger())
}

func asOf() time.Time {
	return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
}

// obsWithDailyRain builds a 7-day observation set with constant daily
// rainfall, so the annualised figure is dailyMm*365.
func obsWithDailyRain(dailyMm float64) *weather.ObservationSet {
	days := make([]weather.Day, weather.ForecastDays)
	for i := range days {
		days[i] = weather.Day{RainfallMm: dailyMm}
	}
	return &weather.ObservationSet{RegionID: "Ashanti", Days: days}
}

func TestPredict_NoWeatherMeansNeutralFactor(t *testing.T) {
	p := newPredictor(t)
	pred, err := p.Predict(context.Background(), "Cocoa", "Ashanti", 2.0, nil, asOf(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, pred.WeatherFactor)
	assert.InDelta(t, pred.PerHectareKg*2.0, pred.TotalKg, 1e-9)
}

func TestPredict_WeatherFactorRegimes(t *testing.T) {
	p := newPredictor(t)

	// Cocoa's optimal annual rainfall is 1500 mm.
	tests := []struct {
		name    string
		dailyMm float64
		want    float64
		exact   bool
	}{
		// 8*365 = 2920 mm, ratio 1.95 > 1.5 → plateau.
		{"too much rain", 8, 0.85, true},
		// 1*365 = 365 mm, ratio 0.24 < 0.5 → plateau.
		{"too little rain", 1, 0.70, true},
		// 4.1096*365 ≈ 1500 mm, ratio ≈ 1 → near curve peak 1.2.
		{"near optimal", 1500.0 / 365.0, 1.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := p.Predict(context.Background(), "Cocoa", "Ashanti", 1.0,
				obsWithDailyRain(tt.dailyMm), asOf(), rand.New(rand.NewSource(3)))
			require.NoError(t, err)
			if tt.exact {
				assert.Equal(t, tt.want, pred.WeatherFactor)
			} else {
				assert.InDelta(t, tt.want, pred.WeatherFactor, 1e-6)
			}
		})
	}
}

func TestPredict_WeatherFactorDiscontinuity(t *testing.T) {
	p := newPredictor(t)

	// Just inside the interior regime at ratio ≈ 1.5⁻ the curve gives
	// 0.8+0.4*(1-0.5) = 1.0; just past the boundary it drops to 0.85.
	inside := 1.499 * 1500.0 / 365.0
	outside := 1.501 * 1500.0 / 365.0

	predIn, err := p.Predict(context.Background(), "Cocoa", "Ashanti", 1.0,
		obsWithDailyRain(inside), asOf(), rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	predOut, err := p.Predict(context.Background(), "Cocoa", "Ashanti", 1.0,
		obsWithDailyRain(outside), asOf(), rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, predIn.WeatherFactor, 0.01)
	assert.Equal(t, 0.85, predOut.WeatherFactor)
}

func TestPredict_FactorBounds(t *testing.T) {
	p := newPredictor(t)
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))

		suitable, err := p.Predict(context.Background(), "Cocoa", "Ashanti", 3.0, nil, asOf(), rng)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, suitable.RegionalFactor, 0.9)
		assert.LessOrEqual(t, suitable.RegionalFactor, 1.1)
		assert.GreaterOrEqual(t, suitable.ManagementFactor, 0.8)
		assert.LessOrEqual(t, suitable.ManagementFactor, 1.2)

		// Cocoa is not suited to the Northern savanna.
		unsuitable, err := p.Predict(context.Background(), "Cocoa", "Northern", 3.0, nil, asOf(), rng)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, unsuitable.RegionalFactor, 0.6)
		assert.LessOrEqual(t, unsuitable.RegionalFactor, 0.8)
	}
}

func TestPredict_ConfidenceInterval(t *testing.T) {
	p := newPredictor(t)
	pred, err := p.Predict(context.Background(), "Maize", "Northern", 2.5, nil, asOf(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	assert.LessOrEqual(t, pred.ConfidenceLowKg, pred.TotalKg)
	assert.GreaterOrEqual(t, pred.ConfidenceHighKg, pred.TotalKg)

	// Interval width scales with the volatility coefficient: relative full
	// width is exactly 2×volatility.
	width := (pred.ConfidenceHighKg - pred.ConfidenceLowKg) / pred.TotalKg
	assert.InDelta(t, 2*0.25, width, 1e-9)

	// Cassava (volatility 0.10) must be tighter than Maize (0.25).
	cassava, err := p.Predict(context.Background(), "Cassava", "Northern", 2.5, nil, asOf(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	cassavaWidth := (cassava.ConfidenceHighKg - cassava.ConfidenceLowKg) / cassava.TotalKg
	assert.Less(t, cassavaWidth, width)
}

func TestPredict_InputValidation(t *testing.T) {
	p := newPredictor(t)

	_, err := p.Predict(context.Background(), "Cocoa", "Ashanti", 0, nil, asOf(), rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = p.Predict(context.Background(), "Cocoa", "Ashanti", -1.5, nil, asOf(), rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = p.Predict(context.Background(), "Durian", "Ashanti", 1, nil, asOf(), rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = p.Predict(context.Background(), "Cocoa", "Atlantis", 1, nil, asOf(), rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPredict_Reproducible(t *testing.T) {
	p := newPredictor(t)
	a, err := p.Predict(context.Background(), "Yam", "Brong-Ahafo", 4.0, nil, asOf(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	b, err := p.Predict(context.Background(), "Yam", "Brong-Ahafo", 4.0, nil, asOf(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHarvestWindow(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	cocoa, err := cat.Crop("Cocoa")
	require.NoError(t, err)

	// Cocoa harvests September through December.
	assert.Equal(t, "Ready for harvest (October)", harvestWindow(cocoa, time.October))
	assert.Equal(t, "Expected harvest: September", harvestWindow(cocoa, time.June))

	yam, err := cat.Crop("Yam")
	require.NoError(t, err)
	// Yam harvests November through February; in March the next window is
	// the coming November.
	assert.Equal(t, "Expected harvest: November", harvestWindow(yam, time.March))

	// A crop whose harvest months are all behind the current month wraps to
	// the earliest month of the following year.
	early := catalog.CropProfile{HarvestMonths: []time.Month{time.February, time.April}}
	assert.Equal(t, "Expected harvest: February", harvestWindow(early, time.June))
}

func TestPlantingWindow(t *testing.T) {
	assert.Equal(t, "April 1 - May 15 (Major Season)", plantingWindow(catalog.PatternBimodal, time.February))
	assert.Equal(t, "September 1 - October 15 (Minor Season)", plantingWindow(catalog.PatternBimodal, time.June))
	assert.Equal(t, "April 1 - May 15 (Next Major Season)", plantingWindow(catalog.PatternBimodal, time.October))
	assert.Equal(t, "May 1 - June 30 (Rainy Season)", plantingWindow(catalog.PatternUnimodal, time.April))
	assert.Equal(t, "May 1 - June 30 (Next Rainy Season)", plantingWindow(catalog.PatternUnimodal, time.August))
}
