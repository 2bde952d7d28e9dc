package price

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/pkg/errors"
)

func newSimulator(t *testing.T) *Simulator {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewSimulator(cat, logging.NewNopLogger())
}

func TestSimulate_PathBounds(t *testing.T) {
	s := newSimulator(t)
	asOf := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	for seed := int64(0); seed < 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pred, err := s.Simulate(context.Background(), "Maize", "Northern", 90, asOf, rng)
		require.NoError(t, err)

		require.Len(t, pred.Days, 90)
		base := pred.BasePricePerKg
		for _, d := range pred.Days {
			assert.GreaterOrEqual(t, d.PricePerKg, base*0.5)
			assert.LessOrEqual(t, d.PricePerKg, base*2.0)
			assert.GreaterOrEqual(t, d.Confidence, 0.7)
			assert.LessOrEqual(t, d.Confidence, 0.95)
			assert.LessOrEqual(t, len(d.MarketFactors), 2)
		}
	}
}

func TestSimulate_SummaryConsistency(t *testing.T) {
	s := newSimulator(t)
	asOf := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	pred, err := s.Simulate(context.Background(), "Cocoa", "Ashanti", 30, asOf, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, 30, pred.HorizonDays)
	assert.Equal(t, 12.50, pred.BasePricePerKg)
	assert.Equal(t, 15.0, pred.Summary.VolatilityPercent)

	sum, low, high := 0.0, pred.Days[0].PricePerKg, pred.Days[0].PricePerKg
	for _, d := range pred.Days {
		sum += d.PricePerKg
		if d.PricePerKg < low {
			low = d.PricePerKg
		}
		if d.PricePerKg > high {
			high = d.PricePerKg
		}
	}
	assert.InDelta(t, sum/30, pred.Summary.MeanPrice, 1e-9)
	assert.Equal(t, low, pred.Summary.MinPrice)
	assert.Equal(t, high, pred.Summary.MaxPrice)
	assert.LessOrEqual(t, pred.Summary.MinPrice, pred.Summary.MeanPrice)
	assert.LessOrEqual(t, pred.Summary.MeanPrice, pred.Summary.MaxPrice)
}

func TestSimulate_Dates(t *testing.T) {
	s := newSimulator(t)
	asOf := time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC)

	pred, err := s.Simulate(context.Background(), "Cassava", "Eastern", 5, asOf, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for i, d := range pred.Days {
		assert.Equal(t, asOf.AddDate(0, 0, i), d.Date)
	}
	// Month rollover: Jan 30 + 2 days lands in February.
	assert.Equal(t, time.February, pred.Days[2].Date.Month())
}

func TestSimulate_Reproducible(t *testing.T) {
	s := newSimulator(t)
	asOf := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

	a, err := s.Simulate(context.Background(), "Yam", "Brong-Ahafo", 30, asOf, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := s.Simulate(context.Background(), "Yam", "Brong-Ahafo", 30, asOf, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := s.Simulate(context.Background(), "Yam", "Brong-Ahafo", 30, asOf, rand.New(rand.NewSource(43)))
	require.NoError(t, err)
	assert.NotEqual(t, a.Days, c.Days)
}

func TestSimulate_Errors(t *testing.T) {
	s := newSimulator(t)
	asOf := time.Now()
	rng := rand.New(rand.NewSource(1))

	_, err := s.Simulate(context.Background(), "Durian", "Ashanti", 30, asOf, rng)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = s.Simulate(context.Background(), "Cocoa", "Atlantis", 30, asOf, rng)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = s.Simulate(context.Background(), "Cocoa", "Ashanti", 0, asOf, rng)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = s.Simulate(context.Background(), "Cocoa", "Ashanti", -10, asOf, rng)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestMarketFactors(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	cocoa, err := cat.Crop("Cocoa")
	require.NoError(t, err)

	// Find a seed whose first draw does not fire the 10% export tag, so
	// the deterministic factors below are the only ones present.
	var seed int64
	for rand.New(rand.NewSource(seed)).Float64() < 0.1 {
		seed++
	}
	quiet := func() *rand.Rand { return rand.New(rand.NewSource(seed)) }

	// Friday Dec 6 2024: weekend demand + holiday demand fill both slots
	// even though December is also a Cocoa harvest month.
	friday := time.Date(2024, time.December, 6, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Friday, friday.Weekday())
	got := marketFactors(cocoa, friday, quiet())
	assert.Equal(t, []string{"Weekend market demand", "Holiday season demand"}, got)

	// Monday Oct 7 2024: only the harvest tag applies.
	monday := time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())
	got = marketFactors(cocoa, monday, quiet())
	assert.Equal(t, []string{"Main harvest season"}, got)

	// Tuesday Mar 4 2025: no deterministic factor applies.
	tuesday := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, tuesday.Weekday())
	got = marketFactors(cocoa, tuesday, quiet())
	assert.Empty(t, got)
}

func TestSimulate_HarvestDrift(t *testing.T) {
	s := newSimulator(t)

	// With many seeds, the mean price during a long run inside harvest
	// months should sit below the mean outside them: the walk carries a
	// -0.02 drift in harvest months versus +0.01 elsewhere.
	var harvestMean, offSeasonMean float64
	const seeds = 60

	for seed := int64(0); seed < seeds; seed++ {
		// Cocoa harvests Sep-Dec; a 30-day run from Sep 15 stays inside.
		h, err := s.Simulate(context.Background(), "Cocoa", "Ashanti", 30,
			time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC),
			rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		harvestMean += h.Summary.MeanPrice

		// A 30-day run from Feb 1 stays fully outside.
		o, err := s.Simulate(context.Background(), "Cocoa", "Ashanti", 30,
			time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		offSeasonMean += o.Summary.MeanPrice
	}

	assert.Less(t, harvestMean/seeds, offSeasonMean/seeds)
}
