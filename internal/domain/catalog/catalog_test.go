package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/agrointel/pkg/errors"
)

func TestDefault_SeedDataIsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Len(t, c.Regions(), 5)
	assert.Len(t, c.Crops(), 6)
}

func TestCatalog_RegionLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	r, err := c.Region("Ashanti")
	require.NoError(t, err)
	assert.Equal(t, "Kumasi", r.Capital)
	assert.Equal(t, 1400.0, r.RainfallMm)
	assert.Equal(t, PatternBimodal, r.RainfallPattern)

	_, err = c.Region("Atlantis")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.ErrCodeRegionNotFound, errors.GetCode(err))
}

func TestCatalog_CropLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	cocoa, err := c.Crop("Cocoa")
	require.NoError(t, err)
	assert.Equal(t, CategoryTreeCrop, cocoa.Category)
	assert.Equal(t, 450.0, cocoa.Growth.BaseYieldKgPerHectare)
	assert.True(t, cocoa.SuitableFor("Ashanti"))
	assert.False(t, cocoa.SuitableFor("Northern"))
	assert.True(t, cocoa.HarvestsIn(time.October))
	assert.False(t, cocoa.HarvestsIn(time.March))

	_, err = c.Crop("Durian")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestCatalog_CropsSortedByID(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	ids := c.CropIDs()
	require.Len(t, ids, 6)
	assert.Equal(t, []string{"Cassava", "Cocoa", "Maize", "Plantain", "Rice", "Yam"}, ids)
}

func TestNew_RejectsMalformedData(t *testing.T) {
	validCrop := defaultCrops()[0]
	validRegion := defaultRegions()[0]

	tests := []struct {
		name    string
		mutate  func(*Region, *CropProfile)
		message string
	}{
		{
			name:    "empty region id",
			mutate:  func(r *Region, _ *CropProfile) { r.ID = "" },
			message: "region id",
		},
		{
			name:    "unknown rainfall pattern",
			mutate:  func(r *Region, _ *CropProfile) { r.RainfallPattern = "trimodal" },
			message: "rainfall pattern",
		},
		{
			name:    "inverted pH range",
			mutate:  func(r *Region, _ *CropProfile) { r.SoilPH = Range{Min: 7, Max: 5} },
			message: "soil pH",
		},
		{
			name:    "volatility above one",
			mutate:  func(_ *Region, cp *CropProfile) { cp.Market.PriceVolatility = 1.5 },
			message: "volatility",
		},
		{
			name:    "unknown resilience tier",
			mutate:  func(_ *Region, cp *CropProfile) { cp.Resilience.DroughtTolerance = "extreme" },
			message: "resilience tier",
		},
		{
			name:    "unknown planting season",
			mutate:  func(_ *Region, cp *CropProfile) { cp.PlantingSeasons = []Season{"monsoon"} },
			message: "planting season",
		},
		{
			name:    "unknown market grade",
			mutate:  func(_ *Region, cp *CropProfile) { cp.Market.ExportPotential = "stellar" },
			message: "grade",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegion
			cp := validCrop
			tt.mutate(&r, &cp)
			_, err := New([]Region{r}, []CropProfile{cp})
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	r := defaultRegions()[0]
	cp := defaultCrops()[0]

	_, err := New([]Region{r, r}, []CropProfile{cp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate region")

	_, err = New([]Region{r}, []CropProfile{cp, cp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate crop")
}

func TestSeason_Contains(t *testing.T) {
	tests := []struct {
		season Season
		month  time.Month
		want   bool
	}{
		{SeasonMajorRains, time.April, true},
		{SeasonMajorRains, time.July, true},
		{SeasonMajorRains, time.August, false},
		{SeasonMinorRains, time.September, true},
		{SeasonMinorRains, time.November, true},
		{SeasonMinorRains, time.December, false},
		{SeasonDry, time.December, true},
		{SeasonDry, time.March, true},
		{SeasonDry, time.April, false},
		{SeasonYearRound, time.June, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.season.Contains(tt.month),
			"%s in %s", tt.season, tt.month)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 1200, Max: 2000}
	assert.True(t, r.Contains(1200))
	assert.True(t, r.Contains(2000))
	assert.True(t, r.Contains(1500))
	assert.False(t, r.Contains(1199.9))
	assert.False(t, r.Contains(2000.1))
	assert.Equal(t, 1600.0, r.Mid())
}
