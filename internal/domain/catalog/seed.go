package catalog

import "time"

// Default builds the catalog from the built-in Ghana reference tables.
// Five regions and six staple crops; figures follow the field data the
// engine was calibrated against.
func Default() (*Catalog, error) {
	return New(defaultRegions(), defaultCrops())
}

func defaultRegions() []Region {
	return []Region{
		{
			ID:              "Ashanti",
			Capital:         "Kumasi",
			Latitude:        6.6885,
			Longitude:       -1.6244,
			RainfallMm:      1400,
			TemperatureC:    26.5,
			SoilPH:          Range{Min: 5.5, Max: 6.5},
			ElevationM:      250,
			RainfallPattern: PatternBimodal,
			PrimaryCrops:    []string{"Cocoa", "Plantain", "Cassava", "Yam"},
		},
		{
			ID:              "Northern",
			Capital:         "Tamale",
			Latitude:        9.4034,
			Longitude:       -0.8424,
			RainfallMm:      950,
			TemperatureC:    28.2,
			SoilPH:          Range{Min: 6.0, Max: 7.5},
			ElevationM:      183,
			RainfallPattern: PatternUnimodal,
			PrimaryCrops:    []string{"Maize", "Millet", "Sorghum", "Groundnut", "Rice"},
		},
		{
			ID:              "Brong-Ahafo",
			Capital:         "Sunyani",
			Latitude:        7.3392,
			Longitude:       -2.3265,
			RainfallMm:      1250,
			TemperatureC:    26.8,
			SoilPH:          Range{Min: 5.8, Max: 6.8},
			ElevationM:      310,
			RainfallPattern: PatternBimodal,
			PrimaryCrops:    []string{"Cocoa", "Maize", "Yam", "Cassava"},
		},
		{
			ID:              "Western",
			Capital:         "Sekondi-Takoradi",
			Latitude:        4.8967,
			Longitude:       -1.7831,
			RainfallMm:      1800,
			TemperatureC:    26.1,
			SoilPH:          Range{Min: 5.2, Max: 6.2},
			ElevationM:      50,
			RainfallPattern: PatternBimodal,
			PrimaryCrops:    []string{"Cocoa", "Oil Palm", "Rubber", "Plantain"},
		},
		{
			ID:              "Eastern",
			Capital:         "Koforidua",
			Latitude:        6.0893,
			Longitude:       -0.2581,
			RainfallMm:      1350,
			TemperatureC:    26.3,
			SoilPH:          Range{Min: 5.5, Max: 6.5},
			ElevationM:      420,
			RainfallPattern: PatternBimodal,
			PrimaryCrops:    []string{"Cocoa", "Coffee", "Cassava", "Vegetables"},
		},
	}
}

func allMonths() []time.Month {
	return []time.Month{
		time.January, time.February, time.March, time.April,
		time.May, time.June, time.July, time.August,
		time.September, time.October, time.November, time.December,
	}
}

func defaultCrops() []CropProfile {
	return []CropProfile{
		{
			ID:             "Cocoa",
			ScientificName: "Theobroma cacao",
			Category:       CategoryTreeCrop,
			Optimal: OptimalConditions{
				RainfallMm:   Range{Min: 1200, Max: 2000},
				TemperatureC: Range{Min: 21, Max: 32},
				SoilPH:       Range{Min: 6.0, Max: 7.0},
				ElevationM:   Range{Min: 0, Max: 700},
				HumidityPct:  Range{Min: 75, Max: 95},
			},
			Growth: GrowthCharacteristics{
				MaturityMonths:        60,
				ProductiveYears:       30,
				BaseYieldKgPerHectare: 450,
				PlantingDensityPerHa:  1111,
				HarvestCyclesPerYear:  2,
				GrowthCycleDays:       180,
			},
			Market: MarketData{
				BasePricePerKg:    12.50,
				DemandStability:   TierHigh,
				ExportPotential:   GradeExcellent,
				LocalMarketAccess: GradeLimited,
				PriceVolatility:   0.15,
			},
			Resilience: ClimateResilience{
				DroughtTolerance:  TierMedium,
				FloodTolerance:    TierLow,
				HeatTolerance:     TierMedium,
				DiseaseResistance: TierMedium,
			},
			OptimalRainfallMm: 1500,
			SuitableRegions:   []string{"Ashanti", "Western", "Eastern", "Brong-Ahafo"},
			PlantingSeasons:   []Season{SeasonMajorRains},
			HarvestMonths:     []time.Month{time.September, time.October, time.November, time.December},
		},
		{
			ID:             "Maize",
			ScientificName: "Zea mays",
			Category:       CategoryCereal,
			Optimal: OptimalConditions{
				RainfallMm:   Range{Min: 500, Max: 1200},
				TemperatureC: Range{Min: 18, Max: 32},
				SoilPH:       Range{Min: 6.0, Max: 7.5},
				ElevationM:   Range{Min: 0, Max: 2000},
				HumidityPct:  Range{Min: 60, Max: 80},
			},
			Growth: GrowthCharacteristics{
				MaturityMonths:        4,
				ProductiveYears:       1,
				BaseYieldKgPerHectare: 2500,
				PlantingDensityPerHa:  53333,
				HarvestCyclesPerYear:  2,
				GrowthCycleDays:       120,
			},
			Market: MarketData{
				BasePricePerKg:    2.10,
				DemandStability:   TierHigh,
				ExportPotential:   GradeMedium,
				LocalMarketAccess: GradeExcellent,
				PriceVolatility:   0.25,
			},
			Resilience: ClimateResilience{
				DroughtTolerance:  TierMedium,
				FloodTolerance:    TierMedium,
				HeatTolerance:     TierHigh,
				DiseaseResistance: TierMedium,
			},
			OptimalRainfallMm: 800,
			SuitableRegions:   []string{"Northern", "Brong-Ahafo", "Ashanti", "Eastern", "Volta"},
			PlantingSeasons:   []Season{SeasonMajorRains, SeasonMinorRains},
			HarvestMonths:     []time.Month{time.July, time.August, time.November, time.December},
		},
		{
			ID:             "Cassava",
			ScientificName: "Manihot esculenta",
			Category:       CategoryRootTuber,
			Optimal: OptimalConditions{
				RainfallMm:   Range{Min: 800, Max: 1500},
				TemperatureC: Range{Min: 20, Max: 35},
				SoilPH:       Range{Min: 4.5, Max: 7.0},
				ElevationM:   Range{Min: 0, Max: 1500},
				HumidityPct:  Range{Min: 65, Max: 85},
			},
			Growth: GrowthCharacteristics{
				MaturityMonths:        12,
				ProductiveYears:       1,
				BaseYieldKgPerHectare: 12000,
				PlantingDensityPerHa:  10000,
				HarvestCyclesPerYear:  1,
				GrowthCycleDays:       365,
			},
			Market: MarketData{
				BasePricePerKg:    1.20,
				DemandStability:   TierVeryHigh,
				ExportPotential:   GradeMedium,
				LocalMarketAccess: GradeExcellent,
				PriceVolatility:   0.10,
			},
			Resilience: ClimateResilience{
				DroughtTolerance:  TierVeryHigh,
				FloodTolerance:    TierMedium,
				HeatTolerance:     TierVeryHigh,
				DiseaseResistance: TierHigh,
			},
			OptimalRainfallMm: 1000,
			SuitableRegions:   []string{"Ashanti", "Eastern", "Brong-Ahafo", "Northern", "Volta"},
			PlantingSeasons:   []Season{SeasonMajorRains, SeasonMinorRains},
			HarvestMonths:     allMonths(),
		},
		{
			ID:             "Rice",
			ScientificName: "Oryza sativa",
			Category:       CategoryCereal,
			Optimal: OptimalConditions{
				RainfallMm:   Range{Min: 1000, Max: 2000},
				TemperatureC: Range{Min: 20, Max: 35},
				SoilPH:       Range{Min: 5.5, Max: 7.0},
				ElevationM:   Range{Min: 0, Max: 1200},
				HumidityPct:  Range{Min: 80, Max: 95},
			},
			Growth: GrowthCharacteristics{
				MaturityMonths:        4,
				ProductiveYears:       1,
				BaseYieldKgPerHectare: 3800,
				PlantingDensityPerHa:  2500000,
				HarvestCyclesPerYear:  2,
				GrowthCycleDays:       120,
			},
			Market: MarketData{
				BasePricePerKg:    3.80,
				DemandStability:   TierVeryHigh,
				ExportPotential:   GradeHigh,
				LocalMarketAccess: GradeExcellent,
				PriceVolatility:   0.18,
			},
			Resilience: ClimateResilience{
				DroughtTolerance:  TierLow,
				FloodTolerance:    TierHigh,
				HeatTolerance:     TierMedium,
				DiseaseResistance: TierMedium,
			},
			OptimalRainfallMm: 1500,
			SuitableRegions:   []string{"Northern", "Upper East", "Upper West", "Volta"},
			PlantingSeasons:   []Season{SeasonMajorRains, SeasonMinorRains},
			HarvestMonths:     []time.Month{time.July, time.August, time.November, time.December},
		},
		{
			ID:             "Yam",
			ScientificName: "Dioscorea spp.",
			Category:       CategoryRootTuber,
			Optimal: OptimalConditions{
				RainfallMm:   Range{Min: 1000, Max: 1500},
				TemperatureC: Range{Min: 25, Max: 30},
				SoilPH:       Range{Min: 5.5, Max: 7.0},
				ElevationM:   Range{Min: 0, Max: 800},
				HumidityPct:  Range{Min: 70, Max: 85},
			},
			Growth: GrowthCharacteristics{
				MaturityMonths:        10,
				ProductiveYears:       1,
				BaseYieldKgPerHectare: 8000,
				PlantingDensityPerHa:  10000,
				HarvestCyclesPerYear:  1,
				GrowthCycleDays:       300,
			},
			Market: MarketData{
				BasePricePerKg:    3.50,
				DemandStability:   TierHigh,
				ExportPotential:   GradeMedium,
				LocalMarketAccess: GradeExcellent,
				PriceVolatility:   0.20,
			},
			Resilience: ClimateResilience{
				DroughtTolerance:  TierMedium,
				FloodTolerance:    TierLow,
				HeatTolerance:     TierMedium,
				DiseaseResistance: TierMedium,
			},
			OptimalRainfallMm: 1200,
			SuitableRegions:   []string{"Brong-Ahafo", "Ashanti", "Eastern", "Northern"},
			PlantingSeasons:   []Season{SeasonMajorRains},
			HarvestMonths:     []time.Month{time.November, time.December, time.January, time.February},
		},
		{
			ID:             "Plantain",
			ScientificName: "Musa × paradisiaca",
			Category:       CategoryFruitCrop,
			Optimal: OptimalConditions{
				RainfallMm:   Range{Min: 1200, Max: 2500},
				TemperatureC: Range{Min: 26, Max: 30},
				SoilPH:       Range{Min: 5.5, Max: 7.0},
				ElevationM:   Range{Min: 0, Max: 1000},
				HumidityPct:  Range{Min: 75, Max: 90},
			},
			Growth: GrowthCharacteristics{
				MaturityMonths:        12,
				ProductiveYears:       5,
				BaseYieldKgPerHectare: 15000,
				PlantingDensityPerHa:  1600,
				HarvestCyclesPerYear:  3,
				GrowthCycleDays:       365,
			},
			Market: MarketData{
				BasePricePerKg:    2.80,
				DemandStability:   TierHigh,
				ExportPotential:   GradeLow,
				LocalMarketAccess: GradeExcellent,
				PriceVolatility:   0.22,
			},
			Resilience: ClimateResilience{
				DroughtTolerance:  TierLow,
				FloodTolerance:    TierMedium,
				HeatTolerance:     TierMedium,
				DiseaseResistance: TierLow,
			},
			OptimalRainfallMm: 1800,
			SuitableRegions:   []string{"Ashanti", "Western", "Eastern", "Central"},
			PlantingSeasons:   []Season{SeasonMajorRains},
			HarvestMonths:     allMonths(),
		},
	}
}
