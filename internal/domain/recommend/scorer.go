package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/weather"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
)

// Scorer computes crop recommendations.  It is fully deterministic: the
// same inputs and reference time always yield the same scores.
type Scorer struct {
	catalog     *catalog.Catalog
	weights     Weights
	calibration Calibration
	logger      logging.Logger
}

// Option customizes a Scorer.
type Option func(*Scorer)

// WithWeights overrides the default sub-score weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) { s.weights = w }
}

// WithCalibration overrides the default calibration constants.
func WithCalibration(c Calibration) Option {
	return func(s *Scorer) { s.calibration = c }
}

// NewScorer constructs a Scorer over the given catalog.
func NewScorer(cat *catalog.Catalog, logger logging.Logger, opts ...Option) (*Scorer, error) {
	s := &Scorer{
		catalog:     cat,
		weights:     DefaultWeights(),
		calibration: DefaultCalibration(),
		logger:      logger.Named("recommend"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	if err := s.calibration.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Score evaluates one crop for the farmer in the region.  flags is
// optional current-weather context; when nil the climate sub-score carries
// no weather penalty.  at anchors the seasonal-timing sub-score.
func (s *Scorer) Score(
	ctx context.Context,
	cropID, regionID string,
	farmer FarmerProfile,
	flags *weather.ConditionFlags,
	at time.Time,
) (*Score, error) {
	if err := farmer.Validate(); err != nil {
		return nil, err
	}
	crop, err := s.catalog.Crop(cropID)
	if err != nil {
		return nil, err
	}
	region, err := s.catalog.Region(regionID)
	if err != nil {
		return nil, err
	}
	return s.score(crop, region, farmer, flags, at), nil
}

// Rank scores every candidate crop and sorts descending by overall score,
// ties broken by crop id ascending.  A nil or empty candidate list ranks
// the full catalog.
func (s *Scorer) Rank(
	ctx context.Context,
	regionID string,
	farmer FarmerProfile,
	candidateCropIDs []string,
	flags *weather.ConditionFlags,
	at time.Time,
) ([]Score, error) {
	if err := farmer.Validate(); err != nil {
		return nil, err
	}
	region, err := s.catalog.Region(regionID)
	if err != nil {
		return nil, err
	}

	ids := candidateCropIDs
	if len(ids) == 0 {
		ids = s.catalog.CropIDs()
	}

	scores := make([]Score, 0, len(ids))
	for _, id := range ids {
		crop, err := s.catalog.Crop(id)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *s.score(crop, region, farmer, flags, at))
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Overall != scores[j].Overall {
			return scores[i].Overall > scores[j].Overall
		}
		return scores[i].CropID < scores[j].CropID
	})

	s.logger.Debug("crops ranked",
		logging.String("region", region.ID),
		logging.Int("candidates", len(scores)),
	)
	return scores, nil
}

func (s *Scorer) score(
	crop catalog.CropProfile,
	region catalog.Region,
	farmer FarmerProfile,
	flags *weather.ConditionFlags,
	at time.Time,
) *Score {
	sub := SubScores{
		Climate:       s.climateScore(crop, region, flags),
		Profitability: s.profitabilityScore(crop, farmer),
		Risk:          s.riskScore(crop, farmer),
		Experience:    s.experienceScore(crop, farmer),
		Timing:        s.timingScore(crop, at.Month()),
	}

	overall := clamp01(
		sub.Climate*s.weights.Climate +
			sub.Profitability*s.weights.Profitability +
			sub.Risk*s.weights.Risk +
			sub.Experience*s.weights.Experience +
			sub.Timing*s.weights.Timing,
	)

	projYield := crop.Growth.BaseYieldKgPerHectare * farmer.FarmSizeHectares
	projRevenue := projYield * crop.Market.BasePricePerKg * sub.Climate
	investment := farmer.FarmSizeHectares * s.calibration.InvestmentPerHectare

	return &Score{
		CropID:    crop.ID,
		Category:  crop.Category,
		Overall:   overall,
		Level:     LevelFor(overall),
		SubScores: sub,
		Projections: Projections{
			ProjectedYieldKg:   projYield,
			ProjectedRevenue:   projRevenue,
			ROIPercent:         (projRevenue/investment - 1) * 100,
			BreakEvenMonths:    crop.Growth.MaturityMonths,
			InvestmentRequired: investment,
		},
		Tips: tips(crop.ID, region.ID, overall),
	}
}

// climateScore measures the fit between the region's climate and the
// crop's optimal ranges: a fixed-weight blend of four range-match scores,
// scaled by the regional-suitability bonus and any current-weather
// resilience penalties.
func (s *Scorer) climateScore(crop catalog.CropProfile, region catalog.Region, flags *weather.ConditionFlags) float64 {
	opt := crop.Optimal

	blend := rangeScore(region.RainfallMm, opt.RainfallMm)*0.35 +
		rangeScore(region.TemperatureC, opt.TemperatureC)*0.30 +
		rangeScore(region.SoilPH.Mid(), opt.SoilPH)*0.20 +
		rangeScore(region.ElevationM, opt.ElevationM)*0.15

	if crop.SuitableFor(region.ID) {
		blend *= 1.2
	} else {
		blend *= 0.8
	}

	if flags != nil {
		blend *= weatherPenalty(crop.Resilience, *flags)
	}
	return clamp01(blend)
}

// rangeScore is 1.0 inside the optimal interval and decays linearly with
// the relative distance from the violated boundary.
func rangeScore(v float64, r catalog.Range) float64 {
	switch {
	case r.Contains(v):
		return 1.0
	case v < r.Min:
		return clamp01(1.0 - (r.Min-v)/r.Min)
	default:
		return clamp01(1.0 - (v-r.Max)/r.Max)
	}
}

// weatherPenalty accumulates resilience-keyed multipliers for each active
// stress flag.  High and very-high tolerance tiers take no penalty.
func weatherPenalty(res catalog.ClimateResilience, flags weather.ConditionFlags) float64 {
	penalty := 1.0
	if flags.ExtremeHeat {
		switch res.HeatTolerance {
		case catalog.TierLow:
			penalty *= 0.6
		case catalog.TierMedium:
			penalty *= 0.8
		}
	}
	if flags.DroughtRisk {
		switch res.DroughtTolerance {
		case catalog.TierLow:
			penalty *= 0.5
		case catalog.TierMedium:
			penalty *= 0.7
		}
	}
	if flags.FloodRisk {
		switch res.FloodTolerance {
		case catalog.TierLow:
			penalty *= 0.4
		case catalog.TierMedium:
			penalty *= 0.7
		}
	}
	return penalty
}

// profitabilityScore normalizes the crop's adjusted per-hectare revenue
// into [0,1] via the revenue-normalizer calibration constant.
func (s *Scorer) profitabilityScore(crop catalog.CropProfile, farmer FarmerProfile) float64 {
	revenue := crop.Growth.BaseYieldKgPerHectare * crop.Market.BasePricePerKg

	stability := map[catalog.Tier]float64{
		catalog.TierVeryHigh: 1.2,
		catalog.TierHigh:     1.1,
		catalog.TierMedium:   1.0,
		catalog.TierLow:      0.8,
	}[crop.Market.DemandStability]

	export := map[catalog.MarketGrade]float64{
		catalog.GradeExcellent: 1.15,
		catalog.GradeHigh:      1.10,
		catalog.GradeMedium:    1.05,
		catalog.GradeLow:       1.0,
	}[crop.Market.ExportPotential]

	local := map[catalog.MarketGrade]float64{
		catalog.GradeExcellent: 1.10,
		catalog.GradeHigh:      1.05,
		catalog.GradeMedium:    1.0,
		catalog.GradeLimited:   0.9,
	}[crop.Market.LocalMarketAccess]

	volatilityPenalty := 1.0 - crop.Market.PriceVolatility*0.5

	// Economies of scale, capped so an arbitrarily large farm cannot push
	// the factor past 1.2.
	sizeFactor := math.Min(1.2, 1.0+(farmer.FarmSizeHectares-1.0)*0.05)

	adjusted := revenue * stability * volatilityPenalty * export * local * sizeFactor
	return clamp01(adjusted / s.calibration.RevenueNormalizer)
}

// riskScore inverts an accumulated penalty: climate resilience gaps,
// price volatility, maturity duration, and farmer inexperience each add
// risk.
func (s *Scorer) riskScore(crop catalog.CropProfile, farmer FarmerProfile) float64 {
	risk := 0.0

	switch crop.Resilience.DroughtTolerance {
	case catalog.TierLow:
		risk += 0.25
	case catalog.TierMedium:
		risk += 0.10
	}
	switch crop.Resilience.DiseaseResistance {
	case catalog.TierLow:
		risk += 0.20
	case catalog.TierMedium:
		risk += 0.10
	}

	risk += crop.Market.PriceVolatility * 0.3
	risk += math.Min(0.3, float64(crop.Growth.MaturityMonths)/100)
	risk += math.Max(0, float64(5-farmer.ExperienceYears)*0.05)

	return clamp01(1.0 - risk)
}

// experienceScore rewards years of farming plus familiarity with the
// crop: growing this exact crop before earns a 1.5x bonus, otherwise any
// previous crop of the same category earns 1.3x.  The bonuses do not
// stack.
func (s *Scorer) experienceScore(crop catalog.CropProfile, farmer FarmerProfile) float64 {
	score := math.Min(1.0, float64(farmer.ExperienceYears)/10)

	grownExact := false
	grownCategory := false
	for _, prev := range farmer.PreviousCrops {
		if prev == crop.ID {
			grownExact = true
			break
		}
		if p, err := s.catalog.Crop(prev); err == nil && p.Category == crop.Category {
			grownCategory = true
		}
	}

	switch {
	case grownExact:
		score *= 1.5
	case grownCategory:
		score *= 1.3
	}
	return clamp01(score)
}

// timingScore is 1.0 when the month falls in any declared planting
// season, 0.3 when the crop offers multiple seasons but none match, and
// 0.2 when its single season does not match.
func (s *Scorer) timingScore(crop catalog.CropProfile, month time.Month) float64 {
	if crop.PlantableIn(month) {
		return 1.0
	}
	if len(crop.PlantingSeasons) > 1 {
		return 0.3
	}
	return 0.2
}

// tips returns up to three textual recommendations: a score-tier pair
// plus crop-specific advice for the crops with a fixed playbook.
func tips(cropID, regionID string, overall float64) []string {
	var out []string
	switch {
	case overall >= 0.7:
		out = append(out,
			fmt.Sprintf("Excellent choice for %s region", regionID),
			"Consider expanding cultivation area")
	case overall >= 0.5:
		out = append(out,
			"Good option with proper management",
			"Monitor weather conditions closely")
	default:
		out = append(out,
			"High risk - consider alternatives",
			"Requires significant investment in risk mitigation")
	}

	switch cropID {
	case "Cocoa":
		out = append(out,
			"Ensure shade trees for optimal growth",
			"Focus on disease prevention programs")
	case "Maize":
		out = append(out,
			"Apply fertilizer at proper growth stages",
			"Ensure adequate storage facilities")
	case "Rice":
		out = append(out,
			"Ensure reliable water supply",
			"Consider mechanized farming for efficiency")
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
