// Package recommend implements the multi-factor crop scorer and ranker:
// five bounded sub-scores per crop combined by fixed weights into an
// overall recommendation with financial projections.
package recommend

import (
	"fmt"
	"math"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/pkg/errors"
)

// Level is the qualitative recommendation tier derived from the overall
// score.
type Level string

const (
	LevelHighlyRecommended   Level = "Highly Recommended"   // ≥ 0.8
	LevelRecommended         Level = "Recommended"          // ≥ 0.6
	LevelConsiderWithCaution Level = "Consider with Caution" // ≥ 0.4
	LevelNotRecommended      Level = "Not Recommended"
)

// LevelFor maps an overall score onto its recommendation tier.
func LevelFor(score float64) Level {
	switch {
	case score >= 0.8:
		return LevelHighlyRecommended
	case score >= 0.6:
		return LevelRecommended
	case score >= 0.4:
		return LevelConsiderWithCaution
	default:
		return LevelNotRecommended
	}
}

// Weights are the fixed sub-score weights of the overall score.  They
// must sum to exactly 1.0.
type Weights struct {
	Climate       float64 `json:"climate" mapstructure:"climate"`
	Profitability float64 `json:"profitability" mapstructure:"profitability"`
	Risk          float64 `json:"risk" mapstructure:"risk"`
	Experience    float64 `json:"experience" mapstructure:"experience"`
	Timing        float64 `json:"timing" mapstructure:"timing"`
}

// DefaultWeights returns the calibrated production weights.
func DefaultWeights() Weights {
	return Weights{
		Climate:       0.30,
		Profitability: 0.25,
		Risk:          0.20,
		Experience:    0.15,
		Timing:        0.10,
	}
}

// Validate rejects negative weights and weight sets that do not sum to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Climate, w.Profitability, w.Risk, w.Experience, w.Timing} {
		if v < 0 {
			return errors.InvalidInput("scoring weights must be non-negative")
		}
	}
	sum := w.Climate + w.Profitability + w.Risk + w.Experience + w.Timing
	if math.Abs(sum-1.0) > 1e-9 {
		return errors.InvalidInput(fmt.Sprintf("scoring weights must sum to 1.0, got %.6f", sum))
	}
	return nil
}

// Calibration holds the normalization constants of the profitability and
// ROI formulas.  They are calibration inputs with no data-derived origin;
// override them rather than editing formulas.
type Calibration struct {
	// RevenueNormalizer divides the adjusted per-hectare revenue to map it
	// into [0,1].
	RevenueNormalizer float64 `json:"revenue_normalizer" mapstructure:"revenue_normalizer"`

	// InvestmentPerHectare is the assumed upfront cost per hectare used in
	// the ROI projection.
	InvestmentPerHectare float64 `json:"investment_per_hectare" mapstructure:"investment_per_hectare"`
}

// DefaultCalibration returns the production calibration constants.
func DefaultCalibration() Calibration {
	return Calibration{
		RevenueNormalizer:    50000,
		InvestmentPerHectare: 5000,
	}
}

// Validate rejects non-positive calibration constants.
func (c Calibration) Validate() error {
	if c.RevenueNormalizer <= 0 || c.InvestmentPerHectare <= 0 {
		return errors.InvalidInput("calibration constants must be positive")
	}
	return nil
}

// FarmerProfile carries the request-scoped farmer attributes consumed by
// the scorer.  It is supplied per call and never persisted here.
type FarmerProfile struct {
	FarmSizeHectares   float64      `json:"farm_size_hectares"`
	ExperienceYears    int          `json:"experience_years"`
	PreviousCrops      []string     `json:"previous_crops"`
	InvestmentCapacity float64      `json:"investment_capacity"`
	RiskTolerance      catalog.Tier `json:"risk_tolerance"` // informational, not scored
}

// Validate fails fast on out-of-range profile fields.
func (p FarmerProfile) Validate() error {
	if p.FarmSizeHectares <= 0 {
		return errors.New(errors.ErrCodeInvalidFarmProfile,
			fmt.Sprintf("farm size must be positive, got %.2f", p.FarmSizeHectares))
	}
	if p.ExperienceYears < 0 {
		return errors.New(errors.ErrCodeInvalidFarmProfile,
			fmt.Sprintf("experience years must be non-negative, got %d", p.ExperienceYears))
	}
	if p.RiskTolerance != "" && !p.RiskTolerance.IsValid() {
		return errors.New(errors.ErrCodeInvalidFarmProfile,
			fmt.Sprintf("unknown risk tolerance %q", p.RiskTolerance))
	}
	return nil
}

// SubScores are the five bounded inputs to the overall score, each in
// [0,1].
type SubScores struct {
	Climate       float64 `json:"climate"`
	Profitability float64 `json:"profitability"`
	Risk          float64 `json:"risk"`
	Experience    float64 `json:"experience"`
	Timing        float64 `json:"timing"`
}

// Projections are the financial estimates attached to a recommendation.
type Projections struct {
	ProjectedYieldKg   float64 `json:"projected_yield_kg"`
	ProjectedRevenue   float64 `json:"projected_revenue"`
	ROIPercent         float64 `json:"roi_percent"`
	BreakEvenMonths    int     `json:"break_even_months"`
	InvestmentRequired float64 `json:"investment_required"`
}

// Score is the full recommendation for one crop.
type Score struct {
	CropID      string           `json:"crop_id"`
	Category    catalog.Category `json:"category"`
	Overall     float64          `json:"overall"`
	Level       Level            `json:"level"`
	SubScores   SubScores        `json:"sub_scores"`
	Projections Projections      `json:"projections"`
	Tips        []string         `json:"tips"`
}
