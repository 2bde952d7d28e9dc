package advisory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agriconnect/agrointel/internal/domain/price"
	"github.com/agriconnect/agrointel/internal/domain/recommend"
	"github.com/agriconnect/agrointel/internal/domain/weather"
	"github.com/agriconnect/agrointel/internal/domain/yield"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/prometheus"
	"github.com/agriconnect/agrointel/pkg/errors"
)

// CropAllocation is one crop's share of the farm.
type CropAllocation struct {
	CropID   string  `json:"crop_id"`
	Hectares float64 `json:"hectares"`
}

// CropOutlook bundles a crop's yield and price forecasts with the revenue
// they imply.
type CropOutlook struct {
	CropID           string            `json:"crop_id"`
	Yield            *yield.Prediction `json:"yield"`
	Price            *price.Prediction `json:"price"`
	PotentialRevenue float64           `json:"potential_revenue"`
}

// Advice is one categorized farming recommendation.
type Advice struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Timeline string `json:"timeline"`
}

// Risk is one identified farming risk.
type Risk struct {
	Type        string `json:"type"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// FarmReport is the complete advisory output for one farm.  It is built
// once and never mutated afterwards.
type FarmReport struct {
	ID               string    `json:"id"`
	FarmerID         string    `json:"farmer_id"`
	RegionID         string    `json:"region_id"`
	FarmSizeHectares float64   `json:"farm_size_hectares"`
	GeneratedAt      time.Time `json:"generated_at"`

	Weather *weather.ObservationSet `json:"weather"`
	Crops   []CropOutlook           `json:"crops"`
	Ranking []recommend.Score       `json:"ranking"`

	TotalPotentialRevenue float64  `json:"total_potential_revenue"`
	Recommendations       []Advice `json:"recommendations"`
	Risks                 []Risk   `json:"risks"`
	NextActions           []string `json:"next_actions"`
}

// ReportOption customizes a single report invocation.
type ReportOption func(*reportSettings)

type reportSettings struct {
	fullCatalogRanking bool
}

// WithFullCatalogRanking ranks every crop in the catalog instead of only
// the farmer's allocated crops, so the report can suggest alternatives.
func WithFullCatalogRanking() ReportOption {
	return func(rs *reportSettings) { rs.fullCatalogRanking = true }
}

// BuildFarmReport runs the full pipeline for a farmer's crop set: one
// weather forecast, then yield and price forecasts per crop in parallel,
// then a ranking over the same crops (or the full catalog).  Any unknown
// crop or region aborts the whole report.
func (s *Service) BuildFarmReport(
	ctx context.Context,
	farmerID, regionID string,
	allocations []CropAllocation,
	farmer recommend.FarmerProfile,
	opts ...ReportOption,
) (report *FarmReport, err error) {
	var settings reportSettings
	for _, opt := range opts {
		opt(&settings)
	}

	start := s.now()
	defer func() { s.observe(prometheus.OpBuildFarmReport, start, err) }()

	if err = farmer.Validate(); err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		err = errors.InvalidInput("at least one crop allocation is required")
		return nil, err
	}
	for _, a := range allocations {
		if a.Hectares <= 0 {
			err = errors.New(errors.ErrCodeInvalidFarmProfile,
				fmt.Sprintf("allocation for %s must be positive, got %.2f hectares", a.CropID, a.Hectares))
			return nil, err
		}
	}

	at := s.now()
	baseSeed := s.seed()

	obs, err := s.weather.Simulate(ctx, regionID, at, rand.New(rand.NewSource(baseSeed)))
	if err != nil {
		return nil, err
	}

	// Per-crop forecasts are independent; compute them in parallel with
	// seeds derived from the crop id so the output does not depend on
	// goroutine scheduling.
	outlooks := make([]CropOutlook, len(allocations))
	g, gctx := errgroup.WithContext(ctx)
	for i, alloc := range allocations {
		i, alloc := i, alloc
		g.Go(func() error {
			rng := rand.New(rand.NewSource(deriveSeed(baseSeed, alloc.CropID)))

			yp, err := s.yield.Predict(gctx, alloc.CropID, regionID, alloc.Hectares, obs, at, rng)
			if err != nil {
				return err
			}
			pp, err := s.price.Simulate(gctx, alloc.CropID, regionID, s.horizonDays, at, rng)
			if err != nil {
				return err
			}
			outlooks[i] = CropOutlook{
				CropID:           alloc.CropID,
				Yield:            yp,
				Price:            pp,
				PotentialRevenue: yp.TotalKg * pp.Summary.MeanPrice,
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	var cropIDs []string
	if !settings.fullCatalogRanking {
		cropIDs = make([]string, len(allocations))
		for i, a := range allocations {
			cropIDs[i] = a.CropID
		}
	}
	flags := obs.Flags()
	ranking, err := s.scorer.Rank(ctx, regionID, farmer, cropIDs, &flags, at)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, o := range outlooks {
		total += o.PotentialRevenue
	}

	report = &FarmReport{
		ID:                    uuid.NewString(),
		FarmerID:              farmerID,
		RegionID:              regionID,
		FarmSizeHectares:      farmer.FarmSizeHectares,
		GeneratedAt:           at,
		Weather:               obs,
		Crops:                 outlooks,
		Ranking:               ranking,
		TotalPotentialRevenue: total,
		Recommendations:       s.farmingRecommendations(obs, outlooks, at),
		Risks:                 s.assessRisks(obs, outlooks),
		NextActions:           nextActions(obs, at),
	}

	if s.metrics != nil {
		s.metrics.ReportsGeneratedTotal.Inc()
		s.metrics.ReportCrops.Observe(float64(len(outlooks)))
	}
	s.logger.Info("farm report built",
		logging.String("report_id", report.ID),
		logging.String("farmer_id", farmerID),
		logging.String("region", regionID),
		logging.Int("crops", len(outlooks)),
		logging.Float64("total_potential_revenue", total),
	)
	return report, nil
}

// farmingRecommendations derives categorized advice from the near-term
// forecast, the harvest calendar, and a standing market reminder.
func (s *Service) farmingRecommendations(obs *weather.ObservationSet, outlooks []CropOutlook, at time.Time) []Advice {
	var out []Advice

	n := 3
	if len(obs.Days) < n {
		n = len(obs.Days)
	}
	rainSum := 0.0
	for _, d := range obs.Days[:n] {
		rainSum += d.RainProbabilityPct
	}
	upcomingRain := rainSum / float64(n)

	if upcomingRain > 70 {
		out = append(out, Advice{
			Category: "weather",
			Priority: "high",
			Action:   "Prepare for heavy rainfall - ensure proper drainage",
			Timeline: "Next 3 days",
		})
	} else if upcomingRain < 20 {
		out = append(out, Advice{
			Category: "weather",
			Priority: "medium",
			Action:   "Consider irrigation systems for water-sensitive crops",
			Timeline: "This week",
		})
	}

	for _, o := range outlooks {
		crop, err := s.catalog.Crop(o.CropID)
		if err != nil {
			continue
		}
		if crop.HarvestsIn(at.Month()) {
			out = append(out, Advice{
				Category: "harvest",
				Priority: "high",
				Action:   fmt.Sprintf("Begin %s harvest operations", crop.ID),
				Timeline: "This month",
			})
		}
	}

	out = append(out, Advice{
		Category: "market",
		Priority: "medium",
		Action:   "Monitor market prices for optimal selling timing",
		Timeline: "Ongoing",
	})
	return out
}

// assessRisks flags temperature stress from the forecast and price
// volatility per crop.
func (s *Service) assessRisks(obs *weather.ObservationSet, outlooks []CropOutlook) []Risk {
	var risks []Risk

	for _, d := range obs.Days {
		if d.TempMaxC > 35 {
			risks = append(risks, Risk{
				Type:        "weather",
				Level:       "medium",
				Description: "High temperature stress risk for crops",
			})
			break
		}
	}

	for _, o := range outlooks {
		crop, err := s.catalog.Crop(o.CropID)
		if err != nil {
			continue
		}
		if crop.Market.PriceVolatility > 0.2 {
			risks = append(risks, Risk{
				Type:        "market",
				Level:       "medium",
				Description: fmt.Sprintf("%s price volatility risk", crop.ID),
			})
		}
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Type != risks[j].Type {
			return risks[i].Type < risks[j].Type
		}
		return risks[i].Description < risks[j].Description
	})
	return risks
}

// nextActions suggests up to three immediate actions from tomorrow's rain
// probability and the farming calendar.
func nextActions(obs *weather.ObservationSet, at time.Time) []string {
	var actions []string

	if len(obs.Days) > 1 && obs.Days[1].RainProbabilityPct > 80 {
		actions = append(actions, "Check and clear drainage channels")
	}

	switch at.Month() {
	case time.March, time.April:
		actions = append(actions, "Prepare land for major season planting")
	case time.August, time.September:
		actions = append(actions, "Plan minor season crop selection")
	}

	actions = append(actions,
		"Update farm records and transaction data",
		"Review input supply levels for the coming weeks")

	if len(actions) > 3 {
		actions = actions[:3]
	}
	return actions
}
