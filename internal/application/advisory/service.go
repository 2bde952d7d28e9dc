// Package advisory is the application-layer facade over the decision
// engine: it wires the weather, yield, price, and recommendation
// components together, owns request-scoped randomness, and assembles farm
// reports.
package advisory

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/price"
	"github.com/agriconnect/agrointel/internal/domain/recommend"
	"github.com/agriconnect/agrointel/internal/domain/weather"
	"github.com/agriconnect/agrointel/internal/domain/yield"
	rediscache "github.com/agriconnect/agrointel/internal/infrastructure/cache/redis"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/prometheus"
)

// Seeder produces the base seed for one request's random generator.
type Seeder func() int64

// Service exposes the engine's five operations.
type Service struct {
	catalog *catalog.Catalog
	weather *weather.Simulator
	yield   *yield.Predictor
	price   *price.Simulator
	scorer  *recommend.Scorer
	logger  logging.Logger

	metrics     *prometheus.Metrics
	cache       rediscache.Cache
	cacheTTL    time.Duration
	horizonDays int

	seed Seeder
	now  func() time.Time

	scorerOpts []recommend.Option
}

// Option customizes the Service.
type Option func(*Service)

// WithMetrics attaches operation metrics.
func WithMetrics(m *prometheus.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache caches weather and price forecasts in Redis with the given
// TTL.
func WithCache(c rediscache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithPriceHorizon overrides the default price forecast horizon used
// when a caller does not specify one.
func WithPriceHorizon(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.horizonDays = days
		}
	}
}

// WithSeeder overrides the request seed source.  Tests inject a fixed
// seeder to make every operation reproducible.
func WithSeeder(seed Seeder) Option {
	return func(s *Service) { s.seed = seed }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithScorerOptions forwards options to the embedded scorer.
func WithScorerOptions(opts ...recommend.Option) Option {
	return func(s *Service) { s.scorerOpts = opts }
}

// New assembles a Service over the catalog.
func New(cat *catalog.Catalog, logger logging.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		catalog:     cat,
		logger:      logger.Named("advisory"),
		seed:        func() int64 { return time.Now().UnixNano() },
		now:         time.Now,
		horizonDays: price.DefaultHorizonDays,
	}
	for _, opt := range opts {
		opt(s)
	}

	scorer, err := recommend.NewScorer(cat, logger, s.scorerOpts...)
	if err != nil {
		return nil, err
	}
	s.weather = weather.NewSimulator(cat, logger)
	s.yield = yield.NewPredictor(cat, logger)
	s.price = price.NewSimulator(cat, logger)
	s.scorer = scorer
	return s, nil
}

// rng builds the request-scoped generator.
func (s *Service) rng() *rand.Rand {
	return rand.New(rand.NewSource(s.seed()))
}

// deriveSeed folds a crop id into the base seed so parallel per-crop work
// stays deterministic regardless of scheduling order.
func deriveSeed(base int64, cropID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(cropID))
	return base ^ int64(h.Sum64())
}

// SimulateWeather produces a 7-day forecast for the region.  A zero asOf
// means now.  Forecasts are cached per region and day when a cache is
// configured.
func (s *Service) SimulateWeather(ctx context.Context, regionID string, asOf time.Time) (obs *weather.ObservationSet, err error) {
	start := s.now()
	defer func() { s.observe(prometheus.OpSimulateWeather, start, err) }()

	if asOf.IsZero() {
		asOf = s.now()
	}

	if s.cache != nil {
		key := "weather:" + regionID + ":" + asOf.Format("2006-01-02")
		var cached weather.ObservationSet
		cacheErr := s.cache.GetOrSet(ctx, key, &cached, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
			return s.weather.Simulate(ctx, regionID, asOf, s.rng())
		})
		if cacheErr != nil {
			err = cacheErr
			return nil, err
		}
		return &cached, nil
	}

	obs, err = s.weather.Simulate(ctx, regionID, asOf, s.rng())
	return obs, err
}

// PredictYield estimates the crop's yield on a farm of the given size.
// obs is optional current weather.
func (s *Service) PredictYield(ctx context.Context, cropID, regionID string, farmSizeHectares float64, obs *weather.ObservationSet) (pred *yield.Prediction, err error) {
	start := s.now()
	defer func() { s.observe(prometheus.OpPredictYield, start, err) }()

	pred, err = s.yield.Predict(ctx, cropID, regionID, farmSizeHectares, obs, s.now(), s.rng())
	return pred, err
}

// PredictPrice forecasts the crop's price path.  A zero horizon selects
// the 30-day default.  Paths are cached per crop, horizon, and day when a
// cache is configured, so every caller sees the same daily forecast.
func (s *Service) PredictPrice(ctx context.Context, cropID, regionID string, horizonDays int) (pred *price.Prediction, err error) {
	start := s.now()
	defer func() { s.observe(prometheus.OpPredictPrice, start, err) }()

	// Zero means unset.  Negative values fall through to the simulator,
	// which rejects them.
	if horizonDays == 0 {
		horizonDays = s.horizonDays
	}

	if s.cache != nil && horizonDays > 0 {
		key := fmt.Sprintf("price:%s:%s:%d:%s", cropID, regionID, horizonDays, s.now().Format("2006-01-02"))
		var cached price.Prediction
		cacheErr := s.cache.GetOrSet(ctx, key, &cached, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
			return s.price.Simulate(ctx, cropID, regionID, horizonDays, s.now(), s.rng())
		})
		if cacheErr != nil {
			err = cacheErr
			return nil, err
		}
		return &cached, nil
	}

	pred, err = s.price.Simulate(ctx, cropID, regionID, horizonDays, s.now(), s.rng())
	return pred, err
}

// RecommendCrops ranks the candidate crops (or the full catalog when the
// list is empty) for the farmer in the region.  Current weather stress
// flags feed the climate sub-score.
func (s *Service) RecommendCrops(ctx context.Context, regionID string, farmer recommend.FarmerProfile, candidateCropIDs []string) (scores []recommend.Score, err error) {
	start := s.now()
	defer func() { s.observe(prometheus.OpRecommendCrops, start, err) }()

	at := s.now()
	obs, err := s.weather.Simulate(ctx, regionID, at, s.rng())
	if err != nil {
		return nil, err
	}
	flags := obs.Flags()

	scores, err = s.scorer.Rank(ctx, regionID, farmer, candidateCropIDs, &flags, at)
	return scores, err
}

func (s *Service) observe(op string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveEngineOp(op, start, err)
	}
}
