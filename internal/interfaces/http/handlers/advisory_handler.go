package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agrointel/internal/application/advisory"
	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/recommend"
	"github.com/agriconnect/agrointel/internal/domain/weather"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
)

// AdvisoryHandler serves the decision-engine endpoints.
type AdvisoryHandler struct {
	service *advisory.Service
	logger  logging.Logger
}

// NewAdvisoryHandler constructs the handler.
func NewAdvisoryHandler(service *advisory.Service, logger logging.Logger) *AdvisoryHandler {
	return &AdvisoryHandler{service: service, logger: logger.Named("http")}
}

// RegisterRoutes mounts the advisory API under the given group.
func (h *AdvisoryHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/regions/:region/weather", h.SimulateWeather)
	api.GET("/regions/:region/crops/:crop/yield", h.PredictYield)
	api.GET("/regions/:region/crops/:crop/price", h.PredictPrice)
	api.POST("/regions/:region/recommendations", h.RecommendCrops)
	api.POST("/reports", h.BuildFarmReport)
}

// SimulateWeather returns the 7-day forecast for a region.  An optional
// as_of query parameter (YYYY-MM-DD) anchors the forecast window.
func (h *AdvisoryHandler) SimulateWeather(c *gin.Context) {
	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, "as_of must be formatted YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	obs, err := h.service.SimulateWeather(c.Request.Context(), c.Param("region"), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, obs)
}

// PredictYield returns the yield estimate for a crop on a farm of
// farm_size hectares.  When with_weather=true a fresh forecast feeds the
// weather factor.
func (h *AdvisoryHandler) PredictYield(c *gin.Context) {
	farmSize, err := strconv.ParseFloat(c.DefaultQuery("farm_size", "1"), 64)
	if err != nil {
		badRequest(c, "farm_size must be a number")
		return
	}

	region := c.Param("region")
	var obs *weather.ObservationSet
	if c.Query("with_weather") == "true" {
		simulated, err := h.service.SimulateWeather(c.Request.Context(), region, time.Time{})
		if err != nil {
			respondError(c, err)
			return
		}
		obs = simulated
	}

	pred, err := h.service.PredictYield(c.Request.Context(), c.Param("crop"), region, farmSize, obs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pred)
}

// PredictPrice returns the price forecast for a crop.  horizon_days
// defaults to 30.
func (h *AdvisoryHandler) PredictPrice(c *gin.Context) {
	horizon := 0
	if raw := c.Query("horizon_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "horizon_days must be an integer")
			return
		}
		horizon = parsed
	}

	pred, err := h.service.PredictPrice(c.Request.Context(), c.Param("crop"), c.Param("region"), horizon)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pred)
}

// recommendRequest is the RecommendCrops payload.
type recommendRequest struct {
	Farmer     recommend.FarmerProfile `json:"farmer"`
	Candidates []string                `json:"candidates"`
}

// RecommendCrops ranks candidate crops (or the full catalog) for the
// farmer in the region.
func (h *AdvisoryHandler) RecommendCrops(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	scores, err := h.service.RecommendCrops(c.Request.Context(), c.Param("region"), req.Farmer, req.Candidates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": c.Param("region"), "recommendations": scores})
}

// reportRequest is the BuildFarmReport payload.
type reportRequest struct {
	FarmerID           string                    `json:"farmer_id" binding:"required"`
	RegionID           string                    `json:"region_id" binding:"required"`
	Allocations        []advisory.CropAllocation `json:"allocations" binding:"required"`
	Farmer             recommend.FarmerProfile   `json:"farmer"`
	FullCatalogRanking bool                      `json:"full_catalog_ranking"`
}

// BuildFarmReport runs the full advisory pipeline for a farm.
func (h *AdvisoryHandler) BuildFarmReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	var opts []advisory.ReportOption
	if req.FullCatalogRanking {
		opts = append(opts, advisory.WithFullCatalogRanking())
	}
	report, err := h.service.BuildFarmReport(c.Request.Context(), req.FarmerID, req.RegionID, req.Allocations, req.Farmer, opts...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CatalogHandler serves the static reference data.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// RegisterRoutes mounts the catalog API under the given group.
func (h *CatalogHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/crops", h.ListCrops)
	api.GET("/crops/:crop", h.GetCrop)
	api.GET("/regions", h.ListRegions)
	api.GET("/regions/:region", h.GetRegion)
}

func (h *CatalogHandler) ListCrops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"crops": h.catalog.Crops()})
}

func (h *CatalogHandler) GetCrop(c *gin.Context) {
	crop, err := h.catalog.Crop(c.Param("crop"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crop)
}

func (h *CatalogHandler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": h.catalog.Regions()})
}

func (h *CatalogHandler) GetRegion(c *gin.Context) {
	region, err := h.catalog.Region(c.Param("region"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, region)
}
