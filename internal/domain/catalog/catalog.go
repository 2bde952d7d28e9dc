package catalog

import (
	"fmt"
	"sort"

	"github.com/agriconnect/agrointel/pkg/errors"
)

// Catalog is the read-only lookup table for regions and crop profiles.
// Construct it once with New (or Default) and share it freely; all methods
// are safe for concurrent use because the underlying maps are never written
// after construction.
type Catalog struct {
	regions map[string]Region
	crops   map[string]CropProfile
	cropIDs []string // sorted, for deterministic iteration
}

// New validates the supplied reference data and builds a Catalog.
// Validation fails fast on the first malformed entry: duplicate or empty
// identifiers, inverted intervals, volatility outside [0,1], and
// unrecognised tier/grade/season tags are all rejected rather than coerced.
func New(regions []Region, crops []CropProfile) (*Catalog, error) {
	c := &Catalog{
		regions: make(map[string]Region, len(regions)),
		crops:   make(map[string]CropProfile, len(crops)),
	}

	for _, r := range regions {
		if err := validateRegion(r); err != nil {
			return nil, err
		}
		if _, dup := c.regions[r.ID]; dup {
			return nil, errors.New(errors.ErrCodeCatalogInvalid,
				fmt.Sprintf("duplicate region id %q", r.ID))
		}
		c.regions[r.ID] = r
	}

	for _, cp := range crops {
		if err := validateCrop(cp); err != nil {
			return nil, err
		}
		if _, dup := c.crops[cp.ID]; dup {
			return nil, errors.New(errors.ErrCodeCatalogInvalid,
				fmt.Sprintf("duplicate crop id %q", cp.ID))
		}
		c.crops[cp.ID] = cp
		c.cropIDs = append(c.cropIDs, cp.ID)
	}
	sort.Strings(c.cropIDs)

	return c, nil
}

// Region returns the region with the given id or a RegionNotFound error.
func (c *Catalog) Region(id string) (Region, error) {
	r, ok := c.regions[id]
	if !ok {
		return Region{}, errors.RegionNotFound(id)
	}
	return r, nil
}

// Crop returns the crop profile with the given id or a CropNotFound error.
func (c *Catalog) Crop(id string) (CropProfile, error) {
	cp, ok := c.crops[id]
	if !ok {
		return CropProfile{}, errors.CropNotFound(id)
	}
	return cp, nil
}

// Crops returns all crop profiles ordered by id.
func (c *Catalog) Crops() []CropProfile {
	out := make([]CropProfile, 0, len(c.cropIDs))
	for _, id := range c.cropIDs {
		out = append(out, c.crops[id])
	}
	return out
}

// CropIDs returns all crop identifiers in ascending order.
func (c *Catalog) CropIDs() []string {
	out := make([]string, len(c.cropIDs))
	copy(out, c.cropIDs)
	return out
}

// Regions returns all regions ordered by id.
func (c *Catalog) Regions() []Region {
	ids := make([]string, 0, len(c.regions))
	for id := range c.regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Region, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.regions[id])
	}
	return out
}

func validateRegion(r Region) error {
	if r.ID == "" {
		return errors.New(errors.ErrCodeCatalogInvalid, "region id must not be empty")
	}
	if r.SoilPH.Min > r.SoilPH.Max {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("region %q: inverted soil pH range", r.ID))
	}
	switch r.RainfallPattern {
	case PatternBimodal, PatternUnimodal:
	default:
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("region %q: unknown rainfall pattern %q", r.ID, r.RainfallPattern))
	}
	return nil
}

func validateCrop(cp CropProfile) error {
	if cp.ID == "" {
		return errors.New(errors.ErrCodeCatalogInvalid, "crop id must not be empty")
	}
	intervals := []struct {
		name string
		r    Range
	}{
		{"rainfall", cp.Optimal.RainfallMm},
		{"temperature", cp.Optimal.TemperatureC},
		{"soil pH", cp.Optimal.SoilPH},
		{"elevation", cp.Optimal.ElevationM},
		{"humidity", cp.Optimal.HumidityPct},
	}
	for _, iv := range intervals {
		if iv.r.Min > iv.r.Max {
			return errors.New(errors.ErrCodeCatalogInvalid,
				fmt.Sprintf("crop %q: inverted optimal %s range", cp.ID, iv.name))
		}
	}
	if cp.Market.PriceVolatility < 0 || cp.Market.PriceVolatility > 1 {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: price volatility %.2f outside [0,1]", cp.ID, cp.Market.PriceVolatility))
	}
	if !cp.Market.DemandStability.IsValid() {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: unknown demand-stability tier %q", cp.ID, cp.Market.DemandStability))
	}
	if !cp.Market.ExportPotential.IsValid() {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: unknown export-potential grade %q", cp.ID, cp.Market.ExportPotential))
	}
	if !cp.Market.LocalMarketAccess.IsValid() {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: unknown local-market grade %q", cp.ID, cp.Market.LocalMarketAccess))
	}
	for _, tier := range []Tier{
		cp.Resilience.DroughtTolerance,
		cp.Resilience.FloodTolerance,
		cp.Resilience.HeatTolerance,
		cp.Resilience.DiseaseResistance,
	} {
		if !tier.IsValid() {
			return errors.New(errors.ErrCodeCatalogInvalid,
				fmt.Sprintf("crop %q: unknown resilience tier %q", cp.ID, tier))
		}
	}
	if len(cp.PlantingSeasons) == 0 {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: at least one planting season required", cp.ID))
	}
	for _, s := range cp.PlantingSeasons {
		if !s.IsValid() {
			return errors.New(errors.ErrCodeCatalogInvalid,
				fmt.Sprintf("crop %q: unknown planting season %q", cp.ID, s))
		}
	}
	if len(cp.HarvestMonths) == 0 {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: at least one harvest month required", cp.ID))
	}
	if cp.Growth.BaseYieldKgPerHectare <= 0 {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: base yield must be positive", cp.ID))
	}
	if cp.Market.BasePricePerKg <= 0 {
		return errors.New(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("crop %q: base price must be positive", cp.ID))
	}
	return nil
}
