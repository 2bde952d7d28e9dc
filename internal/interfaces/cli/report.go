package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agriconnect/agrointel/internal/application/advisory"
	"github.com/agriconnect/agrointel/internal/domain/recommend"
)

// newReportCmd creates the "report" command: the full farm advisory
// report covering weather, yields, prices, ranking, and risks.
func newReportCmd(opts *RootOptions) *cobra.Command {
	var (
		farmerID    string
		region      string
		allocations []string
		experience  int
		investment  float64
		fullCatalog bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a full advisory report for a farm",
		Long: "Generate a farm report combining the weather forecast, per-crop yield\n" +
			"and price predictions, the crop ranking, risk assessment, and next actions.\n\n" +
			"Allocations are given as CROP=HECTARES pairs, e.g. --allocate Cocoa=2.5",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(opts)
			if err != nil {
				return err
			}

			allocs, err := parseAllocations(allocations)
			if err != nil {
				return err
			}

			totalHectares := 0.0
			for _, a := range allocs {
				totalHectares += a.Hectares
			}
			farmer := recommend.FarmerProfile{
				FarmSizeHectares:   totalHectares,
				ExperienceYears:    experience,
				InvestmentCapacity: investment,
			}
			for _, a := range allocs {
				farmer.PreviousCrops = append(farmer.PreviousCrops, a.CropID)
			}

			var reportOpts []advisory.ReportOption
			if fullCatalog {
				reportOpts = append(reportOpts, advisory.WithFullCatalogRanking())
			}
			report, err := svc.BuildFarmReport(cmd.Context(), farmerID, region, allocs, farmer, reportOpts...)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}

	cmd.Flags().StringVar(&farmerID, "farmer-id", "", "farmer identifier [REQUIRED]")
	cmd.Flags().StringVar(&region, "region", "", "region ID [REQUIRED]")
	cmd.Flags().StringSliceVar(&allocations, "allocate", nil, "crop allocation as CROP=HECTARES (repeatable) [REQUIRED]")
	cmd.Flags().IntVar(&experience, "experience", 0, "years of farming experience")
	cmd.Flags().Float64Var(&investment, "investment", 0, "available investment capacity")
	cmd.Flags().BoolVar(&fullCatalog, "full-catalog", false, "rank every catalog crop, not only the allocated ones")
	cmd.MarkFlagRequired("farmer-id")
	cmd.MarkFlagRequired("region")
	cmd.MarkFlagRequired("allocate")

	return cmd
}

// parseAllocations converts CROP=HECTARES pairs into allocations.
func parseAllocations(raw []string) ([]advisory.CropAllocation, error) {
	allocs := make([]advisory.CropAllocation, 0, len(raw))
	for _, pair := range raw {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid allocation %q (expected CROP=HECTARES)", pair)
		}
		hectares, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hectares in %q: %w", pair, err)
		}
		allocs = append(allocs, advisory.CropAllocation{
			CropID:   strings.TrimSpace(name),
			Hectares: hectares,
		})
	}
	return allocs, nil
}
