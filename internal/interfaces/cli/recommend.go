package cli

import (
	"github.com/spf13/cobra"

	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/recommend"
)

// newRecommendCmd creates the "recommend" command: the ranked crop
// scores for a farmer profile in a region.
func newRecommendCmd(opts *RootOptions) *cobra.Command {
	var (
		region        string
		farmSize      float64
		experience    int
		previousCrops []string
		investment    float64
		riskTolerance string
		candidates    []string
		top           int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank crops for a farmer profile in a region",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(opts)
			if err != nil {
				return err
			}

			farmer := recommend.FarmerProfile{
				FarmSizeHectares:   farmSize,
				ExperienceYears:    experience,
				PreviousCrops:      previousCrops,
				InvestmentCapacity: investment,
				RiskTolerance:      catalog.Tier(riskTolerance),
			}

			scores, err := svc.RecommendCrops(cmd.Context(), region, farmer, candidates)
			if err != nil {
				return err
			}
			if top > 0 && top < len(scores) {
				scores = scores[:top]
			}
			return printJSON(cmd, scores)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region ID [REQUIRED]")
	cmd.Flags().Float64Var(&farmSize, "farm-size", 1.0, "farm size in hectares")
	cmd.Flags().IntVar(&experience, "experience", 0, "years of farming experience")
	cmd.Flags().StringSliceVar(&previousCrops, "previous-crops", nil, "crops grown before (comma-separated)")
	cmd.Flags().Float64Var(&investment, "investment", 0, "available investment capacity")
	cmd.Flags().StringVar(&riskTolerance, "risk-tolerance", "", "risk tolerance (low, medium, high)")
	cmd.Flags().StringSliceVar(&candidates, "candidates", nil, "candidate crop IDs (default: full catalog)")
	cmd.Flags().IntVar(&top, "top", 0, "limit output to the top N crops")
	cmd.MarkFlagRequired("region")

	return cmd
}
