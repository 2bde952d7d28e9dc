package cli

import (
	"github.com/spf13/cobra"

	"github.com/agriconnect/agrointel/internal/domain/weather"
)

// newYieldCmd creates the "yield" command: the harvest estimate for a
// crop on a farm of the given size.
func newYieldCmd(opts *RootOptions) *cobra.Command {
	var (
		crop        string
		region      string
		farmSize    float64
		withWeather bool
	)

	cmd := &cobra.Command{
		Use:   "yield",
		Short: "Predict the harvest for a crop in a region",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(opts)
			if err != nil {
				return err
			}

			var obs *weather.ObservationSet
			if withWeather {
				asOf, err := asOfTime(opts)
				if err != nil {
					return err
				}
				obs, err = svc.SimulateWeather(cmd.Context(), region, asOf)
				if err != nil {
					return err
				}
			}

			pred, err := svc.PredictYield(cmd.Context(), crop, region, farmSize, obs)
			if err != nil {
				return err
			}
			return printJSON(cmd, pred)
		},
	}

	cmd.Flags().StringVar(&crop, "crop", "", "crop ID [REQUIRED]")
	cmd.Flags().StringVar(&region, "region", "", "region ID [REQUIRED]")
	cmd.Flags().Float64Var(&farmSize, "farm-size", 1.0, "farm size in hectares")
	cmd.Flags().BoolVar(&withWeather, "with-weather", false, "feed a fresh forecast into the weather factor")
	cmd.MarkFlagRequired("crop")
	cmd.MarkFlagRequired("region")

	return cmd
}

// newPriceCmd creates the "price" command: the market price walk for a
// crop over the forecast horizon.
func newPriceCmd(opts *RootOptions) *cobra.Command {
	var (
		crop    string
		region  string
		horizon int
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Forecast market prices for a crop",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(opts)
			if err != nil {
				return err
			}

			pred, err := svc.PredictPrice(cmd.Context(), crop, region, horizon)
			if err != nil {
				return err
			}
			return printJSON(cmd, pred)
		},
	}

	cmd.Flags().StringVar(&crop, "crop", "", "crop ID [REQUIRED]")
	cmd.Flags().StringVar(&region, "region", "", "region ID [REQUIRED]")
	cmd.Flags().IntVar(&horizon, "horizon-days", 0, "forecast horizon in days (default 30)")
	cmd.MarkFlagRequired("crop")
	cmd.MarkFlagRequired("region")

	return cmd
}
