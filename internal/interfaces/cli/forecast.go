package cli

import (
	"github.com/spf13/cobra"
)

// newForecastCmd creates the "forecast" command: a 7-day weather
// simulation for a region.
func newForecastCmd(opts *RootOptions) *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Simulate the 7-day weather forecast for a region",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(opts)
			if err != nil {
				return err
			}
			asOf, err := asOfTime(opts)
			if err != nil {
				return err
			}

			obs, err := svc.SimulateWeather(cmd.Context(), region, asOf)
			if err != nil {
				return err
			}
			return printJSON(cmd, obs)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region ID [REQUIRED]")
	cmd.MarkFlagRequired("region")

	return cmd
}
