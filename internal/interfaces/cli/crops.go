package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newCropsCmd creates the "crops" command: the supported crops and
// regions as a quick reference.
func newCropsCmd(opts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "crops",
		Short: "List the supported crops and regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := newService(opts)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, map[string]interface{}{
					"crops":   cat.Crops(),
					"regions": cat.Regions(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Crops")
			fmt.Fprintln(out, "-----")
			for _, c := range cat.Crops() {
				months := make([]string, 0, len(c.HarvestMonths))
				for _, m := range c.HarvestMonths {
					months = append(months, m.String()[:3])
				}
				fmt.Fprintf(out, "%-10s %-12s base %6.2f GHS/kg  harvest %s\n",
					c.ID, c.Category, c.Market.BasePricePerKg, strings.Join(months, ","))
			}

			fmt.Fprintln(out, "\nRegions")
			fmt.Fprintln(out, "-------")
			for _, r := range cat.Regions() {
				fmt.Fprintf(out, "%-14s capital %s\n", r.ID, r.Capital)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
