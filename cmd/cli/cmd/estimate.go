package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tripplanner/internal/domain"
)

func newEstimateCmd(o *options) *cobra.Command {
	var f tripFlags
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the total cost of a trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := domain.Estimate(f.days, domain.Tier(f.tier), domain.Region(f.region), f.monthOr(cmd, o.now))
			if err != nil {
				return err
			}
			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), est)
			}
			return printEstimate(cmd.OutOrStdout(), est)
		},
	}
	f.register(cmd)
	return cmd
}

func printEstimate(out io.Writer, est domain.CostEstimate) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	c := est.Components
	fmt.Fprintf(w, "Tier\t%s\n", est.Tier)
	fmt.Fprintf(w, "  Lodging\t%s/day\n", domain.FormatAmount(c.Lodging))
	fmt.Fprintf(w, "  Food\t%s/day\n", domain.FormatAmount(c.Food))
	fmt.Fprintf(w, "  Local transport\t%s/day\n", domain.FormatAmount(c.Transport))
	fmt.Fprintf(w, "  Attractions\t%s/day\n", domain.FormatAmount(c.Attractions))
	fmt.Fprintf(w, "  Miscellaneous\t%s/day\n", domain.FormatAmount(c.Misc))
	fmt.Fprintf(w, "Daily base\t%s\n", domain.FormatAmount(est.DailyBase))
	region := fmt.Sprintf("%s (x%s)", est.Region, est.RegionFactor)
	if est.RegionFallback {
		region += " unlisted, neutral factor"
	}
	fmt.Fprintf(w, "Region\t%s\n", region)
	fmt.Fprintf(w, "Season\t%s, month %d (x%s)\n", est.Season, est.Month, est.SeasonFactor)
	fmt.Fprintf(w, "Per day\t%s\n", domain.FormatAmount(est.DailyCost))
	fmt.Fprintf(w, "Days\t%d\n", est.Days)
	fmt.Fprintf(w, "Total\t%s\n", domain.FormatAmount(est.Total))
	return w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
