package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tripplanner/internal/domain"
)

type catalogEntry struct {
	Name   string `json:"name"`
	Factor string `json:"factor,omitempty"`
	Daily  string `json:"daily_base,omitempty"`
}

func newCatalogCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List tiers, regions and seasons with their rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tiers, regions, seasons []catalogEntry
			for _, t := range domain.Tiers() {
				c, _ := t.DailyCosts()
				tiers = append(tiers, catalogEntry{Name: string(t), Daily: c.Sum().StringFixed(2)})
			}
			for _, r := range domain.Regions() {
				f, _ := r.Factor()
				regions = append(regions, catalogEntry{Name: string(r), Factor: f.String()})
			}
			for _, s := range domain.Seasons() {
				seasons = append(seasons, catalogEntry{Name: string(s), Factor: s.Factor().String()})
			}

			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string][]catalogEntry{
					"tiers": tiers, "regions": regions, "seasons": seasons,
				})
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tDAILY BASE")
			for _, t := range tiers {
				fmt.Fprintf(w, "%s\t$%s\n", t.Name, t.Daily)
			}
			fmt.Fprintln(w, "\nREGION\tFACTOR")
			for _, r := range regions {
				fmt.Fprintf(w, "%s\tx%s\n", r.Name, r.Factor)
			}
			fmt.Fprintln(w, "\nSEASON\tFACTOR")
			for _, s := range seasons {
				fmt.Fprintf(w, "%s\tx%s\n", s.Name, s.Factor)
			}
			return w.Flush()
		},
	}
}
