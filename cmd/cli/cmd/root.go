// Package cmd provides the tripplanner command-line interface.
package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tripplanner/internal/adapters/llm"
	"tripplanner/internal/adapters/observability"
	"tripplanner/internal/domain"
	"tripplanner/internal/shared"
)

type options struct {
	newGenerator func(shared.Config) (domain.ItineraryGenerator, error)
	now          func() time.Time
	cfg          shared.Config
	asJSON       bool
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd(&options{newGenerator: llm.FromConfig, now: time.Now}).Execute()
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "tripplanner",
		Short: "Estimate trip costs and generate AI itineraries",
		Long: `tripplanner prices a trip from fixed per-day rates with region and
season multipliers, and asks a text-generation service for an itinerary.

Examples:
  tripplanner estimate --days 5 --tier Budget --region "Southeast Asia"
  tripplanner plan --destination Paris --interests "museums, food" --tier Luxury --region "Western Europe"
  tripplanner catalog --json`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.cfg = shared.Load()
			// stdout carries results, logs go to stderr
			log.Logger = observability.NewLoggerTo(os.Stderr, o.cfg.AppEnv)
			o.cfg.LogWarnings(log.Logger)
		},
	}
	root.PersistentFlags().BoolVar(&o.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(newEstimateCmd(o))
	root.AddCommand(newPlanCmd(o))
	root.AddCommand(newCatalogCmd(o))
	return root
}

type tripFlags struct {
	days   int
	tier   string
	region string
	month  int
}

func (f *tripFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.days, "days", "d", domain.DefaultDays, "trip duration in days (1-14)")
	cmd.Flags().StringVarP(&f.tier, "tier", "t", string(domain.TierMidRange), "budget tier: Budget, Mid-Range or Luxury")
	cmd.Flags().StringVarP(&f.region, "region", "r", string(domain.Regions()[0]), "region; unlisted regions use factor 1.0")
	cmd.Flags().IntVarP(&f.month, "month", "m", 0, "calendar month 1-12 (default: current month)")
}

// monthOr binds the month at the boundary: the flag if given, else the clock.
// Any explicit value goes to the estimator, which rejects months outside 1..12.
func (f *tripFlags) monthOr(cmd *cobra.Command, now func() time.Time) int {
	if cmd.Flags().Changed("month") {
		return f.month
	}
	return int(now().Month())
}
