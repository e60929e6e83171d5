package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tripplanner/internal/app"
	"tripplanner/internal/domain"
)

// ErrItineraryFailed makes the process exit non-zero after printing the estimate.
var ErrItineraryFailed = errors.New("itinerary generation failed")

type planOutput struct {
	ID        string              `json:"id"`
	Estimate  domain.CostEstimate `json:"estimate"`
	Itinerary string              `json:"itinerary,omitempty"`
	Failure   string              `json:"itinerary_error,omitempty"`
}

func newPlanCmd(o *options) *cobra.Command {
	var (
		f           tripFlags
		destination string
		interests   string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Estimate a trip and generate its itinerary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := o.newGenerator(o.cfg)
			if err != nil {
				return err
			}
			planner := app.NewPlannerService(gen, o.now)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if o.cfg.RequestTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, o.cfg.RequestTimeout)
				defer cancel()
			}

			req := domain.TripRequest{
				Destination: destination,
				Interests:   interests,
				Days:        f.days,
				Tier:        domain.Tier(f.tier),
				Region:      domain.Region(f.region),
			}
			p, err := planner.Plan(ctx, req, f.monthOr(cmd, o.now))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if o.asJSON {
				po := planOutput{ID: p.ID, Estimate: p.Estimate, Itinerary: p.Itinerary}
				if p.Failure != nil {
					po.Failure = p.Failure.UserMessage()
				}
				if err := writeJSON(out, po); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "📍 %s (%s)\n📆 %d Days | 💰 Estimated Cost: %s\n\n",
					req.Destination, req.Region, req.Days, domain.FormatAmount(p.Estimate.Total))
				if p.Failure == nil {
					fmt.Fprintln(out, p.Itinerary)
				}
			}
			if p.Failure != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), p.Failure.UserMessage())
				return fmt.Errorf("%w: %v", ErrItineraryFailed, p.Failure)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&destination, "destination", "", "destination city (e.g. Paris)")
	cmd.Flags().StringVar(&interests, "interests", "", "free-text interests (e.g. \"Museums, Food, Beaches\")")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}
