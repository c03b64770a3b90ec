package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chitieu/internal/core"
	"chitieu/internal/ledger/memory"
	"chitieu/internal/screen"
	"chitieu/internal/services"
)

func newDemoCmd(opts *options) *cobra.Command {
	var (
		seed   string
		income bool
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print this week's arcs for the built-in dataset",
		Long:  `Build the in-memory ledger (or the given seed file), summarise the current week and print its arcs.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := core.Today()
			store, err := memory.NewFromSeed(seed, today)
			if err != nil {
				return err
			}
			st := screen.NewState(today)
			if income {
				st = st.WithKind(core.Income)
			}
			sum, err := services.NewSummaryService(store, nil).Summary(cmd.Context(), st)
			if err != nil {
				return err
			}
			l, err := newLayout(opts.geometry(), sum.Items)
			if err != nil {
				return err
			}
			if !opts.json {
				fmt.Fprintf(cmd.ErrOrStderr(), "Tổng cộng %s · %s %s: %s\n",
					sum.TotalAll, sum.Kind.Label(), sum.RangeLabel, sum.TotalThisPeriod)
			}
			return l.write(cmd.OutOrStdout(), opts.json)
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "YAML seed file instead of the built-in dataset")
	cmd.Flags().BoolVar(&income, "income", false, "show income instead of expenses")
	return cmd
}
