package main

import (
	"github.com/spf13/cobra"

	"chitieu/internal/chart"
)

// options are the flags shared by every subcommand.
type options struct {
	size   float64
	stroke float64
	json   bool
}

func (o *options) geometry() chart.Geometry {
	return chart.Geometry{Size: o.size, StrokeWidth: o.stroke}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "donut",
		Short:        "Lay out category amounts on a donut chart",
		Long:         `Compute the arc length and offset of every category on a ring of the given size and stroke width.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().Float64VarP(&opts.size, "size", "s", 260, "outer diameter of the ring")
	cmd.PersistentFlags().Float64VarP(&opts.stroke, "stroke", "w", 26, "stroke width of the ring")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of CSV")

	cmd.AddCommand(newArcsCmd(opts), newDemoCmd(opts))
	return cmd
}
