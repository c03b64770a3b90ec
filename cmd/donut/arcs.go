package main

import (
	"github.com/spf13/cobra"
)

func newArcsCmd(opts *options) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "arcs",
		Short: "Print the arcs for a category file",
		Long:  `Read categories from a CSV (id,name,amount,color,icon) or YAML file and print one arc per category, in file order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := readCategories(input)
			if err != nil {
				return err
			}
			l, err := newLayout(opts.geometry(), cats)
			if err != nil {
				return err
			}
			return l.write(cmd.OutOrStdout(), opts.json)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "category file (.csv, .yaml or .yml)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
