package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiosum/internal/imagediff"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "compare <image1> <image2>",
		Short:       "Print the RMS difference between two images",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := imagediff.Compare(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "RMS difference: %.2f\n", score)
			return nil
		},
	}
}
