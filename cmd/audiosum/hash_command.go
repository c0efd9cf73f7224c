package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiosum/internal/checksum"
)

func newHashCommand(ctx *commandContext) *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:         "hash <path-or-text>",
		Short:       "Print the MD5 of a file, or of a literal string with --text",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if text {
				sum, err := checksum.HashString(args[0], "md5")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, sum)
				return nil
			}

			sum, err := checksum.FileMD5(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s  %s\n", sum, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "Hash the argument itself instead of a file")
	return cmd
}
