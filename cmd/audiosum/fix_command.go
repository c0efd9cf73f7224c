package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFixCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fix <file.flac>...",
		Short: "Repair missing FLAC decoded-content MD5 signatures",
		Long: `Repair missing FLAC decoded-content MD5 signatures.

A file whose STREAMINFO signature is already set is left untouched.
Otherwise the audio is re-encoded through ffmpeg to recover the signature
the encoder computes, and that value is written into the original file.
Nothing is written when any step fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.checksumService()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var failed int
			for _, path := range args {
				sum, err := service.Repair(cmd.Context(), path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", path, sum)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be repaired", failed, len(args))
			}
			return nil
		},
	}
}
