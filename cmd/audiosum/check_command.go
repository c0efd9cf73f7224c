package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"audiosum/internal/tags"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file-or-dir>...",
		Short: "Report MD5 metadata for audio files",
		Long: `Report MD5 metadata for audio files.

File arguments are inspected directly; directories are walked recursively
for audio files (` + "`.flac .mp3 .m4a .ogg .opus .wav`" + `). Each file gets a
report block listing the container type, any MD5 stored as a tag, the FLAC
decoded-content signature, and the common descriptive tags, followed by a
summary table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			files, missing := tags.CollectAudioFiles(args)
			for _, path := range missing {
				fmt.Fprintf(out, "No such file or directory: %s\n", path)
			}
			if len(files) == 0 {
				return errors.New("no audio files to check")
			}

			titler := cases.Title(language.English)
			var withMD5 int
			for _, path := range files {
				report, err := tags.Inspect(path)

				fmt.Fprintf(out, "File: %s\n", report.Path)
				if err != nil {
					fmt.Fprintf(out, "  Error: %v\n", err)
				}
				if report.FileType != "" {
					fmt.Fprintf(out, "  Type: %s\n", report.FileType)
				}
				if report.MD5Tag != "" {
					fmt.Fprintf(out, "  MD5 tag (%s): %s\n", report.MD5TagKey, report.MD5Tag)
				} else if err == nil {
					fmt.Fprintln(out, "  MD5 tag: not found")
				}
				if report.HasStreamInfo {
					if report.StreamMD5Set {
						fmt.Fprintf(out, "  MD5 of unencoded content: %s\n", report.StreamMD5)
					} else {
						fmt.Fprintln(out, "  MD5 of unencoded content: not set")
					}
				}
				for _, field := range report.Common {
					fmt.Fprintf(out, "  %s: %s\n", titler.String(field.Key), field.Value)
				}
				fmt.Fprintln(out)

				if report.Found() {
					withMD5++
				}
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Checked", "With MD5", "Without MD5"},
				[][]string{{
					strconv.Itoa(len(files)),
					strconv.Itoa(withMD5),
					strconv.Itoa(len(files) - withMD5),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
