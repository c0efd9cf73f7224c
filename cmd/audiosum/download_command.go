package main

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"audiosum/internal/config"
	"audiosum/internal/download"
	"audiosum/internal/fileutil"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var artwork bool

	cmd := &cobra.Command{
		Use:   "download <url> [dest]",
		Short: "Download a URL to a file",
		Long: `Download a URL to a file.

Without a destination the file lands in the configured download directory
under a name derived from the URL. An existing destination is left
untouched. Interrupting the transfer removes the partial file before
exiting. With --artwork the downloaded image is resized and re-encoded per
the artwork configuration.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			downloader, err := ctx.downloader()
			if err != nil {
				return err
			}

			dest, err := resolveDownloadDest(cfg, args)
			if err != nil {
				return err
			}

			result, err := downloader.Fetch(cmd.Context(), args[0], dest, download.Options{
				Progress: cfg.Download.Progress,
				Artwork:  artwork,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprintf(out, "%s already exists, skipped\n", result.Path)
				return nil
			}
			fmt.Fprintf(out, "Downloaded %d bytes to %s\n", result.Bytes, result.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&artwork, "artwork", false, "Resize and re-encode the downloaded image per the artwork configuration")
	return cmd
}

func resolveDownloadDest(cfg *config.Config, args []string) (string, error) {
	if len(args) == 2 {
		return config.ExpandPath(args[1])
	}

	parsed, err := url.Parse(args[0])
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", args[0], err)
	}
	name := fileutil.SanitizeName(path.Base(parsed.Path))
	if name == "" || name == "." || name == "/" {
		name = "download"
	}
	dest := filepath.Join(cfg.Paths.DownloadDir, name)
	return fileutil.TrimFilenameBytes(dest, fileutil.DefaultNameByteLimit), nil
}
