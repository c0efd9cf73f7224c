package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiosum/internal/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and write the temporary settings blob",
	}

	settingsCmd.AddCommand(newSettingsSessionCommand(ctx))
	settingsCmd.AddCommand(newSettingsGetCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))

	return settingsCmd
}

func (c *commandContext) settingsStore() (*settings.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return settings.New(cfg.Paths.SettingsPath, logger), nil
}

func newSettingsSessionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "session <module> <name>",
		Short: "Create and select a module session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.settingsStore()
			if err != nil {
				return err
			}
			if err := store.SelectSession(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected session %s for module %s\n", args[1], args[0])
			return nil
		},
	}
}

func newSettingsGetCommand(ctx *commandContext) *cobra.Command {
	var key string
	var global bool

	cmd := &cobra.Command{
		Use:   "get <module> <root-key>",
		Short: "Read a value from the settings blob",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.settingsStore()
			if err != nil {
				return err
			}
			value, err := store.Read(args[0], args[1], key, global)
			if err != nil {
				return err
			}
			if value == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "(unset)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Nested key under the root key")
	cmd.Flags().BoolVar(&global, "global", false, "Address the module's global scope instead of the active session")
	return cmd
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	var key string
	var global bool

	cmd := &cobra.Command{
		Use:   "set <module> <root-key> <value>",
		Short: "Write a value into the settings blob",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.settingsStore()
			if err != nil {
				return err
			}
			return store.Write(args[0], args[1], key, args[2], global)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Nested key under the root key")
	cmd.Flags().BoolVar(&global, "global", false, "Address the module's global scope instead of the active session")
	return cmd
}
