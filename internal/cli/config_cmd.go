package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/pbapi/internal/config"
	"github.com/aidanlsb/pbapi/internal/exitcode"
	"github.com/aidanlsb/pbapi/internal/ui"
)

func newConfigCommand(app *App) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the pbapi configuration file",
		Args:  usageArgs(cobra.NoArgs),
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(app.stdout(), config.ResolvePath(configPath))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented config file if none exists",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath(configPath)
			created, err := config.CreateDefault(path)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintln(app.stdout(), ui.Success("Created "+path))
			} else {
				fmt.Fprintln(app.stdout(), ui.Hint("Config already exists at "+path))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long:  "Change one setting. Keys: " + strings.Join(config.Keys(), ", ") + ".",
		Args:  usageArgs(cobra.ExactArgs(2)),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ResolvePath(configPath)
			if err := config.SetIn(path, args[0], args[1]); err != nil {
				return exitcode.Usagef("%v", err)
			}
			fmt.Fprintf(app.stdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath(configPath)
			cfg, err := config.LoadPath(path)
			if err != nil {
				return exitcode.Usagef("%v", err)
			}
			tbl := ui.NewTable(2)
			tbl.AddRow("config", path)
			tbl.AddRow("endpoint", cfg.Endpoint)
			tbl.AddRow("credentials_file", cfg.CredentialsFile)
			tbl.AddRow("timeout", cfg.Timeout.String())
			tbl.AddRow("shell.poll_interval", cfg.Shell.PollInterval.String())
			tbl.AddRow("shell.poll_timeout", cfg.Shell.PollTimeout.String())
			tbl.AddRow("shell.history_file", cfg.HistoryPath(config.StateDir()))
			tbl.AddRow("log.file", cfg.Log.File)
			tbl.AddRow("log.level", cfg.Log.Level)
			tbl.AddRow("ui.accent", cfg.UI.Accent)
			fmt.Fprint(app.stdout(), tbl.String())
			return nil
		},
	})
	return cmd
}
