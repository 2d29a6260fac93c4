package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/flingdev/fling/internal/catalog"
	"github.com/flingdev/fling/internal/config"
	"github.com/flingdev/fling/internal/history"
	"github.com/flingdev/fling/internal/launch"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the application catalog in pre-ranking order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		apps := catalog.Build(cfg.CatalogOptions())

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCOMMAND\tTERMINAL")
		for _, app := range apps {
			terminal := ""
			if app.Terminal {
				terminal = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", app.Name, app.Exec, terminal)
		}
		return w.Flush()
	},
}

var launchCmd = &cobra.Command{
	Use:   "launch <name>",
	Short: "Launch an application by exact display name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		apps := catalog.Build(cfg.CatalogOptions())

		name := args[0]
		var target *catalog.App
		for i := range apps {
			if apps[i].Name == name {
				target = &apps[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no application named %q; see `fling list`", name)
		}

		ledgerPath, err := history.DefaultPath()
		if err != nil {
			return err
		}
		dispatcher := &launch.Dispatcher{
			Terminal: cfg.General.Terminal,
			History:  history.New(ledgerPath),
		}
		return dispatcher.Launch(target)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show aggregated launch history, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledgerPath, err := history.DefaultPath()
		if err != nil {
			return err
		}
		latest, err := history.New(ledgerPath).Load()
		if err != nil {
			return err
		}

		type row struct {
			name string
			ts   uint64
		}
		rows := make([]row, 0, len(latest))
		for name, ts := range latest {
			rows = append(rows, row{name, ts})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].ts != rows[j].ts {
				return rows[i].ts > rows[j].ts
			}
			return rows[i].name < rows[j].name
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LAST LAUNCH\tNAME")
		for _, r := range rows {
			when := time.Unix(int64(r.ts), 0).Format("2006-01-02 15:04")
			fmt.Fprintf(w, "%s\t%s\n", when, r.name)
		}
		return w.Flush()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the launch history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledgerPath, err := history.DefaultPath()
		if err != nil {
			return err
		}
		if err := history.New(ledgerPath).Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}
