package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newEntriesCmd() *cobra.Command {
	var (
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List stored analysis entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			entries := st.Entries()
			if outputFmt == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Println("No entries.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCORE\tWHEN\tURL")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					e.ID, e.OverallScore, e.Timestamp.Local().Format("2006-01-02 15:04"), e.URL)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: nearest .vitalscope/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	cmd.AddCommand(newRemoveCmd())

	return cmd
}

func newRemoveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			// Removing an unknown id is a silent no-op by design.
			st.RemoveEntry(cmd.Context(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: nearest .vitalscope/config.yaml)")

	return cmd
}

func newClearCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored entries (historical data is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			st.ClearEntries(cmd.Context())
			fmt.Println("Entries cleared.")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: nearest .vitalscope/config.yaml)")

	return cmd
}
