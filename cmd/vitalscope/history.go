package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalscope/vitalscope/pkg/surface"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the daily trend rollups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			points := st.History()
			if outputFmt == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(points)
			}

			renderer := &surface.TerminalRenderer{}
			return renderer.RenderHistory(os.Stdout, points)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: nearest .vitalscope/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}
