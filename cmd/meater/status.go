package main

import (
	"fmt"

	"meater/internal/config"
	"meater/internal/ui"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Fetch the probe once and print its readings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		raw, _ := cmd.Flags().GetBool("raw")

		p, err := buildPipeline(cmd.Context(), s, false)
		if err != nil {
			return err
		}
		defer p.Close()

		if _, err := p.poller.Poll(cmd.Context()); err != nil {
			return fmt.Errorf("failed to read probe: %w", err)
		}

		md := ui.StatusMarkdown(p.channel.Latest())
		if raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderMarkdown(md))
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("raw", false, "Print Markdown instead of rendering it")
	rootCmd.AddCommand(statusCmd)
}
