package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"meater/internal/config"
	"meater/internal/telemetry"

	"github.com/spf13/cobra"
)

var bbqCmd = &cobra.Command{
	Use:   "bbq",
	Short: "Monitor the BBQ in a full-screen dashboard",
	Long: `Polls Meater Cloud and shows the probe's temperatures, cook state and
timers in a full-screen dashboard. Logs go to the log file while the
dashboard owns the terminal.`,
	Args: cobra.NoArgs,
	RunE: runBBQ,
}

func init() {
	rootCmd.AddCommand(bbqCmd)
}

func runBBQ(cmd *cobra.Command, args []string) error {
	s := config.Current()
	telemetry.InitLogger(s.Verbose, s.DefaultLogFile(), true)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, s, true)
	if err != nil {
		return err
	}
	defer p.Close()

	recv, err := p.channel.Register()
	if err != nil {
		return fmt.Errorf("failed to attach dashboard: %w", err)
	}

	wait := p.start(ctx)

	err = startBBQDashboardFunc(ctx, recv)
	// Leaving the dashboard stops the poller too.
	stop()
	wait()
	return err
}
