package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meater/internal/config"
	"meater/internal/display"
	"meater/internal/telemetry"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print every new reading as a line, without the dashboard",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Int("count", 0, "Exit after this many readings (0 runs until interrupted)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	s := config.Current()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, s, true)
	if err != nil {
		return err
	}
	defer p.Close()

	recv, err := p.channel.Register()
	if err != nil {
		return err
	}

	wait := p.start(ctx)
	defer func() {
		stop()
		wait()
	}()

	out := cmd.OutOrStdout()
	for seen := 0; count <= 0 || seen < count; seen++ {
		st, err := recv.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		printReading(out, st)
		telemetry.LogDebug("Reading", "seq", st.Seq, "band", st.InternalTempBand.String())
	}
	return nil
}

func printReading(w io.Writer, s display.State) {
	at := s.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}
	fmt.Fprintf(w, "%s %s internal=%.1f°F ambient=%.1f°F band=%s",
		at.Local().Format(time.TimeOnly), s.DeviceID, s.InternalTempF, s.AmbientTempF, s.InternalTempBand)
	if s.HasCook() {
		fmt.Fprintf(w, " target=%.1f°F elapsed=%s remaining=%s cook=%q",
			s.TargetTempF, s.TimeElapsed, s.TimeRemaining, s.CookInfo)
	}
	fmt.Fprintln(w)
}
