//go:build linux

package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ja7ad/sysmon/pkg/telemetry"
)

func addTopFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("interval", "i", time.Second, "refresh interval (e.g. 1s, 500ms)")
	cmd.Flags().IntP("rows", "n", 20, "number of processes to show")
	cmd.Flags().IntP("samples", "s", 0, "number of refreshes (0 = run until Ctrl-C)")
}

func newTopCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Refresh the system summary and process table until interrupted",
		Args:  cobra.NoArgs,
		RunE:  a.runTop,
	}
	addTopFlags(cmd)
	return cmd
}

func (a *app) runTop(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon, err := a.newMonitor(ctx, telemetry.Config{})
	if err != nil {
		return err
	}

	scr := newScreen(cmd.OutOrStdout())
	draw := func() {
		scr.draw(mon.Poll(), a.cfg.Rows)
	}

	draw()
	n := 1
	if a.cfg.Samples > 0 && n >= a.cfg.Samples {
		return nil
	}

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("interrupted", zap.Int("refreshes", n))
			return nil
		case <-ticker.C:
			draw()
			n++
			if a.cfg.Samples > 0 && n >= a.cfg.Samples {
				return nil
			}
		}
	}
}
