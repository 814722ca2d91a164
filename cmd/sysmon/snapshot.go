//go:build linux

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ja7ad/sysmon/pkg/telemetry"
)

func newSnapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Poll once and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mon, err := a.newMonitor(cmd.Context(), telemetry.Config{})
			if err != nil {
				return err
			}
			f := mon.Poll()

			if a.cfg.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(f)
			}
			newScreen(cmd.OutOrStdout()).print(f, a.cfg.Rows)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the frame as JSON")
	cmd.Flags().IntP("rows", "n", 20, "number of processes to show")
	return cmd
}
