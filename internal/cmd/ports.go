package cmd

import (
	"fmt"

	"github.com/Iron-Ham/evolution/internal/sensor"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports a sensor could be attached to",
	RunE:  runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := sensor.ListPorts()
	if err != nil {
		return fmt.Errorf("failed to list serial ports: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(ports) == 0 {
		fmt.Fprintln(out, "No serial ports found.")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(out, p)
	}
	return nil
}
