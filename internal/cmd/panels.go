package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Iron-Ham/evolution/internal/sensor"
	"github.com/Iron-Ham/evolution/internal/shell"
	"github.com/Iron-Ham/evolution/internal/surface"
	"github.com/spf13/cobra"
)

var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "List the tech panels in catalog order",
	Long: `List the tech panels the shell builds for a session, in the order
navigation walks them. The position is the digit key that selects the panel.`,
	RunE: runPanels,
}

var panelsJSON bool

func init() {
	rootCmd.AddCommand(panelsCmd)

	panelsCmd.Flags().BoolVar(&panelsJSON, "json", false, "Output as JSON")
}

type panelInfo struct {
	Position    int    `json:"position"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Surface     string `json:"surface"`
}

func runPanels(cmd *cobra.Command, args []string) error {
	ctrl := shell.New(shell.Options{Factory: surface.TextFactory{}})
	session := sensor.NewSimulated(sensor.SimulatedConfig{})
	if err := ctrl.OpenSession(session); err != nil {
		_ = closeIfOpen(session)
		return fmt.Errorf("failed to build catalog: %w", err)
	}
	defer func() { _ = ctrl.Close() }()

	var infos []panelInfo
	for i, p := range ctrl.Panels() {
		infos = append(infos, panelInfo{
			Position:    i + 1,
			Title:       p.Title(),
			Description: p.Description(),
			Surface:     p.Surface().Kind().String(),
		})
	}

	out := cmd.OutOrStdout()
	if panelsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintln(out, "Tech panels")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, info := range infos {
		fmt.Fprintf(out, "  %d  %s\n", info.Position, info.Title)
		fmt.Fprintf(out, "     %s\n", info.Description)
	}
	return nil
}
