package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/screenstitch/screenstitch/internal/display"
)

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List connected displays",
	Long: `List every connected display with its position and size in
virtual-desktop coordinates.`,
	Example: `  # List displays in table format (default)
  screenstitch displays

  # List displays in JSON format
  screenstitch displays --format json`,
	RunE: runDisplays,
}

var displaysFormat string

func init() {
	rootCmd.AddCommand(displaysCmd)

	displaysCmd.Flags().StringVarP(&displaysFormat, "format", "f", "table", "output format (table or json)")
}

func runDisplays(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}

	enum, err := display.NewX11Enumerator()
	if err != nil {
		return fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer enum.Close()

	displays, err := enum.Displays()
	if err != nil {
		return fmt.Errorf("failed to enumerate displays: %w", err)
	}

	if displaysFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(displays)
	}

	primaryID := configMgr.Get().PrimaryDisplayID
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOSITION\tSIZE\tPRIMARY")
	for _, d := range displays {
		primary := ""
		if d.ID == primaryID {
			primary = "yes"
		}
		b := d.Bounds()
		fmt.Fprintf(w, "%s\t%.0f,%.0f\t%.0fx%.0f\t%s\n",
			d.ID, b.X, b.Y, b.Width, b.Height, primary)
	}
	return w.Flush()
}

// findDisplay resolves an optional display ID against the current
// enumeration. An empty ID yields a nil target.
func findDisplay(enum display.Enumerator, id string) (*display.Display, error) {
	if id == "" {
		return nil, nil
	}
	displays, err := enum.Displays()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate displays: %w", err)
	}
	for i := range displays {
		if displays[i].ID == id {
			return &displays[i], nil
		}
	}
	return nil, fmt.Errorf("unknown display: %s", id)
}
