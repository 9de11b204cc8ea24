package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var colorCmd = &cobra.Command{
	Use:   "color X Y",
	Short: "Print the color of a single screen pixel",
	Example: `  # Color at (100, 200)
  screenstitch color 100 200`,
	Args: cobra.ExactArgs(2),
	RunE: runColor,
}

func init() {
	rootCmd.AddCommand(colorCmd)
}

func runColor(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %q", args[1])
	}

	configMgr, err := loadConfig()
	if err != nil {
		return err
	}

	mgr, _, cleanup, err := newCaptureManager(configMgr)
	if err != nil {
		return err
	}
	defer cleanup()

	c, err := mgr.CapturePixelColor(x, y)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}
	if c == nil {
		return fmt.Errorf("point (%.0f, %.0f) is not on any display", x, y)
	}

	fmt.Printf("#%02x%02x%02x rgba(%d, %d, %d, %d)\n", c.R, c.G, c.B, c.R, c.G, c.B, c.A)
	return nil
}
