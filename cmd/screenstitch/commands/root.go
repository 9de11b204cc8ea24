package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/screenstitch/screenstitch/internal/capture"
	"github.com/screenstitch/screenstitch/internal/config"
	"github.com/screenstitch/screenstitch/internal/display"
	"github.com/screenstitch/screenstitch/internal/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "screenstitch",
		Short: "screenstitch - coordinate-correct screen captures",
		Long: `screenstitch captures display contents into coordinate-correct images.

It can grab a single display, an arbitrary screen rectangle, a single
pixel's color, or a composite image of all displays stitched at their true
virtual-desktop offsets. Captures clipped at a screen edge are padded back
to the requested size with the off-screen area transparent.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/screenstitch/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("pretty", false, "human-readable log output")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("pretty", rootCmd.PersistentFlags().Lookup("pretty"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig initializes the config manager and the global logger from it,
// letting the --log-level flag override the configured level.
func loadConfig() (*config.Manager, error) {
	configMgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}

	level := configMgr.Get().LogLevel
	if viper.GetString("log_level") != "" {
		level = viper.GetString("log_level")
	}
	logger.Init(level, viper.GetBool("pretty"))
	return configMgr, nil
}

// newCaptureManager wires the X11 enumerator and backend into a capture
// manager. The returned cleanup function releases both X connections.
func newCaptureManager(configMgr *config.Manager) (*capture.Manager, *display.X11Enumerator, func(), error) {
	enum, err := display.NewX11Enumerator()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	x11, err := capture.NewX11Backend()
	if err != nil {
		enum.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize capture backend: %w", err)
	}
	backend, err := capture.SelectBackend(x11)
	if err != nil {
		enum.Close()
		return nil, nil, nil, err
	}
	if err := backend.Start(); err != nil {
		enum.Close()
		return nil, nil, nil, fmt.Errorf("failed to start capture backend: %w", err)
	}

	resolver := display.Resolver{PrimaryID: configMgr.Get().PrimaryDisplayID}
	mgr := capture.NewManager(enum, backend, resolver)
	cleanup := func() {
		backend.Stop()
		enum.Close()
	}
	return mgr, enum, cleanup, nil
}
