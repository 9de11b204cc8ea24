package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/screenstitch/screenstitch/internal/api"
	"github.com/screenstitch/screenstitch/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the screenstitch HTTP server",
	Long: `Start an HTTP server exposing the capture operations.

Endpoints:
  GET /api/displays           list connected displays
  GET /api/capture            capture a display or a screen rectangle
  GET /api/capture/combined   capture all displays stitched into one image
  GET /api/capture/stream     websocket stream of encoded frames
  GET /api/color              color of a single screen pixel
  GET /api/health             health check`,
	Example: `  # Start server on the configured port (default 8080)
  screenstitch serve

  # Start server on a custom port
  screenstitch serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	viper.BindPFlag("server_port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}

	if viper.IsSet("server_port") {
		if port := viper.GetInt("server_port"); port > 0 {
			configMgr.SetPort(port)
		}
	}
	cfg := configMgr.Get()

	mgr, enum, cleanup, err := newCaptureManager(configMgr)
	if err != nil {
		return err
	}
	defer cleanup()

	server := api.NewServer(mgr, enum, configMgr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.ServerPort)
	}()

	log := logger.WithComponent("serve")
	log.Info().
		Int("port", cfg.ServerPort).
		Str("config", configMgr.GetConfigPath()).
		Msg("Server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		return nil
	}
}
