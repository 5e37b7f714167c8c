// Command renderers turns energy sensor readings into dashboard PNG images.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/noahaxio/renderers/internal/app"
	"github.com/noahaxio/renderers/internal/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	cfg         *config.Config
	logger      *logrus.Logger
	application *app.App
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "renderers",
	Short: "Render energy sensor readings into dashboard images",
	Long: `renderers draws bar, pie and yearly summary charts and the CO₂
equivalence panel from JSON sensor readings. Images are printed as
base64 PNG data URLs, or written as PNG files with --output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		// Best-effort: send logs and panic traces to a file so stdout only
		// ever carries the rendered image.
		logPath, _ := cmd.Flags().GetString("stdio-log")
		if logPath == "" {
			logPath = os.Getenv("RENDERERS_STDIO_LOG")
		}
		if logPath != "" {
			if err := redirectStderr(logPath); err != nil {
				fmt.Fprintln(os.Stderr, "stderr log redirect error:", err)
			}
		}

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}

		logger = cfg.Log.NewLogger()
		logger.WithField("command", cmd.Name()).Debug("renderers starting")
		application = app.New(*cfg, logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./renderers.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("stdio-log", "", "redirect stderr (logs and panics) to this file; also configurable via RENDERERS_STDIO_LOG")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(barCmd)
	rootCmd.AddCommand(pieCmd)
	rootCmd.AddCommand(yearlyCmd)
	rootCmd.AddCommand(co2Cmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "renderers %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}
