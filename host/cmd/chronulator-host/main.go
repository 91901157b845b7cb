package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chronulator/host/config"
)

var (
	logLevel   = "info"
	configPath = ""

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.StampMilli,
	})
	return nil
}

func loadConfig() error {
	if configPath == "" {
		cfg = config.Default()
		return nil
	}
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	logrus.WithField("path", configPath).Debug("loaded config")
	return nil
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chronulator-host",
		Short: "Host tools for the two-meter analog clock",
		Long: `chronulator-host simulates the clock firmware, watches a running clock's
telemetry, renders the meter faces, and on Linux drives a clock built from
GPIO lines.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := setupLogger(); err != nil {
				return err
			}
			return loadConfig()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", "", "config file path (JSON, defaults apply when empty)")

	cmd.AddCommand(
		NewSimulateCommand(),
		NewMonitorCommand(),
		NewRunCommand(),
		NewRenderCommand(),
	)

	return cmd
}
