package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/logger"
	"github.com/basement-tech/Monitoring-zimKnives/services"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

type options struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "zkmonitor",
		Short:        "Monitor the shop: sensors, motion, lights and alarms over MQTT.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to configuration file (default "+config.ConfigPath("zkmonitor.yml")+")")
	root.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "log level, overrides the configuration")

	root.AddCommand(newRunCmd(opts), newConfigCmd(opts), newVersionCmd())
	return root
}

// load reads the configuration and sets up logging from it.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Open(o.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logger.Init(level, cfg.Logging.File); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run [service...]",
		Short: "Run services until interrupted (default: monitor).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"monitor"}
			}
			for _, id := range args {
				if _, ok := services.Lookup(id); !ok {
					return errors.Errorf("unknown service %s, available: %v", id, services.IDs())
				}
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			return services.Launch(ctx, cfg, args)
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Load, validate and print the effective configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Open(opts.configPath)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "zkmonitor", Version)
		},
	}
}
