package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/JackWReid/ophelia/internal/config"
	"github.com/JackWReid/ophelia/internal/editor"
	"github.com/JackWReid/ophelia/internal/logging"
	"github.com/JackWReid/ophelia/internal/terminal"
)

// screen is a terminal backend the editor can draw on and that must be
// restored before the process exits.
type screen interface {
	editor.Screen
	Restore() error
}

func newRootCmd() *cobra.Command {
	var (
		v       = viper.New()
		cfgFile string
	)

	cmd := &cobra.Command{
		Use:           "ophelia",
		Short:         "A small terminal screen editor",
		Long:          longRoot,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/ophelia/config.yml)")
	flags.String("backend", config.BackendANSI, "terminal backend: ansi or tcell")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// flagKeys maps command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"backend":   config.KeyBackend,
	"log-file":  config.KeyLogFile,
	"log-level": config.KeyLogLevel,
}

// bindFlags makes every flag in flagKeys override its config key in v.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ophelia version %s\n", Version)
		},
	}
}

func run(cfg config.Config) (err error) {
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	log.SetDefault(logger)

	s, err := openScreen(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	// Deferred so raw mode is left on panics too. Restore is idempotent.
	defer func() {
		if rerr := s.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	stop := restoreOnSignal(s, logger)
	defer stop()

	logger.Info("editor started", "version", Version, "backend", cfg.Backend, "size", s.Size())
	ed := editor.New(s, editor.WithVersion(Version), editor.WithLogger(logger))
	return ed.Run()
}

func openScreen(cfg config.Config, logger *log.Logger) (screen, error) {
	opts := []terminal.Option{
		terminal.WithFallbackSize(cfg.Fallback),
		terminal.WithLogger(logger),
	}
	if cfg.Backend == config.BackendTcell {
		return terminal.NewTcell(opts...)
	}
	return terminal.New(opts...)
}

// restoreOnSignal leaves raw mode and exits when the process is told to
// terminate while the editor is blocked reading a key. Ctrl+C does not
// raise SIGINT in raw mode, so only external signals arrive here.
func restoreOnSignal(s screen, logger *log.Logger) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig, ok := <-sigs
		if !ok {
			return
		}
		logger.Warn("terminated by signal", "signal", sig)
		s.Restore()
		fmt.Fprintf(os.Stderr, "ophelia: %v\n", sig)
		os.Exit(1)
	}()
	return func() {
		signal.Stop(sigs)
		close(sigs)
	}
}

var longRoot = `
ophelia is a terminal screen editor.

The arrow keys move the cursor and Ctrl+W quits.

Examples:
  # Start with the default ANSI backend.
  ophelia

  # Use the tcell backend and log to a file.
  ophelia --backend tcell --log-file /tmp/ophelia.log --log-level debug
`
