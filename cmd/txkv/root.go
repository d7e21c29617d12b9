package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ASHISH26940/txkv/internal/config"
	"github.com/ASHISH26940/txkv/internal/dispatcher"
	"github.com/ASHISH26940/txkv/internal/logging"
	"github.com/ASHISH26940/txkv/internal/script"
	"github.com/ASHISH26940/txkv/internal/store"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

var (
	rootCmd = &cobra.Command{
		Use:   "txkv",
		Short: "in-memory key-value store with nested transactions",
		Long: fmt.Sprintf(`txkv (v%s)

Reads commands (SET, GET, UNSET, NUMEQUALTO, BEGIN, ROLLBACK, COMMIT, END)
one per line from stdin or a script file and prints their results.`, Version),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSession,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of txkv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "txkv v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.Flags()
	flags.String("config", "", "path to a TOML config file")
	flags.String("script", "", "read commands from this file instead of stdin")
	flags.String("transcript", "", "append session output to this file")
	flags.String("metrics", "", "write command counters to this file on exit")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error, off)")
	flags.Bool("no-echo", false, "do not echo input lines")
}

// initEnv loads .env files and maps TXKV_* variables onto flag names.
func initEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("txkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig builds the effective config: defaults, then the config file,
// then environment variables and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	cfg := config.New()
	if path := viper.GetString("config"); path != "" {
		if err := cfg.Load(path); err != nil {
			return nil, err
		}
	}
	if viper.IsSet("log-level") && viper.GetString("log-level") != "" {
		cfg.LogLevel = viper.GetString("log-level")
	}
	if viper.GetString("transcript") != "" {
		cfg.TranscriptPath = viper.GetString("transcript")
	}
	if viper.GetString("metrics") != "" {
		cfg.MetricsPath = viper.GetString("metrics")
	}
	if viper.GetBool("no-echo") {
		cfg.Echo = false
	}
	return cfg, cfg.Validate()
}

func runSession(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New("txkv", cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if cfg.TranscriptPath != "" {
		transcript, err := script.NewTranscript(cfg.TranscriptPath)
		if err != nil {
			return err
		}
		defer transcript.Close()
		out = io.MultiWriter(out, transcript)
	}

	st := store.NewStore(logger.Named("store"))
	d := dispatcher.New(st, out, dispatcher.Options{
		Echo:   cfg.Echo,
		Prompt: cfg.Prompt,
		Logger: logger.Named("dispatcher"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if path := viper.GetString("script"); path != "" {
		logger.Debug("running script", "path", path)
		err = d.RunFile(ctx, path)
	} else {
		err = d.Run(ctx, cmd.InOrStdin())
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("session interrupted")
		err = nil
	}
	if err != nil {
		return err
	}

	if st.Depth() > 0 {
		logger.Warn("session ended with open transactions", "depth", st.Depth())
	}
	if cfg.MetricsPath != "" {
		return writeMetrics(cfg.MetricsPath, d)
	}
	return nil
}

func writeMetrics(path string, d *dispatcher.Dispatcher) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create metrics file %s", path)
	}
	d.Metrics().WritePrometheus(f)
	return errors.Wrapf(f.Close(), "write metrics file %s", path)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		hclog.New(&hclog.LoggerOptions{Name: "txkv"}).Error("session failed", "error", err)
		os.Exit(1)
	}
}
