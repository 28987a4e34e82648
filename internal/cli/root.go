package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	LogLevel string
	Format   string // "text" | "json"
	Verbose  bool

	// Lookahead is the comparator resynchronization window; settable
	// only through the environment.
	Lookahead int

	// Out is where reports are written. Defaults to the command's
	// stdout; tests inject a buffer.
	Out io.Writer
}

// EnvConfig carries environment-variable defaults for the global
// flags. Flags win over the environment.
type EnvConfig struct {
	LogLevel  string `env:"PCAPEDIT_LOG_LEVEL"`
	Format    string `env:"PCAPEDIT_FORMAT"`
	Lookahead int    `env:"PCAPEDIT_LOOKAHEAD"`
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidLogLevels defines the allowed --log-level values.
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "error", "off"}

// NewRootCommand creates the pcapedit root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cfg := EnvConfig{LogLevel: "info", Format: "text"}
	_ = env.Parse(&cfg)
	opts.Lookahead = cfg.Lookahead

	cmd := &cobra.Command{
		Use:           "pcapedit",
		Short:         "pcapedit - rewrite, resample, check, and diff pcap capture files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !contains(ValidLogLevels, opts.LogLevel) {
				return fmt.Errorf("invalid log level %q: must be one of %v", opts.LogLevel, ValidLogLevels)
			}
			if opts.Out == nil {
				opts.Out = cmd.OutOrStdout()
			}
			if opts.Verbose && opts.LogLevel == "info" {
				opts.LogLevel = "debug"
			}
			setupLogging(opts.LogLevel)
			// One token per run ties all log lines of an invocation
			// together.
			slog.Debug("run started", "run", uuid.Must(uuid.NewV7()).String(), "command", cmd.Name())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "log level (trace|debug|info|warn|error|off)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newTimeCompressCommand(opts))
	cmd.AddCommand(newTimeStretchCommand(opts))
	cmd.AddCommand(newDiluteCommand(opts))
	cmd.AddCommand(newAugmentCommand(opts))
	cmd.AddCommand(newDisorderDetectCommand(opts))
	cmd.AddCommand(newCompareCommand(opts))

	return cmd
}

// setupLogging installs the process-wide slog handler. "off" raises
// the threshold beyond any level slog emits.
func setupLogging(level string) {
	var lv slog.Level
	switch level {
	case "trace":
		lv = slog.LevelDebug - 4
	case "debug":
		lv = slog.LevelDebug
	case "info":
		lv = slog.LevelInfo
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	case "off":
		lv = slog.LevelError + 128
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})
	slog.SetDefault(slog.New(handler))
}

func contains(valid []string, v string) bool {
	for _, s := range valid {
		if s == v {
			return true
		}
	}
	return false
}
