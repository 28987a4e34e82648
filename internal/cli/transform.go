package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hanneswan/pcapedit/internal/capture"
	"github.com/hanneswan/pcapedit/internal/engine"
	"github.com/hanneswan/pcapedit/internal/pcapio"
)

// transformSummary is the data emitted for a completed transform.
type transformSummary struct {
	Input         string  `json:"input"`
	Output        string  `json:"output"`
	InputRecords  int     `json:"input_records"`
	OutputRecords int     `json:"output_records"`
	Factor        float64 `json:"factor"`
	SpanSeconds   float64 `json:"span_seconds"`
}

func newTimeCompressCommand(rootOpts *RootOptions) *cobra.Command {
	var factor float64

	cmd := &cobra.Command{
		Use:   "time-compress <in> <out>",
		Short: "Compress the time axis by a factor greater than 1.0",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(rootOpts, "time-compress", args[0], args[1], factor,
				func(s capture.Stream) (capture.Stream, error) {
					return engine.Compress(s, factor)
				})
		},
	}
	cmd.Flags().Float64VarP(&factor, "factor", "f", 0, "compression factor (> 1.0)")
	_ = cmd.MarkFlagRequired("factor")
	return cmd
}

func newTimeStretchCommand(rootOpts *RootOptions) *cobra.Command {
	var factor float64

	cmd := &cobra.Command{
		Use:   "time-stretch <in> <out>",
		Short: "Stretch the time axis by a factor greater than 0.0",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(rootOpts, "time-stretch", args[0], args[1], factor,
				func(s capture.Stream) (capture.Stream, error) {
					return engine.Stretch(s, factor)
				})
		},
	}
	cmd.Flags().Float64VarP(&factor, "factor", "f", 0, "stretch factor (> 0.0)")
	_ = cmd.MarkFlagRequired("factor")
	return cmd
}

func newDiluteCommand(rootOpts *RootOptions) *cobra.Command {
	var factor int

	cmd := &cobra.Command{
		Use:   "dilute <in> <out>",
		Short: "Reduce record count by an integer factor, preserving the time span",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(rootOpts, "dilute", args[0], args[1], float64(factor),
				func(s capture.Stream) (capture.Stream, error) {
					return engine.Dilute(s, factor)
				})
		},
	}
	cmd.Flags().IntVarP(&factor, "factor", "f", 0, "dilution factor (integer > 1)")
	_ = cmd.MarkFlagRequired("factor")
	return cmd
}

func newAugmentCommand(rootOpts *RootOptions) *cobra.Command {
	var factor int

	cmd := &cobra.Command{
		Use:   "augment <in> <out>",
		Short: "Multiply record count by an integer factor, preserving the time span",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(rootOpts, "augment", args[0], args[1], float64(factor),
				func(s capture.Stream) (capture.Stream, error) {
					return engine.Augment(s, factor)
				})
		},
	}
	cmd.Flags().IntVarP(&factor, "factor", "f", 0, "duplication factor (integer > 1)")
	_ = cmd.MarkFlagRequired("factor")
	return cmd
}

// runTransform is the shared load/transform/save skeleton. The engine
// validates parameters and emptiness before any output file exists, so
// a rejected run never leaves a partial file behind.
func runTransform(opts *RootOptions, name, inPath, outPath string, factor float64, fn func(capture.Stream) (capture.Stream, error)) error {
	res, err := pcapio.Load(inPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load input", err)
	}
	if res.Truncated() {
		slog.Warn("input not fully readable, transforming what was read",
			"path", inPath, "records", len(res.Stream), "trailing_bytes", res.TrailingBytes())
	}

	out, err := fn(res.Stream)
	if err != nil {
		return WrapExitError(ExitCommandError, name+" rejected its input", err)
	}

	if err := pcapio.Save(outPath, res.Header, out); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	slog.Info(name+" complete",
		"input_records", len(res.Stream),
		"output_records", len(out),
		"factor", factor,
		"span_seconds", out.Span().Seconds())

	f := &Formatter{Format: opts.Format, Writer: opts.Out}
	summary := transformSummary{
		Input:         inPath,
		Output:        outPath,
		InputRecords:  len(res.Stream),
		OutputRecords: len(out),
		Factor:        factor,
		SpanSeconds:   out.Span().Seconds(),
	}
	text := fmt.Sprintf("%s: %d records in, %d records out, span %.6fs -> %s\n",
		name, len(res.Stream), len(out), out.Span().Seconds(), outPath)
	return f.Success(text, summary)
}
