package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanneswan/pcapedit/internal/compare"
	"github.com/hanneswan/pcapedit/internal/pcapio"
)

// compareSummary is the data emitted for a comparison run.
type compareSummary struct {
	Reference  string         `json:"reference"`
	Comparison string         `json:"comparison"`
	RefRecords int            `json:"reference_records"`
	CmpRecords int            `json:"comparison_records"`
	Missing    []compareEntry `json:"missing"`
	Extra      []compareEntry `json:"extra"`
	Identical  bool           `json:"identical"`
}

type compareEntry struct {
	Index       int    `json:"index"`
	Length      int    `json:"length"`
	Fingerprint string `json:"fingerprint"`
}

func newCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var ignoreTimestamp bool

	cmd := &cobra.Command{
		Use:   "compare <ref> <cmp>",
		Short: "Compare two capture files for missing and extra records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, args[0], args[1], ignoreTimestamp)
		},
	}
	cmd.Flags().BoolVar(&ignoreTimestamp, "ignore-timestamp", false, "fingerprint length fields and payload instead of payload only")
	return cmd
}

func runCompare(opts *RootOptions, refPath, cmpPath string, ignoreTimestamp bool) error {
	refRes, err := pcapio.Load(refPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load reference", err)
	}
	cmpRes, err := pcapio.Load(cmpPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load comparison", err)
	}

	res := compare.Streams(refRes.Stream, cmpRes.Stream, compare.Options{
		IgnoreTimestamp: ignoreTimestamp,
		Lookahead:       opts.Lookahead,
	})

	slog.Info("comparison complete",
		"reference_records", res.RefCount,
		"comparison_records", res.CmpCount,
		"missing", len(res.Missing),
		"extra", len(res.Extra))

	f := &Formatter{Format: opts.Format, Writer: opts.Out}
	summary := compareSummary{
		Reference:  refPath,
		Comparison: cmpPath,
		RefRecords: res.RefCount,
		CmpRecords: res.CmpCount,
		Missing:    toEntries(res.Missing),
		Extra:      toEntries(res.Extra),
		Identical:  res.Identical(),
	}
	if err := f.Success(renderCompareReport(res), summary); err != nil {
		return err
	}

	if !res.Identical() {
		return NewExitError(ExitFindings, fmt.Sprintf("%d missing, %d extra", len(res.Missing), len(res.Extra)))
	}
	return nil
}

func toEntries(entries []compare.Entry) []compareEntry {
	out := make([]compareEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, compareEntry{
			Index:       e.Index,
			Length:      len(e.Record.Payload),
			Fingerprint: fmt.Sprintf("%016x", e.Sum),
		})
	}
	return out
}

func renderCompareReport(res *compare.Result) string {
	var b strings.Builder
	b.WriteString("Capture comparison result:\n")
	fmt.Fprintf(&b, "- reference records: %d\n", res.RefCount)
	fmt.Fprintf(&b, "- comparison records: %d\n", res.CmpCount)
	fmt.Fprintf(&b, "- missing records: %d\n", len(res.Missing))
	fmt.Fprintf(&b, "- extra records: %d\n", len(res.Extra))

	if len(res.Missing) > 0 {
		b.WriteString("\nMissing (present only in the reference):\n")
		for _, e := range res.Missing {
			fmt.Fprintf(&b, "  [ref %d] length: %d bytes, fingerprint: %016x\n", e.Index, len(e.Record.Payload), e.Sum)
		}
	}
	if len(res.Extra) > 0 {
		b.WriteString("\nExtra (present only in the comparison):\n")
		for _, e := range res.Extra {
			fmt.Fprintf(&b, "  [cmp %d] length: %d bytes, fingerprint: %016x\n", e.Index, len(e.Record.Payload), e.Sum)
		}
	}

	if res.Identical() {
		b.WriteString("\nStreams are identical.\n")
	} else {
		b.WriteString("\nDifferences found.\n")
	}
	return b.String()
}
