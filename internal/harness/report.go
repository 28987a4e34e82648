package harness

import (
	"fmt"
	"strings"

	"github.com/hanneswan/pcapedit/internal/capture"
)

// RenderReport renders the outcome as deterministic text for golden
// comparison. Timestamps appear as whole-microsecond offsets from the
// base, never as absolute instants, so the report stays readable.
func RenderReport(sc *Scenario, out *Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", sc.Name)
	fmt.Fprintf(&b, "operation: %s\n", sc.Operation)
	fmt.Fprintf(&b, "error: %s\n", out.ErrCode)

	if out.Output != nil {
		fmt.Fprintf(&b, "output: %d records\n", len(out.Output))
		for i, rec := range out.Output {
			fmt.Fprintf(&b, "  [%d] %s @ %s\n", i, rec.Payload, renderOffset(rec.Time()-base))
		}
	}

	if out.Report != nil {
		fmt.Fprintf(&b, "records: %d\n", out.Report.RecordCount)
		fmt.Fprintf(&b, "violations: %d\n", len(out.Report.Violations))
		for _, v := range out.Report.Violations {
			fmt.Fprintf(&b, "  [%d] delta %s\n", v.Index, renderOffset(v.Delta()))
		}
	}

	if out.Diff != nil {
		fmt.Fprintf(&b, "missing: %d\n", len(out.Diff.Missing))
		for _, e := range out.Diff.Missing {
			fmt.Fprintf(&b, "  [%d] %s\n", e.Index, e.Record.Payload)
		}
		fmt.Fprintf(&b, "extra: %d\n", len(out.Diff.Extra))
		for _, e := range out.Diff.Extra {
			fmt.Fprintf(&b, "  [%d] %s\n", e.Index, e.Record.Payload)
		}
		fmt.Fprintf(&b, "identical: %v\n", out.Diff.Identical())
	}

	return b.String()
}

func renderOffset(n capture.Nanos) string {
	return fmt.Sprintf("%dus", n/capture.Microsecond)
}
