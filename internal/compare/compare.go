package compare

import (
	"github.com/hanneswan/pcapedit/internal/capture"
)

// DefaultLookahead is the resynchronization window: how many records
// ahead each stream is scanned for a matching fingerprint after a
// mismatch.
const DefaultLookahead = 100

// Options configures a comparison.
type Options struct {
	// IgnoreTimestamp selects the fingerprint mode; see Fingerprint.
	IgnoreTimestamp bool

	// Lookahead overrides the resynchronization window. Zero or
	// negative means DefaultLookahead.
	Lookahead int
}

func (o Options) lookahead() int {
	if o.Lookahead > 0 {
		return o.Lookahead
	}
	return DefaultLookahead
}

// Entry is one diffed record: its index in its own stream, the record
// itself, and its fingerprint.
type Entry struct {
	Index  int
	Record capture.Record
	Sum    uint64
}

// Result is the outcome of a comparison. Differences are reported
// data, not errors: a Result with empty Missing and Extra is a clean,
// successful run.
type Result struct {
	// RefCount and CmpCount are the input stream lengths.
	RefCount int
	CmpCount int

	// Missing lists records present only in the reference stream,
	// Extra records present only in the comparison stream. Both are
	// ordered by index.
	Missing []Entry
	Extra   []Entry
}

// Identical reports whether the two streams had equal content.
func (r *Result) Identical() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Streams diffs cmp against ref using the bounded-lookahead
// resynchronizing algorithm described in the package comment.
func Streams(ref, cmp capture.Stream, opts Options) *Result {
	refSums, cmpSums := fingerprintBoth(ref, cmp, opts.IgnoreTimestamp)

	res := &Result{RefCount: len(ref), CmpCount: len(cmp)}
	window := opts.lookahead()

	i, j := 0, 0
	for i < len(ref) && j < len(cmp) {
		// Transition 1: match.
		if refSums[i] == cmpSums[j] {
			i++
			j++
			continue
		}

		// Transition 2: resync-in-B. Tried before resync-in-A on
		// purpose; see the package comment on the tie-break.
		if k, ok := scanWindow(cmpSums, j, window, refSums[i]); ok {
			for idx := j; idx < k; idx++ {
				res.Extra = append(res.Extra, Entry{Index: idx, Record: cmp[idx], Sum: cmpSums[idx]})
			}
			j = k + 1
			i++
			continue
		}

		// Transition 3: resync-in-A.
		if k, ok := scanWindow(refSums, i, window, cmpSums[j]); ok {
			for idx := i; idx < k; idx++ {
				res.Missing = append(res.Missing, Entry{Index: idx, Record: ref[idx], Sum: refSums[idx]})
			}
			i = k + 1
			j++
			continue
		}

		// Transition 4: substitution.
		res.Missing = append(res.Missing, Entry{Index: i, Record: ref[i], Sum: refSums[i]})
		res.Extra = append(res.Extra, Entry{Index: j, Record: cmp[j], Sum: cmpSums[j]})
		i++
		j++
	}

	// Whatever remains on either side cannot match anything.
	for ; i < len(ref); i++ {
		res.Missing = append(res.Missing, Entry{Index: i, Record: ref[i], Sum: refSums[i]})
	}
	for ; j < len(cmp); j++ {
		res.Extra = append(res.Extra, Entry{Index: j, Record: cmp[j], Sum: cmpSums[j]})
	}

	return res
}

// scanWindow looks for sum within sums[from:from+window] and returns
// its index.
func scanWindow(sums []uint64, from, window int, sum uint64) (int, bool) {
	end := from + window
	if end > len(sums) {
		end = len(sums)
	}
	for k := from; k < end; k++ {
		if sums[k] == sum {
			return k, true
		}
	}
	return 0, false
}
