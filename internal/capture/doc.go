// Package capture defines the in-memory model shared by every operation:
// a timestamped binary record and the ordered stream of such records.
//
// Timestamps are stored the way the pcap format stores them, as a
// (seconds, microseconds) pair, but all arithmetic happens on a single
// integer nanosecond value (Nanos). Working on one integer axis avoids
// the seconds/microseconds carry bugs that plague incremental timestamp
// math; conversion back to the pair form normalizes the carry so that
// 0 <= microseconds < 1_000_000 holds after every mutation.
//
// A Stream is just an ordered slice of records. Insertion order is the
// capture order and is semantically meaningful. Well-formed input has
// non-decreasing timestamps, but that is a detectable condition (see
// package disorder), not an enforced one.
package capture
