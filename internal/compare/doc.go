// Package compare diffs two capture streams that are expected to be in
// roughly the same order, reporting records missing from the comparison
// stream and records extra to it.
//
// Records are matched by a 64-bit content fingerprint, never by
// position alone. The diff itself is a two-cursor state machine with
// four transitions, evaluated in this order at every step:
//
//  1. match: fingerprints at both cursors are equal; advance both.
//  2. resync-in-B: the reference record reappears within the lookahead
//     window of the comparison stream; everything skipped in B is
//     extra.
//  3. resync-in-A: the comparison record reappears within the
//     lookahead window of the reference stream; everything skipped in
//     A is missing.
//  4. substitution: no resync point within either window; the
//     reference record is missing, the comparison record is extra, and
//     both cursors advance.
//
// Trying resync-in-B before resync-in-A is a deliberate tie-break: when
// both resync points exist inside the window, the diff prefers to
// report insertions in the comparison stream over deletions from the
// reference. Whatever remains after either cursor runs out is entirely
// missing (tail of A) or entirely extra (tail of B).
package compare
