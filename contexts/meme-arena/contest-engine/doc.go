// Package contestengine implements the contest lifecycle and winner-selection
// engine inside the meme-arena context.
//
// The module owns the contest state machine (open -> voting -> closed), entry
// registration, vote recording and the deterministic winner resolution that
// runs when a contest closes. Duplicate submissions and votes are soft
// idempotent successes, and every correctness-critical invariant (single
// active contest, one entry per handle, one vote per voter, one winner per
// contest) is delegated to store uniqueness constraints rather than
// check-then-act reads. Business rules live in application/domain layers with
// infrastructure isolated behind ports and adapters.
package contestengine
