// Package memefeed is the public browse-and-post surface of the arena.
//
// It covers submitting memes by URL, uploading image blobs, reacting to
// memes, and serving the shuffled feed. Duplicate submissions of the same
// (handle, image URL) pair resolve as soft successes rather than errors,
// and reaction counters are bumped with single atomic statements.
package memefeed
