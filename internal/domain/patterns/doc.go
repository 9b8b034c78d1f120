// Package patterns implements the pattern analysis engine: a set of pure
// functions that turn a user's emotion events into insights, trigger
// rankings, time-of-day and weekday histograms, daily trends and emotion
// co-occurrence correlations.
//
// Nothing in this package performs I/O or keeps state between calls, so it is
// safe to call from any number of goroutines. Callers are expected to have
// scoped the events to a single user and a bounded time range.
package patterns
