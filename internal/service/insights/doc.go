// Package insights is the application service behind the emotion and
// strategy endpoints. It owns the write path (emotion events, journal
// entries, preferences and feedback) and, on the read path, fetches a user's
// scoped records concurrently before handing them to the pure pattern and
// recommendation engines.
package insights
