// Package recommend ranks regulation strategies for a user.
//
// An Engine is built over an injected, read-only Catalog. Each call filters
// the catalog by the user's preferences and then fills the result in stages:
// strategies the user rated well, strategies suited to the emotions they log
// most, strategies with an authoritative evidence base, and finally any other
// preferred strategy. Scores within a stage are spread by an injected Jitter,
// which defaults to a stable hash so results are reproducible.
package recommend
