// Package domain contains the core business entities of the emotion insights
// service: logged emotion events, journal entries, the regulation strategy
// model, strategy feedback and user strategy preferences. It is independent of
// storage and delivery; the analysis and recommendation engines live in the
// patterns and recommend subpackages.
package domain
