// Package interval classifies relationships between closed time ranges.
//
// The predicates here are pure: ClassifyOverlap detects conflicts between
// sibling ranges (subevents, participants, artist devices), ClassifySwap
// reports reversed input, and ClassifyOutside detects a child escaping its
// parent event. Callers turn the returned tags into validation errors and
// operator-facing warnings.
//
// All instants are naive wall-clock values carried in time.UTC; nothing in
// this package converts between zones.
package interval
