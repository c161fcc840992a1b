// Package transition computes per-role style deltas for the transition
// catalog.
//
// Style is a pure function of (spec, progress, role): no I/O, total over
// progress in [0,1], deterministic. Every family defines asymmetric per-role
// curves so neither clip pops at the midpoint, and translate-based families
// apply the declared direction through sign multipliers. A type the catalog
// does not know renders as a plain opacity cross-fade rather than an error.
package transition
