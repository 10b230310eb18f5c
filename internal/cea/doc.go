// Package cea implements the cost-effectiveness computation engine:
// point estimates (cost per beneficiary, SD gained per $100, cost per 1 SD)
// with optional CPI-based inflation adjustment, a tri-state threshold
// verdict, and a bounded four-scenario sensitivity sweep.
//
// Everything in this package is a pure function of its inputs. Validation
// happens at the boundaries (flag parsing, config, table ingestion); the
// engine assumes its documented input ranges and never panics on the two
// degenerate cases it owns: zero cost (SD per $100 is 0, not infinite) and
// zero impact (cost per 1 SD is the +Inf "undefined" sentinel).
package cea
