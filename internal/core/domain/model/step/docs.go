// Package step contains the checkout step domain model: the immutable
// catalog of step definitions (the configuration of the checkout funnel) and
// the per-session step instance aggregate that tracks activation, completion,
// submitted data, validation results, and navigation history.
//
// A checkout session owns exactly one Instance per catalog Definition. The
// catalog never changes at runtime; instances change only through the
// aggregate's transition methods.
package step
