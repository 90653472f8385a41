// Package errs provides standardized error types for the checkout application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the domain and adapter layers.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type carrying error details and an optional cause
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Workflow-level errors with caller-visible messages (blocked progression,
// unavailable steps, and so on) are deliberately not defined here; they live
// next to the checkout domain services whose rules they express.
package errs
