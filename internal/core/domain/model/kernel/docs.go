// Package kernel contains shared value objects used across the checkout
// domain. These types are immutable, validated at construction, and safe for
// concurrent use.
package kernel
