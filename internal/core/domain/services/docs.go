// Package services contains stateless checkout domain services: the field
// validation engine with its format validator table, and the progression
// logic that derives a session's progress view from its step instances.
// Everything here is pure computation over catalog definitions and step
// instances; persistence is orchestrated by the application layer.
package services
