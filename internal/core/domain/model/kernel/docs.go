// Package kernel contains shared value objects used across domain aggregates:
// UUID identifiers, actor roles, geographic points with great-circle distance,
// and money amounts.
//
// All kernel types are immutable value objects constructed through validating
// factory functions. The zero value of each type is invalid and fails Validate(),
// which prevents accidental use of uninitialized values when aggregates are
// reconstructed from persistence or built from request payloads.
package kernel
