// Package account contains the Account aggregate: the marketplace participant
// model with a role tag (business, rider, admin) and the role-specific
// statistics shown on profiles. Counters and rating aggregates are mirrored
// here for reads and advanced atomically at the store level.
package account
