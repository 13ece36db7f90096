// Package queries contains read operations in the CQRS architecture.
// Query handlers read the database directly with SQL and map rows into
// read models, bypassing the aggregates. The single-offer query reads
// through the TTL cache; everything else hits the database every time.
package queries
