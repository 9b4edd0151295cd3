// Package store implements the record store and schema manager for the
// donation ledger.
//
// Four entities are persisted: providers, receivers, food listings and
// claims. Each entity exposes add/update/delete/list, every operation a
// single parameterized statement against the backing engine (SQLite or
// MySQL). Driver errors are classified into structured Error values so
// callers can distinguish key collisions, referential-integrity
// violations and storage faults without inspecting driver internals.
//
// Delete policy: foreign keys carry no ON DELETE clause. Deleting a row
// that is still referenced (a provider with listings, a listing or
// receiver with claims) is rejected by the engine and surfaced as a
// FOREIGN_KEY error.
package store
