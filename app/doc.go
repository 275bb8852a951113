/*
Package app assembles the extensions into a runnable ledger: a router that
dispatches messages by path, per-transaction cache-wrapped execution with
all-or-nothing semantics, genesis initialization and an append-only event
log for external consumers.
*/
package app
