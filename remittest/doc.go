/*
Package remittest provides mocks and helpers for testing the ledger
extensions. Mocks are kept dead simple: they count calls, return declared
results and never do any real work.
*/
package remittest
