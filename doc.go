/*
Package remittance defines the common types that tie the ledger together:
addresses and conditions, POSIX time helpers, the key-value store family,
transactions, messages and handlers, and the results they produce.

Extensions live under x/ and implement the actual ledger semantics. The app
package wires them into a serially executing dispatcher. Everything in this
package is interface or small value type; there is no state here.
*/
package remittance
