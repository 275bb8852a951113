/*
Package x contains the shared contracts between the ledger extensions, most
importantly the Authenticator used by handlers to resolve who signed a
transaction. Extensions under x/ should depend on this package and the root
framework types, never on each other's internals.
*/
package x
