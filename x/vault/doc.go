/*
Package vault keeps per-identity withdrawable balances.

Funds never leave the ledger on their own. Settled remittances and collected
fees are credited here and the owner of a balance pulls the money out with an
explicit withdraw transaction. The actual value transfer is delegated to a
Paymaster and the whole transaction is rolled back when the transfer fails.
*/
package vault
