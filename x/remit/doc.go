/*
Package remit implements commitment-locked remittances.

A sender locks an amount under a 32 byte commitment, the keccak-256 digest of
a secret, the intended recipient and the ledger instance address. Whoever
learns the secret and is the committed recipient can redeem the net amount
into their vault balance. After the deadline the sender can reclaim instead.
Records are never deleted, so a commitment can be used at most once in the
lifetime of a ledger.

A flat fee is charged on creation for amounts reaching the configured
threshold and accrues to the ledger owner's vault balance.
*/
package remit
