/*
Package errors implements custom error interfaces for the remittance ledger.

Error declarations should be compact and reusable. Create them in the root
error package ("root errors") or in an extension ("custom errors"), and wrap
them at runtime with contextual descriptions. Checking for an error class is
done with the Is method of the root error, which follows the whole cause
chain, so wrapping never hides the class from the caller.
*/
package errors
