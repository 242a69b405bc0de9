/*
Package sigs authenticates requests with ed25519 signatures.

Every signature is bound to a chain id and to the signer sequence number. The
sequence is stored per public key and incremented with every verified
signature, so a signed payload cannot be replayed. The Condition of a verified
key identifies the caller for operations that require authorization, for
example relocking a vault or moving funds out of a wallet.
*/
package sigs
