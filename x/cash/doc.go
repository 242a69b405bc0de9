/*
Package cash implements a minimal token ledger.

Every address owns a wallet holding a set of coins. Coins can be minted into
a wallet and moved between wallets. The Ledger type exposes the ledger to
other extensions (for example x/timelock), guarding the balance read and the
transfer with a mutex and honoring context cancellation.
*/
package cash
