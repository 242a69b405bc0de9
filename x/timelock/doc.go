/*
Package timelock implements a token custody vault that releases its funds to
a single beneficiary once a release time has passed.

A vault is bound to one asset, one beneficiary and one release time. Funds
are not accounted by the vault itself. Every vault owns a holding address
and its balance is always read live from the Ledger. Anyone may deposit by
moving funds to the holding address.

Only the beneficiary may postpone the release time (relock) and the release
time can never move earlier. Once the release time is reached, any caller
may trigger the release. The whole balance held at that moment is
transferred to the beneficiary.

Vault state is one of Locked, Releasable or Drained:

	Locked     -> Releasable  when now >= release time
	Releasable -> Drained     after a successful release

Relock and Release of a single vault are serialized by the Controller, so
two concurrent releases can never transfer the same funds twice and two
concurrent relocks can never both succeed using a stale release time.
*/
package timelock
