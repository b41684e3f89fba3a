/*
Package multisig implements a custodial wallet controlled by a fixed set of
owners. Value leaves the wallet only through a transaction that was proposed
by an owner and approved by a strict majority of the owners.

A wallet goes through the following steps:

	create  -> the owner set and the approval threshold are validated and
	           fixed forever
	propose -> an owner registers a transfer, which counts as its approval
	approve -> other owners approve, each at most once
	execute -> anyone triggers the transfer once the threshold is reached

Execution marks the transaction as executed before the value is moved, and
the whole call is written to the store only if the transfer succeeds. A
transfer that calls back into the wallet sees the transaction as executed.

The package can be used directly through Factory and Wallet, or through the
messages routed by RegisterRoutes.
*/
package multisig
