/*
Package cash is the custodial ledger of the vault.

It keeps a set of coins per address and moves value between addresses. The
balance of any currency may never go below zero. Multisig wallets hold
their funds on a custodial address in this ledger, and use the Controller to
release them.
*/
package cash
