/*
Package vault defines the common interfaces that tie together the packages
of a multi-party custodial vault: key value stores, messages and
transactions, handlers and decorators, conditions and addresses.

Funds held by a vault wallet are released only after a fixed set of owners
approved the transfer. See the x/multisig package for the wallet itself,
x/cash for the ledger that holds the balances and app for the message
driven application that hosts both.

Values are passed between the application, decorators and handlers through
a context.Context. See context.go for the keys defined here; each extension
may add its own.
*/
package vault
