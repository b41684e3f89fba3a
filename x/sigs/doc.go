/*
Package sigs provides basic authentication middleware to verify the
signatures on the transaction, and maintain nonces for replay protection.

Every signature carries the sequence (nonce) of its signer. A signature is
only accepted if its sequence equals the one stored for the signer, which is
incremented on every accepted signature. A signed transaction can therefore
never be processed twice.
*/
package sigs
