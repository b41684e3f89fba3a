/*
Package errors implements the coded errors used across the vault.

Every error returned by the framework or an extension should wrap one of the
root errors declared with Register. A root error carries a unique numeric
code that can be returned to a client, while the wrapping layers add the
human readable context.

Declare package specific root errors with Register(code, description) during
the program startup. Reuse the errors of this package whenever they describe
the failure well enough.

Wrap and Wrapf attach a stack trace to the innermost error the first time an
error is wrapped. Format an error with %+v to print it.
	%s  the error message
	%v  the error message
	%+v the error message followed by the stack trace
*/
package errors
