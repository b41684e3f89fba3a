/*
Package x contains the standard extensions of the vault engine.

Extensions implement common functionality (Handler, Decorator, Initializer)
and are combined together by the app package into a single message driven
service. This package holds the helpers shared by all of them: the
Authenticator abstraction that exposes who signed a transaction, and
validation and serialization shortcuts.
*/
package x
