/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps a single configuration object under the "_c:<package>"
key. The object is loaded from the genesis file with InitConfig, validated
on every Save and read back with Load. An extension that cannot load its
configuration is not set up correctly and must refuse to process any
request.
*/
package gconf
