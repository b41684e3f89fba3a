// Package utils provides decorators shared by all vault applications:
// savepoints, logging and panic recovery.
package utils
