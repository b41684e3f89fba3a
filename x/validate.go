package x

// Validater is implemented by every message and stored model. Validate
// checks the object in isolation, without access to the store.
type Validater interface {
	Validate() error
}
