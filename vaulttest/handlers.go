package vaulttest

import "github.com/iov-one/vault"

// Handler is a mock implementation of the vault.Handler interface that
// returns preconfigured results and counts calls.
//
// When Write is set, every call stores WriteValue under WriteKey before
// returning, which allows to observe whether writes of a failed call were
// dropped.
type Handler struct {
	checkCall   int
	CheckResult vault.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult vault.DeliverResult
	DeliverErr    error

	// Panic if set makes every call panic with this value.
	Panic interface{}

	WriteKey   []byte
	WriteValue []byte
}

var _ vault.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	h.checkCall++
	if err := h.call(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	h.deliverCall++
	if err := h.call(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) call(db vault.KVStore) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.WriteKey != nil {
		return db.Set(h.WriteKey, h.WriteValue)
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
