// Package lazy provides the deferred-value cell every dataforge container
// stores its contents in.
//
// A Value is either materialized (built with Ready, the value is already
// known) or deferred (built with Defer, the value is produced by a function
// on first read). Both are read through Get. A deferred production function
// runs at most once per Value, even under concurrent reads; its result,
// including a failure, is cached for the lifetime of the Value. A production
// function that panics counts as a failure: the panic is recovered and every
// read reports it as a PRODUCER_PANICKED error.
package lazy

import (
	"sync"
	"sync/atomic"

	dferr "dataforge/pkg/error"
)

// Value is a read-once, cache-forever cell.
//
// A production function must not read the Value it is producing. Values
// reference only cells that existed when they were built, so a dataforge
// pipeline cannot form such a cycle.
type Value[T any] struct {
	once      sync.Once
	eval      func() (T, error)
	value     T
	err       error
	deferred  bool
	evaluated atomic.Bool
}

// Ready returns an already materialized Value.
func Ready[T any](v T) *Value[T] {
	lv := &Value[T]{value: v}
	lv.once.Do(func() {})
	lv.evaluated.Store(true)
	return lv
}

// Defer returns a Value whose contents are produced by fn on first read.
func Defer[T any](fn func() (T, error)) *Value[T] {
	return &Value[T]{eval: fn, deferred: true}
}

// Get returns the value, running the production function if this is the
// first read of a deferred Value.
func (v *Value[T]) Get() (T, error) {
	v.once.Do(v.run)
	return v.value, v.err
}

func (v *Value[T]) run() {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v.value = zero
			v.err = panicError(r)
		}
		v.eval = nil
		v.evaluated.Store(true)
	}()
	v.value, v.err = v.eval()
}

func panicError(r any) *dferr.DFError {
	e := dferr.Newf(dferr.ErrCategoryEvaluation, dferr.CodeProducerPanicked,
		"production function panicked: %v", r).In("Get", "lazy")
	if err, ok := r.(error); ok {
		e = e.Because(err)
	}
	return e
}

// Evaluated reports whether the contents are known, either because the
// Value was built materialized or because a read has already forced it.
func (v *Value[T]) Evaluated() bool {
	return v.evaluated.Load()
}

// Deferred reports whether the Value was built from a production function.
func (v *Value[T]) Deferred() bool {
	return v.deferred
}
