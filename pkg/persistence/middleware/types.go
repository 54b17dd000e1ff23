package middleware

import "github.com/aretw0/arbor/pkg/ports"

// Middleware allows wrapping a StateStore to add behavior.
type Middleware func(ports.StateStore) ports.StateStore

// Chain wraps store with the given middlewares. The first middleware is the
// outermost: Chain(s, A, B) yields A(B(s)), so A sees every call first.
func Chain(store ports.StateStore, mws ...Middleware) ports.StateStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
