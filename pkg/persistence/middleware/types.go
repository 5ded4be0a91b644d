package middleware

import "github.com/aretw0/kwargs/pkg/ports"

// Middleware allows wrapping a DictStore to add behavior.
type Middleware func(ports.DictStore) ports.DictStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.DictStore, mws ...Middleware) ports.DictStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
