package chain

import "net/http"

// Handler is an http.HandlerFunc that can also return an error. The error
// is propagated back through the middleware stack to the terminating
// middleware, which decides how to report it.
type Handler func(http.ResponseWriter, *http.Request) error

// Middleware wraps a Handler with additional behaviour.
type Middleware func(Handler) Handler

// TerminatingMiddleware sits at the root of a chain and converts it into a
// plain http.HandlerFunc, consuming any error the chain produced.
type TerminatingMiddleware func(Handler) http.HandlerFunc

// Chain is an immutable stack of middleware rooted at a terminating
// middleware. Add returns a new chain, so a partially built chain can be
// shared and extended per route.
type Chain struct {
	terminator  TerminatingMiddleware
	middlewares []Middleware
}

func New(terminator TerminatingMiddleware) Chain {
	return Chain{terminator: terminator}
}

func (c Chain) Add(m Middleware) Chain {
	middlewares := make([]Middleware, len(c.middlewares), len(c.middlewares)+1)
	copy(middlewares, c.middlewares)
	return Chain{terminator: c.terminator, middlewares: append(middlewares, m)}
}

// ToMiddleware collapses the chain's middleware into a single middleware,
// wrapped in the terminator.
func (c Chain) ToMiddleware() func(Handler) http.HandlerFunc {
	return func(h Handler) http.HandlerFunc {
		for i := len(c.middlewares) - 1; i >= 0; i-- {
			h = c.middlewares[i](h)
		}
		return c.terminator(h)
	}
}

// Resolve terminates the chain with the given handler, producing a
// function suitable for registration with a mux router.
func (c Chain) Resolve(h Handler) http.HandlerFunc {
	return c.ToMiddleware()(h)
}
