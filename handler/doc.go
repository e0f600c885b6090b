// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context (the request, its writer and its
// context.Context) plus a request value, left at its zero value, and returns
// a Response.
// Wrap turns it into an http.HandlerFunc, applying Decorators outermost
// first and routing render errors to an ErrorHandler.
//
//	process := func(ctx handler.Context, _ struct{}) handler.Response {
//		return handler.JSON(map[string]string{"message": "ok"})
//	}
//	r.Post("/", handler.Wrap(process, handler.WithDecorators(auth)))
//
// All bodies are JSON. Errors render as {"error": "..."}; HTTPError sets the
// status and client-visible message, everything else is a 500.
package handler
