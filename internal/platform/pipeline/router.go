// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pipeline runs every API request through an ordered chain of guards
before the handler.

A controller declares its routes as data. Each [Route] carries its own
middleware list; the [Router] composes that list around the handler and
registers the result on the chi mux.

Execution rules:

  - Middlewares run strictly in declaration order.
  - The first middleware or handler that returns an error stops the chain.
  - The error is passed unchanged to respond.Error, the only translator.
  - A panic anywhere in the chain becomes an INTERNAL_ERROR response.
*/
package pipeline

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"runtime"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/respond"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error
// instead of writing it.
type HandlerFunc func(writer http.ResponseWriter, request *http.Request) error

// Middleware wraps a [HandlerFunc]. Returning an error without calling next
// short-circuits the chain.
type Middleware func(next HandlerFunc) HandlerFunc

// Route is the declaration of one endpoint.
type Route struct {
	Method      string
	Path        string
	Middlewares []Middleware
	Handler     HandlerFunc
}

// Controller is implemented by every HTTP module.
type Controller interface {
	Routes() []Route
}

// Router mounts controllers on a chi mux.
type Router struct {
	mux    chi.Router
	logger *slog.Logger
}

// NewRouter wraps mux.
func NewRouter(mux chi.Router, logger *slog.Logger) *Router {
	return &Router{mux: mux, logger: logger}
}

// Mount registers every route of controller below prefix, in declaration order.
func (router *Router) Mount(prefix string, controller Controller) {
	router.mux.Route(prefix, func(sub chi.Router) {
		for _, route := range controller.Routes() {
			sub.Method(route.Method, route.Path, Handler(route))

			router.logger.Info("route_registered",
				slog.String("method", route.Method),
				slog.String("path", path.Join(prefix, route.Path)),
			)
		}
	})
}

// Handler composes the route's middlewares around its handler and adapts the
// result to [http.Handler].
func Handler(route Route) http.Handler {
	chain := Chain(route.Handler, route.Middlewares...)

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stackTrace := make([]byte, 2048)
				length := runtime.Stack(stackTrace, false)
				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "pipeline_panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(stackTrace[:length])),
				)

				respond.Error(writer, request, panicError(recovered))
			}
		}()

		if err := chain(writer, request); err != nil {
			respond.Error(writer, request, err)
		}
	})
}

// Chain applies middlewares so that middlewares[0] runs first.
func Chain(handler HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// panicError converts a recovered value into an Internal [apperr.AppError].
func panicError(recovered any) *apperr.AppError {
	cause, ok := recovered.(error)
	if !ok {
		cause = fmt.Errorf("%v", recovered)
	}
	return apperr.Internal(fmt.Errorf("pipeline: panic: %w", cause)).WithComponent("pipeline")
}
