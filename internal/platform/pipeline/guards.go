// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pipeline

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

// # Access

// PrivateRoute rejects anonymous requests.
//
// The principal is attached by the global authenticate middleware; this
// guard only checks that one is present.
func PrivateRoute() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) error {
			if ctxutil.GetPrincipal(request.Context()) == nil {
				return apperr.Unauthorized("Unauthorized").WithComponent("private_route")
			}
			return next(writer, request)
		}
	}
}

// # Path Parameters

// ValidateID rejects a path parameter that is not a well-formed id.
//
// Must precede [DocumentExists] on the same parameter.
func ValidateID(param string) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) error {
			id := chi.URLParam(request, param)
			if !uuid.Valid(id) {
				return apperr.BadRequest(fmt.Sprintf("%s is invalid id", id)).WithComponent("validate_id")
			}
			return next(writer, request)
		}
	}
}

// ExistenceChecker answers whether a record with the given id exists.
type ExistenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// DocumentExists rejects requests whose path parameter names a missing record.
//
// kind is the resource name used in the 404 message, e.g. "Offer".
func DocumentExists(checker ExistenceChecker, kind, param string) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) error {
			id := chi.URLParam(request, param)

			found, err := checker.Exists(request.Context(), id)
			if err != nil {
				if appError := apperr.As(err); appError != nil {
					return err
				}
				return apperr.Storage(err).WithComponent("document_exists")
			}

			if !found {
				return apperr.DocumentNotFound(kind, id).WithComponent("document_exists")
			}

			return next(writer, request)
		}
	}
}
