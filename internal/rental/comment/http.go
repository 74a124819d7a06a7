// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/taibuivan/sixcities/internal/platform/pipeline"
	requestutil "github.com/taibuivan/sixcities/internal/platform/request"
	"github.com/taibuivan/sixcities/internal/platform/respond"
)

const paramOfferID = "offerId"

// Handler implements the /comments endpoints.
type Handler struct {
	service *Service
	offers  pipeline.ExistenceChecker
}

// NewHandler constructs a comment [Handler]. offers answers whether the
// offer in the path exists.
func NewHandler(service *Service, offers pipeline.ExistenceChecker) *Handler {
	return &Handler{service: service, offers: offers}
}

// Routes declares the /comments endpoints.
//
// # Endpoints
//   - GET  /{offerId} : Newest comments of the offer (public).
//   - POST /{offerId} : Add a comment (private).
func (handler *Handler) Routes() []pipeline.Route {
	return []pipeline.Route{
		{
			Method: http.MethodGet,
			Path:   "/{offerId}",
			Middlewares: []pipeline.Middleware{
				pipeline.ValidateID(paramOfferID),
				pipeline.DocumentExists(handler.offers, "Offer", paramOfferID),
			},
			Handler: handler.list,
		},
		{
			Method: http.MethodPost,
			Path:   "/{offerId}",
			Middlewares: []pipeline.Middleware{
				pipeline.PrivateRoute(),
				pipeline.ValidateID(paramOfferID),
				pipeline.DocumentExists(handler.offers, "Offer", paramOfferID),
			},
			Handler: handler.create,
		},
	}
}

/*
GET /comments/{offerId}

Response:
  - 200: []Comment, newest first
  - 404: NOT_FOUND
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) error {
	comments, err := handler.service.List(request.Context(), requestutil.Param(request, paramOfferID))
	if err != nil {
		return err
	}

	respond.OK(writer, comments)
	return nil
}

/*
POST /comments/{offerId}

Request:
  - Body: Input (text 5..1024, rating 1..5)

Response:
  - 201: Comment
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		return err
	}

	comment, err := handler.service.Create(request.Context(), principal.ID, requestutil.Param(request, paramOfferID), input)
	if err != nil {
		return err
	}

	respond.Created(writer, comment)
	return nil
}
