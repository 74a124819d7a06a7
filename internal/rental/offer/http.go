// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package offer

import (
	"net/http"
	"path"

	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/pipeline"
	requestutil "github.com/taibuivan/sixcities/internal/platform/request"
	"github.com/taibuivan/sixcities/internal/platform/respond"
	"github.com/taibuivan/sixcities/pkg/pagination"
)

// paramOfferID is the path parameter carrying an offer id.
const paramOfferID = "offerId"

// # Handler Implementation

// Handler implements the /offers endpoints.
type Handler struct {
	service   *Service
	uploadDir string
}

// NewHandler constructs a new offer [Handler]. Previews are stored in uploadDir.
func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

// Routes declares the /offers endpoints.
//
// # Endpoints
//   - GET    /                      : Paginated list (public).
//   - POST   /                      : Create (private).
//   - GET    /premium/{city}        : Premium offers of a city (public).
//   - GET    /favorites             : Caller's favorites (private).
//   - POST   /favorites/{offerId}   : Add favorite (private).
//   - DELETE /favorites/{offerId}   : Remove favorite (private).
//   - GET    /{offerId}             : Details (public).
//   - PATCH  /{offerId}             : Partial update (owner).
//   - DELETE /{offerId}             : Delete with comments (owner).
//   - POST   /{offerId}/preview     : Upload preview image (owner).
func (handler *Handler) Routes() []pipeline.Route {
	existing := []pipeline.Middleware{
		pipeline.ValidateID(paramOfferID),
		pipeline.DocumentExists(handler.service, "Offer", paramOfferID),
	}
	private := func(guards ...pipeline.Middleware) []pipeline.Middleware {
		return append([]pipeline.Middleware{pipeline.PrivateRoute()}, guards...)
	}

	return []pipeline.Route{
		{Method: http.MethodGet, Path: "/", Handler: handler.list},
		{Method: http.MethodPost, Path: "/", Middlewares: private(), Handler: handler.create},
		{Method: http.MethodGet, Path: "/premium/{city}", Handler: handler.premium},

		{Method: http.MethodGet, Path: "/favorites", Middlewares: private(), Handler: handler.favorites},
		{Method: http.MethodPost, Path: "/favorites/{offerId}", Middlewares: private(existing...), Handler: handler.addFavorite},
		{Method: http.MethodDelete, Path: "/favorites/{offerId}", Middlewares: private(existing...), Handler: handler.removeFavorite},

		{Method: http.MethodGet, Path: "/{offerId}", Middlewares: existing, Handler: handler.show},
		{Method: http.MethodPatch, Path: "/{offerId}", Middlewares: private(existing...), Handler: handler.update},
		{Method: http.MethodDelete, Path: "/{offerId}", Middlewares: private(existing...), Handler: handler.remove},
		{
			Method: http.MethodPost,
			Path:   "/{offerId}/preview",
			Middlewares: private(append(existing,
				pipeline.UploadFile(handler.uploadDir, FieldPreview, PreviewContentTypes...),
			)...),
			Handler: handler.uploadPreview,
		},
	}
}

// # Discovery

/*
GET /offers

Request:
  - page: int
  - limit: int

Response:
  - 200: []Summary with pagination meta, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) error {
	params := pagination.FromRequest(request)

	offers, total, err := handler.service.List(request.Context(), requestutil.OptionalUserID(request), params)
	if err != nil {
		return err
	}

	respond.Paginated(writer, offers, pagination.NewMeta(params.Page, params.Limit, total))
	return nil
}

/*
GET /offers/{offerId}

Response:
  - 200: Offer
  - 400: BAD_REQUEST: malformed id
  - 404: NOT_FOUND
*/
func (handler *Handler) show(writer http.ResponseWriter, request *http.Request) error {
	offer, err := handler.service.Get(request.Context(), requestutil.Param(request, paramOfferID), requestutil.OptionalUserID(request))
	if err != nil {
		return err
	}

	respond.OK(writer, offer)
	return nil
}

// GET /offers/premium/{city}
func (handler *Handler) premium(writer http.ResponseWriter, request *http.Request) error {
	offers, err := handler.service.Premium(request.Context(), requestutil.Param(request, "city"), requestutil.OptionalUserID(request))
	if err != nil {
		return err
	}

	respond.OK(writer, offers)
	return nil
}

// # Management

/*
POST /offers

Request:
  - Body: Input

Response:
  - 201: Offer
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

	offer, err := handler.service.Create(request.Context(), principal.ID, input)
	if err != nil {
		return err
	}

	respond.Created(writer, offer)
	return nil
}

/*
PATCH /offers/{offerId}

Request:
  - Body: Patch (any subset of fields)

Response:
  - 200: Offer
  - 403: FORBIDDEN: caller is not the owner
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	var patch Patch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		return err
	}

	offer, err := handler.service.Update(request.Context(), principal.ID, requestutil.Param(request, paramOfferID), patch)
	if err != nil {
		return err
	}

	respond.OK(writer, offer)
	return nil
}

/*
DELETE /offers/{offerId}

Response:
  - 204: No Content
  - 403: FORBIDDEN: caller is not the owner
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	if err := handler.service.Delete(request.Context(), principal.ID, requestutil.Param(request, paramOfferID)); err != nil {
		return err
	}

	respond.NoContent(writer)
	return nil
}

/*
POST /offers/{offerId}/preview (multipart, field "preview", jpg or png)

Response:
  - 201: Offer with the new preview path
  - 403: FORBIDDEN: caller is not the owner
*/
func (handler *Handler) uploadPreview(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	file := pipeline.GetUploadedFile(request.Context())
	preview := path.Join(constants.UploadRoutePrefix, file.Name)

	offer, err := handler.service.UpdatePreview(request.Context(), principal.ID, requestutil.Param(request, paramOfferID), preview)
	if err != nil {
		return err
	}

	respond.Created(writer, offer)
	return nil
}

// # Favorites

// GET /offers/favorites
func (handler *Handler) favorites(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	offers, err := handler.service.Favorites(request.Context(), principal.ID)
	if err != nil {
		return err
	}

	respond.OK(writer, offers)
	return nil
}

// POST /offers/favorites/{offerId}
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	if err := handler.service.AddFavorite(request.Context(), principal.ID, requestutil.Param(request, paramOfferID)); err != nil {
		return err
	}

	respond.NoContent(writer)
	return nil
}

// DELETE /offers/favorites/{offerId}
func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	if err := handler.service.RemoveFavorite(request.Context(), principal.ID, requestutil.Param(request, paramOfferID)); err != nil {
		return err
	}

	respond.NoContent(writer)
	return nil
}
