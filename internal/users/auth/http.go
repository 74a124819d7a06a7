// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"path"
	"time"

	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/pipeline"
	requestutil "github.com/taibuivan/sixcities/internal/platform/request"
	"github.com/taibuivan/sixcities/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the /users endpoints.
type Handler struct {
	authService *Service
	uploadDir   string
}

// NewHandler constructs a new [Handler]. Avatars are stored in uploadDir.
func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{authService: service, uploadDir: uploadDir}
}

// Routes declares the /users endpoints.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Issues an access/refresh token pair.
//   - GET  /login    : Returns the caller (private).
//   - POST /logout   : Revokes the caller's tokens (private).
//   - POST /refresh  : Rotates a refresh token.
//   - POST /avatar   : Uploads the caller's avatar (private).
func (handler *Handler) Routes() []pipeline.Route {
	return []pipeline.Route{
		{Method: http.MethodPost, Path: "/register", Handler: handler.register},
		{Method: http.MethodPost, Path: "/login", Handler: handler.login},
		{
			Method:      http.MethodGet,
			Path:        "/login",
			Middlewares: []pipeline.Middleware{pipeline.PrivateRoute()},
			Handler:     handler.checkAuth,
		},
		{
			Method:      http.MethodPost,
			Path:        "/logout",
			Middlewares: []pipeline.Middleware{pipeline.PrivateRoute()},
			Handler:     handler.logout,
		},
		{Method: http.MethodPost, Path: "/refresh", Handler: handler.refresh},
		{
			Method: http.MethodPost,
			Path:   "/avatar",
			Middlewares: []pipeline.Middleware{
				pipeline.PrivateRoute(),
				pipeline.UploadFile(handler.uploadDir, FieldAvatar, AvatarContentTypes...),
			},
			Handler: handler.uploadAvatar,
		},
	}
}

// # Request Payloads

type registerRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Type     UserType `json:"type"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// # Response Payloads

type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user"`
}

func newSessionResponse(session *LoginSession) sessionResponse {
	return sessionResponse{
		AccessToken:  session.Tokens.AccessToken,
		RefreshToken: session.Tokens.RefreshToken,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    int64(time.Until(session.Tokens.AccessExpiresAt).Round(time.Second) / time.Second),
		User:         session.User,
	}
}

/*
Register handles the creation of a new user account.

POST /users/register

Request:
  - Body: registerRequest (Name, Email, Password, Type)

Response:
  - 201: User: Created user profile
  - 400: VALIDATION_ERROR: Bad input
  - 409: CONFLICT: Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) error {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		return err
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput(input))
	if err != nil {
		return err
	}

	respond.Created(writer, user)
	return nil
}

/*
Login authenticates a user and issues tokens.

POST /users/login

Response:
  - 200: sessionResponse
  - 401: UNAUTHORIZED: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) error {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		return err
	}

	session, err := handler.authService.Login(request.Context(), LoginInput(input))
	if err != nil {
		return err
	}

	respond.OK(writer, newSessionResponse(session))
	return nil
}

/*
CheckAuth returns the caller's account.

GET /users/login
*/
func (handler *Handler) checkAuth(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	user, err := handler.authService.CurrentUser(request.Context(), principal.ID)
	if err != nil {
		return err
	}

	respond.OK(writer, user)
	return nil
}

/*
Logout revokes the presented access token and an optional refresh token.

POST /users/logout

Request:
  - Body (optional): refreshRequest

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) error {
	var input refreshRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			return err
		}
	}

	claims := ctxutil.GetAuthUser(request.Context())
	token := ctxutil.GetToken(request.Context())

	if err := handler.authService.Logout(request.Context(), claims, token, input.RefreshToken); err != nil {
		return err
	}

	respond.NoContent(writer)
	return nil
}

/*
Refresh rotates a refresh token into a new token pair.

POST /users/refresh

Response:
  - 200: sessionResponse
  - 401: INVALID_TOKEN
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) error {
	var input refreshRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		return err
	}

	session, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		return err
	}

	respond.OK(writer, newSessionResponse(session))
	return nil
}

/*
UploadAvatar stores the uploaded image as the caller's avatar.

POST /users/avatar (multipart, field "avatar", jpg or png)

Response:
  - 201: User with the new avatar path
*/
func (handler *Handler) uploadAvatar(writer http.ResponseWriter, request *http.Request) error {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return err
	}

	file := pipeline.GetUploadedFile(request.Context())
	avatar := path.Join(constants.UploadRoutePrefix, file.Name)

	user, err := handler.authService.UpdateAvatar(request.Context(), principal.ID, avatar)
	if err != nil {
		return err
	}

	respond.Created(writer, user)
	return nil
}
