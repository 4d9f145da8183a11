// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tranminhvu/taskhive/internal/platform/constants"
	"github.com/tranminhvu/taskhive/internal/platform/middleware"
	requestutil "github.com/tranminhvu/taskhive/internal/platform/request"
	"github.com/tranminhvu/taskhive/internal/platform/respond"
	"github.com/tranminhvu/taskhive/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Password Reset callbacks).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and returns a JWT.
//   - POST /login    : Authenticates and returns a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /auth/register

Description: Validates input (including the full password strength policy),
checks for identity conflicts, persists a new user profile, and returns a
signed access token so the member is logged in immediately.

Request:
  - Body: registerRequest (Name, Email, Password)

Response:
  - 201: AuthSession: Access token and created user profile
  - 400: ErrInvalidJSON: Bad input, weak password, or duplicate email
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookie(writer, session.AccessToken)

	respond.Created(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldSuccess:     true,
		FieldUser:        session.User,
	})
}

/*
Login authenticates a user and issues an access token.

POST /auth/login

Description: Verifies credentials, generates a JWT access token, and mirrors
it into a secure cookie for browser clients.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: AuthSession: Access token and User profile
  - 404: ErrNotFound: No account with this email
  - 401: ErrUnauthorized: Wrong password
  - 400: InsecureCredential: Stored credential predates hashed storage
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookie(writer, session.AccessToken)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldSuccess:     true,
		FieldUser:        session.User,
	})
}

/*
Logout terminates the current browser session.

POST /auth/logout

Description: The JWT itself stays valid until expiry (no server-side
revocation), so logout amounts to clearing the mirrored cookie.

Response:
  - 200: Success: Session terminated
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AuthTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, map[string]any{
		FieldMessage: "Logged out successfully",
		FieldSuccess: true,
	})
}

/*
ForgotPassword initiates the password recovery flow.

POST /auth/forgot-password

Description: Stores a one-time reset token if the account exists. The response
is identical either way to prevent user enumeration.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Success: Reset link sent (or generic security message)
  - 400: ErrInvalidJSON: Invalid email format
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.authService.RequestPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "If this email is registered, a reset link has been sent.",
	})
}

/*
ResetPassword completes the password recovery flow.

POST /auth/reset-password

Description: Validates the reset token and updates the user's password. This
is the prescribed path for accounts rejected with INSECURE_CREDENTIAL at login.

Request:
  - Body: resetPasswordRequest (Token, Password)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Bad token or weak password
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}

// setAuthCookie mirrors the access token into a secure cookie so browser
// clients survive reloads. API clients keep using the Authorization header.
func setAuthCookie(writer http.ResponseWriter, accessToken string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AuthTokenCookieName,
		Value:    accessToken,
		Path:     "/",
		Expires:  time.Now().Add(AccessTokenTTL),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
