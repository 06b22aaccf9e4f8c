// Copyright (c) 2026 BoiBritto. All rights reserved.

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SillyCatto/boibritto-sub001/internal/identity"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	requestutil "github.com/SillyCatto/boibritto-sub001/internal/platform/request"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/respond"
)

// Handler exposes the auth and profile endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AuthRoutes returns the routes mounted under the identity-only policy.
// These run with a verified claim but no resolved application user.
func (handler *Handler) AuthRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)

	return router
}

// Routes returns the profile routes mounted under the full policy.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)
	router.Delete("/me", handler.deleteMe)
	router.Get("/{username}", handler.getByUsername)

	return router
}

// # Request Schemas

type signupRequest struct {
	Username         string   `json:"username"`
	Bio              string   `json:"bio"`
	InterestedGenres []string `json:"interestedGenres"`
}

type updateProfileRequest struct {
	DisplayName      *string   `json:"displayName"`
	AvatarURL        *string   `json:"avatarUrl"`
	Bio              *string   `json:"bio"`
	InterestedGenres *[]string `json:"interestedGenres"`
}

// # Auth Endpoints

// signup creates the application profile for a first-time identity.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	claim := identity.FromContext(request.Context())
	if claim == nil {
		respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
		return
	}

	var payload signupRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Signup(request.Context(), claim, SignupInput{
		Username:         payload.Username,
		Bio:              payload.Bio,
		InterestedGenres: payload.InterestedGenres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Signup successful", created)
}

// login exchanges a verified identity for the bound application user.
// An identity that never signed up gets USER_NOT_REGISTERED, which the
// client uses to route to the signup screen.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	claim := identity.FromContext(request.Context())
	if claim == nil {
		respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
		return
	}

	resolved, err := handler.service.ResolveBySubject(request.Context(), claim.Subject)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", resolved)
}

// # Profile Endpoints

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	current := FromContext(request.Context())
	respond.OK(writer, "Profile fetched", current)
}

func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	current := FromContext(request.Context())

	var payload updateProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateProfile(request.Context(), current.ID, UpdateInput{
		DisplayName:      payload.DisplayName,
		AvatarURL:        payload.AvatarURL,
		Bio:              payload.Bio,
		InterestedGenres: payload.InterestedGenres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile updated", updated)
}

func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	current := FromContext(request.Context())

	if err := handler.service.DeleteAccount(request.Context(), current.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Account deleted", nil)
}

func (handler *Handler) getByUsername(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	profile, err := handler.service.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile fetched", profile)
}
