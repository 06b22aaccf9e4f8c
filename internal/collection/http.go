// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/SillyCatto/boibritto-sub001/internal/platform/request"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/respond"
	"github.com/SillyCatto/boibritto-sub001/internal/user"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
	"github.com/SillyCatto/boibritto-sub001/pkg/pointer"
)

// Handler exposes the collection endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a collection [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the collection router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listOwn)
	router.Post("/", handler.create)
	router.Get("/user/{userId}", handler.listByUser)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.patch)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Schemas

type createCollectionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Visibility  string   `json:"visibility"`
}

// patchCollectionRequest combines the structural book operations with
// ordinary metadata edits.
type patchCollectionRequest struct {
	AddBook     *string   `json:"addBook"`
	RemoveBook  *string   `json:"removeBook"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Visibility  *string   `json:"visibility"`
}

// # Endpoints

func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	page := pagination.FromRequest(request)

	collections, meta, err := handler.service.ListOwn(request.Context(), current.ID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Collections fetched", collections, meta)
}

func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	ownerID := requestutil.Param(request, "userId")
	page := pagination.FromRequest(request)

	collections, meta, err := handler.service.ListPublicByUser(request.Context(), ownerID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Collections fetched", collections, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	collectionID := requestutil.Param(request, "id")

	collection, err := handler.service.Get(request.Context(), current.ID, collectionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Collection fetched", collection)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload createCollectionRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.Create(request.Context(), current.ID, CreateInput{
		Title:       payload.Title,
		Description: payload.Description,
		Tags:        payload.Tags,
		Visibility:  visibility.Visibility(payload.Visibility),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Collection created", collection)
}

func (handler *Handler) patch(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	collectionID := requestutil.Param(request, "id")

	var payload patchCollectionRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := Patch{
		AddBook:     payload.AddBook,
		RemoveBook:  payload.RemoveBook,
		Title:       payload.Title,
		Description: payload.Description,
		Tags:        payload.Tags,
	}
	if payload.Visibility != nil {
		patch.Visibility = pointer.To(visibility.Visibility(*payload.Visibility))
	}

	collection, err := handler.service.ApplyPatch(request.Context(), current.ID, collectionID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Collection updated", collection)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	collectionID := requestutil.Param(request, "id")

	if err := handler.service.Delete(request.Context(), current.ID, collectionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Collection deleted", nil)
}
