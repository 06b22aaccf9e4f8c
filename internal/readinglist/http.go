// Copyright (c) 2026 BoiBritto. All rights reserved.

package readinglist

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/SillyCatto/boibritto-sub001/internal/platform/request"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/respond"
	"github.com/SillyCatto/boibritto-sub001/internal/user"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
	"github.com/SillyCatto/boibritto-sub001/pkg/pointer"
)

// Handler exposes the reading-list endpoints over HTTP. All routes run
// under the full authorization policy, so a resolved user is always
// present in the context.
type Handler struct {
	service *Service
}

// NewHandler constructs a reading-list [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the reading-list router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listOwn)
	router.Post("/", handler.create)
	router.Get("/user/{userId}", handler.listByUser)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Schemas

type createItemRequest struct {
	VolumeID    string     `json:"volumeId"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Visibility  string     `json:"visibility"`
}

type updateItemRequest struct {
	Status      *string                  `json:"status"`
	StartedAt   requestutil.OptionalTime `json:"startedAt"`
	CompletedAt requestutil.OptionalTime `json:"completedAt"`
	Visibility  *string                  `json:"visibility"`
}

// # Endpoints

func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	page := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get("status"))

	items, meta, err := handler.service.ListOwn(request.Context(), current.ID, status, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Reading list fetched", items, meta)
}

func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	ownerID := requestutil.Param(request, "userId")
	page := pagination.FromRequest(request)

	items, meta, err := handler.service.ListPublicByUser(request.Context(), ownerID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Reading list fetched", items, meta)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload createItemRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), current.ID, CreateInput{
		VolumeID:    payload.VolumeID,
		Status:      Status(payload.Status),
		StartedAt:   payload.StartedAt,
		CompletedAt: payload.CompletedAt,
		Visibility:  visibility.Visibility(payload.Visibility),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Volume added to reading list", item)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	itemID := requestutil.Param(request, "id")

	var payload updateItemRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{}
	if payload.StartedAt.Defined {
		input.StartedAt = &payload.StartedAt.Value
	}
	if payload.CompletedAt.Defined {
		input.CompletedAt = &payload.CompletedAt.Value
	}
	if payload.Status != nil {
		input.Status = pointer.To(Status(*payload.Status))
	}
	if payload.Visibility != nil {
		input.Visibility = pointer.To(visibility.Visibility(*payload.Visibility))
	}

	item, err := handler.service.Update(request.Context(), current.ID, itemID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Reading list item updated", item)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	itemID := requestutil.Param(request, "id")

	if err := handler.service.Delete(request.Context(), current.ID, itemID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Reading list item removed", nil)
}
