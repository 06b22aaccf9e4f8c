// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion

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

// Handler exposes the discussion and comment endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a discussion [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the discussion router. Comments live under their
// discussion except for deletion, which addresses the comment directly.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublic)
	router.Get("/me", handler.listOwn)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	router.Get("/{id}/comments", handler.listComments)
	router.Post("/{id}/comments", handler.addComment)
	router.Delete("/comments/{commentId}", handler.deleteComment)

	return router
}

// # Request Schemas

type discussionRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	SpoilerAlert bool   `json:"spoilerAlert"`
	Visibility   string `json:"visibility"`
}

type updateDiscussionRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	SpoilerAlert *bool   `json:"spoilerAlert"`
	Visibility   *string `json:"visibility"`
}

type commentRequest struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parentCommentId"`
}

// # Discussion Endpoints

func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	discussions, meta, err := handler.service.ListPublic(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Discussions fetched", discussions, meta)
}

func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	page := pagination.FromRequest(request)

	discussions, meta, err := handler.service.ListOwn(request.Context(), current.ID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Discussions fetched", discussions, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	thread, err := handler.service.Get(request.Context(), current.ID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Discussion fetched", thread)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload discussionRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	thread, err := handler.service.Create(request.Context(), current.ID, DiscussionInput{
		Title:        payload.Title,
		Content:      payload.Content,
		SpoilerAlert: payload.SpoilerAlert,
		Visibility:   visibility.Visibility(payload.Visibility),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Discussion started", thread)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload updateDiscussionRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{
		Title:        payload.Title,
		Content:      payload.Content,
		SpoilerAlert: payload.SpoilerAlert,
	}
	if payload.Visibility != nil {
		input.Visibility = pointer.To(visibility.Visibility(*payload.Visibility))
	}

	thread, err := handler.service.Update(request.Context(), current.ID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Discussion updated", thread)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	if err := handler.service.Delete(request.Context(), current.ID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Discussion deleted", nil)
}

// # Comment Endpoints

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	page := pagination.FromRequest(request)

	comments, meta, err := handler.service.ListComments(request.Context(), current.ID, requestutil.Param(request, "id"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Comments fetched", comments, meta)
}

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload commentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(), current.ID, requestutil.Param(request, "id"), CommentInput{
		Content:         payload.Content,
		ParentCommentID: payload.ParentCommentID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Comment posted", comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	if err := handler.service.DeleteComment(request.Context(), current.ID, requestutil.Param(request, "commentId")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comment deleted", nil)
}
