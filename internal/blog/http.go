// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

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

// Handler exposes the blog and chapter endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a blog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the blog router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublic)
	router.Get("/me", handler.listOwn)
	router.Post("/", handler.createBlog)
	router.Get("/{id}", handler.getBlog)
	router.Patch("/{id}", handler.updateBlog)
	router.Delete("/{id}", handler.deleteBlog)

	return router
}

// ChapterRoutes returns the chapter router.
func (handler *Handler) ChapterRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createChapter)
	router.Get("/user/{userId}", handler.listChapters)
	router.Get("/{id}", handler.getChapter)
	router.Patch("/{id}", handler.updateChapter)
	router.Delete("/{id}", handler.deleteChapter)

	return router
}

// # Request Schemas

type blogRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	SpoilerAlert bool   `json:"spoilerAlert"`
	Visibility   string `json:"visibility"`
}

type updateBlogRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	SpoilerAlert *bool   `json:"spoilerAlert"`
	Visibility   *string `json:"visibility"`
}

type chapterRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	ChapterNumber int    `json:"chapterNumber"`
	SpoilerAlert  bool   `json:"spoilerAlert"`
	Visibility    string `json:"visibility"`
}

type updateChapterRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	ChapterNumber *int    `json:"chapterNumber"`
	SpoilerAlert  *bool   `json:"spoilerAlert"`
	Visibility    *string `json:"visibility"`
}

// # Blog Endpoints

func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	blogs, meta, err := handler.service.ListPublicBlogs(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Blogs fetched", blogs, meta)
}

func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	page := pagination.FromRequest(request)

	blogs, meta, err := handler.service.ListOwnBlogs(request.Context(), current.ID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Blogs fetched", blogs, meta)
}

func (handler *Handler) getBlog(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	entry, err := handler.service.GetBlog(request.Context(), current.ID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Blog fetched", entry)
}

func (handler *Handler) createBlog(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload blogRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.CreateBlog(request.Context(), current.ID, BlogInput{
		Title:        payload.Title,
		Content:      payload.Content,
		SpoilerAlert: payload.SpoilerAlert,
		Visibility:   visibility.Visibility(payload.Visibility),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Blog published", entry)
}

func (handler *Handler) updateBlog(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload updateBlogRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateBlogInput{
		Title:        payload.Title,
		Content:      payload.Content,
		SpoilerAlert: payload.SpoilerAlert,
	}
	if payload.Visibility != nil {
		input.Visibility = pointer.To(visibility.Visibility(*payload.Visibility))
	}

	entry, err := handler.service.UpdateBlog(request.Context(), current.ID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Blog updated", entry)
}

func (handler *Handler) deleteBlog(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	if err := handler.service.DeleteBlog(request.Context(), current.ID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Blog deleted", nil)
}

// # Chapter Endpoints

func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())
	authorID := requestutil.Param(request, "userId")
	page := pagination.FromRequest(request)

	chapters, meta, err := handler.service.ListChaptersByAuthor(request.Context(), current.ID, authorID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Chapters fetched", chapters, meta)
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	chapter, err := handler.service.GetChapter(request.Context(), current.ID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Chapter fetched", chapter)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload chapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.CreateChapter(request.Context(), current.ID, ChapterInput{
		Title:         payload.Title,
		Content:       payload.Content,
		ChapterNumber: payload.ChapterNumber,
		SpoilerAlert:  payload.SpoilerAlert,
		Visibility:    visibility.Visibility(payload.Visibility),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Chapter published", chapter)
}

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	var payload updateChapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateChapterInput{
		Title:         payload.Title,
		Content:       payload.Content,
		ChapterNumber: payload.ChapterNumber,
		SpoilerAlert:  payload.SpoilerAlert,
	}
	if payload.Visibility != nil {
		input.Visibility = pointer.To(visibility.Visibility(*payload.Visibility))
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), current.ID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Chapter updated", chapter)
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	current := user.FromContext(request.Context())

	if err := handler.service.DeleteChapter(request.Context(), current.ID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Chapter deleted", nil)
}
