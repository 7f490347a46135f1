// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
	"github.com/taibuivan/yuedu/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/yuedu/internal/platform/request"
	"github.com/taibuivan/yuedu/internal/platform/respond"
	"github.com/taibuivan/yuedu/internal/platform/validate"
	"github.com/taibuivan/yuedu/pkg/pagination"
)

const (
	paramBookID    = "bookID"
	paramChapterID = "chapterID"

	// multipartOverhead covers the text fields and boundaries around the file.
	multipartOverhead = 64 << 10

	// multipartMemory is kept in memory before parts spill to disk.
	multipartMemory = 8 << 20
)

// # Handler Implementation

// Handler implements the HTTP layer for the book library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the library endpoints. The router must already
// require authentication.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/books", func(books chi.Router) {
		books.Post("/", handler.Upload)
		books.Get("/", handler.List)
		books.Get("/public", handler.ListPublic)
		books.Get("/random", handler.RandomPublic)

		books.Route("/{bookID}", func(book chi.Router) {
			book.Get("/", handler.Detail)
			book.Patch("/", handler.Update)
			book.Delete("/", handler.Delete)
			book.Get("/content", handler.Content)
			book.Get("/chapters/{chapterID}/jump", handler.JumpToChapter)
		})
	})
}

/*
POST /api/v1/books.

Request:
  - multipart/form-data: title, author, is_public, file (.txt)

Response:
  - 201: UploadResult
  - 400: VALIDATION_ERROR
  - 413: PAYLOAD_TOO_LARGE
  - 415: UNSUPPORTED_MEDIA_TYPE: Body is not multipart
*/
func (handler *Handler) Upload(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := handler.readUpload(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		input.OwnerName = claims.Username
	}

	result, err := handler.service.Upload(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

// readUpload parses the multipart form within the upload limit.
func (handler *Handler) readUpload(writer http.ResponseWriter, request *http.Request) (UploadInput, error) {
	limit := handler.service.options.MaxUploadBytes
	request.Body = http.MaxBytesReader(writer, request.Body, limit+multipartOverhead)

	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		return UploadInput{}, uploadError(err, limit)
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	input := UploadInput{
		Title:    request.FormValue(FieldTitle),
		Author:   request.FormValue(FieldAuthor),
		IsPublic: parseFormBool(request.FormValue("is_public")),
	}

	file, header, err := request.FormFile(FieldFile)
	if errors.Is(err, http.ErrMissingFile) {
		// Service validation reports the missing file with the other fields
		return input, nil
	}
	if err != nil {
		return UploadInput{}, uploadError(err, limit)
	}
	defer file.Close()

	if header.Size > limit {
		return UploadInput{}, apperr.PayloadTooLarge(limit)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return UploadInput{}, uploadError(err, limit)
	}

	input.FileName = header.Filename
	input.Data = data
	return input, nil
}

func uploadError(err error, limit int64) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return apperr.PayloadTooLarge(limit)
	case errors.Is(err, http.ErrNotMultipart):
		return apperr.UnsupportedMedia("Expected multipart/form-data")
	default:
		return apperr.ValidationError(fmt.Sprintf("Malformed upload: %v", err))
	}
}

// parseFormBool accepts the checkbox spellings browsers and scripts send.
func parseFormBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}

/*
GET /api/v1/books.

Request:
  - query: page, limit

Response:
  - 200: []ShelfItem with pagination meta
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	items, total, err := handler.service.List(request.Context(), userID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

// ListPublic handles GET /api/v1/books/public.
func (handler *Handler) ListPublic(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	books, total, err := handler.service.ListPublic(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(page.Page, page.Limit, total))
}

// RandomPublic handles GET /api/v1/books/random?count=.
func (handler *Handler) RandomPublic(writer http.ResponseWriter, request *http.Request) {
	count := 1
	if raw := request.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.FieldErr("count", "Must be an integer"))
			return
		}
		count = parsed
	}

	books, err := handler.service.RandomPublic(request.Context(), count)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

/*
GET /api/v1/books/{bookID}.

Response:
  - 200: Detail
  - 403: FORBIDDEN: Private book of another user
  - 404: NOT_FOUND
*/
func (handler *Handler) Detail(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := handler.identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Detail(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
GET /api/v1/books/{bookID}/content.

Request:
  - query: position (characters, default 0), length (default 4000)

Response:
  - 200: Content
  - 400: VALIDATION_ERROR: Position past the end of the book
*/
func (handler *Handler) Content(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := handler.identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	position, err := requestutil.QueryInt64(request, FieldPosition)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	length, err := requestutil.QueryInt64(request, "length")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	content, err := handler.service.Content(request.Context(), userID, bookID, position, length)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, content)
}

// JumpToChapter handles GET /api/v1/books/{bookID}/chapters/{chapterID}/jump.
func (handler *Handler) JumpToChapter(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := handler.identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapterID, err := requestutil.Int64Param(request, paramChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.JumpToChapter(request.Context(), userID, bookID, chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
PATCH /api/v1/books/{bookID}.

Request:
  - body: UpdateInput

Response:
  - 200: Book
  - 403: FORBIDDEN: Caller is not the owner
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := handler.identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Update(request.Context(), userID, bookID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// Delete handles DELETE /api/v1/books/{bookID}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := handler.identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// identify returns the caller and the book in the URL.
func (handler *Handler) identify(request *http.Request) (string, int64, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return "", 0, err
	}

	bookID, err := requestutil.Int64Param(request, paramBookID)
	if err != nil {
		return "", 0, err
	}
	return userID, bookID, nil
}
