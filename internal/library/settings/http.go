// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yuedu/internal/platform/request"
	"github.com/taibuivan/yuedu/internal/platform/respond"
)

// Handler implements the HTTP layer for reading preferences.
type Handler struct {
	service *Service
}

// NewHandler constructs a new settings [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the preference endpoints under /reading.
func (handler *Handler) RegisterRoutes(reading chi.Router) {
	reading.Get("/settings", handler.Get)
	reading.Patch("/settings", handler.Update)
}

/*
GET /api/v1/reading/settings.

Response:
  - 200: ReadingSettings
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

/*
PATCH /api/v1/reading/settings.

Request:
  - body: Patch (any subset of the fields)

Response:
  - 200: ReadingSettings (after the change)
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.Update(request.Context(), userID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}
