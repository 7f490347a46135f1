// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yuedu/internal/platform/request"
	"github.com/taibuivan/yuedu/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the heartbeat protocol.
type Handler struct {
	service *Service
}

// NewHandler constructs a new progress [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the reading endpoints. The router must already
// require authentication.
func (handler *Handler) RegisterRoutes(reading chi.Router) {
	reading.Post("/heartbeat", handler.Heartbeat)
	reading.Post("/claim", handler.Claim)
	reading.Get("/stats", handler.Stats)
}

/*
POST /api/v1/reading/heartbeat.

Request:
  - body: HeartbeatRequest

Response:
  - 200: HeartbeatResult
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN: Private book of another user
  - 404: NOT_FOUND: Book does not exist
*/
func (handler *Handler) Heartbeat(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input HeartbeatRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Heartbeat(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/reading/claim.

Request:
  - body: ClaimRequest

Response:
  - 200: HeartbeatResult
*/
func (handler *Handler) Claim(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ClaimRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Claim(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/reading/stats.

Response:
  - 200: ReaderStats
*/
func (handler *Handler) Stats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
