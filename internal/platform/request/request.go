// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and common body decoding
patterns, so handlers report malformed input with the same error shape.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
	"github.com/taibuivan/yuedu/internal/platform/ctxutil"
	"github.com/taibuivan/yuedu/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Int64Param retrieves a named URL parameter and parses it as a positive ID.

Returns:
  - int64: The parsed identifier
  - error: VALIDATION_ERROR naming the parameter when it is not a positive integer
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.FieldErr(name, "Must be a positive integer")
	}
	return id, nil
}

/*
QueryInt64 parses an optional integer query parameter.

Returns:
  - *int64: nil when the parameter is absent or blank
  - error: VALIDATION_ERROR when it is present but not an integer
*/
func QueryInt64(request *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, validate.FieldErr(name, "Must be an integer")
	}
	return &value, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User identifier from the access token
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil || claims.UserID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return claims.UserID, nil
}
