// Copyright (c) 2026 BoiBritto. All rights reserved.

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/ctxutil"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/respond"
)

/*
TestRespond_SuccessEnvelope verifies the exact success wire shape:
top-level success, message, and data keys.
*/
func TestRespond_SuccessEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.OK(recorder, "Profile fetched", map[string]string{"username": "rahim"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Profile fetched", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rahim", data["username"])
}

/*
TestRespond_ErrorEnvelope_Production verifies that error responses carry
only success:false and message — no debug block, no internal detail.
*/
func TestRespond_ErrorEnvelope_Production(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/collections/abc", nil)

	respond.Error(recorder, request, apperr.NotFound("Collection"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Collection not found", body["message"])
	assert.NotContains(t, body, "debug")
	assert.NotContains(t, body, "data")
}

/*
TestRespond_ErrorEnvelope_Debug verifies that development mode appends the
machine code and cause without changing the base envelope.
*/
func TestRespond_ErrorEnvelope_Debug(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil)
	request = request.WithContext(ctxutil.WithDebug(request.Context(), true))

	respond.Error(recorder, request, apperr.Unexpected(errors.New("pg: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, false, body["success"])
	assert.Equal(t, "An unexpected error occurred", body["message"])

	debug, ok := body["debug"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UNEXPECTED", debug["code"])
	assert.Equal(t, "pg: connection refused", debug["cause"])
}

/*
TestRespond_UnknownErrorsCollapse verifies that non-AppError values are
converted to the generic UNEXPECTED response.
*/
func TestRespond_UnknownErrorsCollapse(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/reading-list", nil)

	respond.Error(recorder, request, errors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body["message"])
}
