// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response across the entire application follows one strict JSON
// envelope: {"success": bool, "message": string, "data": object} on the
// success path, and {"success": false, "message": string} on the failure
// path, with a debug block appended only outside production configuration.
// This consistency is what the web client's fetch layer is built against.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/ctxutil"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for all successful responses.
type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ListData wraps paginated list payloads inside the success envelope's data.
type ListData struct {
	Items interface{}     `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Debug   *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo carries diagnostic detail that must never reach production
// clients. It is attached only when the request runs in development mode.
type DebugInfo struct {
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
	Cause   string              `json:"cause,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, message string, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, message string, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Success: true, Message: message, Data: data})
}

// Paginated writes a 200 response with items and pagination metadata.
func Paginated(writer http.ResponseWriter, message string, items interface{}, metadata pagination.Meta) {
	OK(writer, message, ListData{Items: items, Meta: metadata})
}

// Error converts any Go error into the standardized JSON API error envelope.
//
// # Flow
//
//  1. Unknown error types are wrapped as UNEXPECTED and logged in full.
//  2. 5xx responses are always logged with their cause.
//  3. The machine code, field details, and cause are attached as a debug
//     block only when the request context carries the development flag.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Unexpected(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := ErrorEnvelope{Success: false, Message: appError.Message}

	if ctxutil.IsDebug(request.Context()) {
		debug := &DebugInfo{Code: appError.Code, Details: appError.Details}
		if appError.Cause != nil {
			debug.Cause = appError.Cause.Error()
		}
		envelope.Debug = debug
	}

	JSON(writer, appError.HTTPStatus, envelope)
}
