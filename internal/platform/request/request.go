// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are rejected rather than silently ignored: every endpoint
owns an explicit request schema, and a payload carrying fields outside it
is a client error.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// OptionalTime distinguishes an absent JSON field from an explicit null.
//
// A plain pointer cannot make that distinction: encoding/json collapses
// both cases to nil. PATCH payloads use this type where "clear this
// date" and "leave this date alone" must mean different things.
type OptionalTime struct {
	// Defined is true when the field appeared in the payload at all.
	Defined bool
	// Value is nil when the field was null, otherwise the parsed time.
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the field
// is present, which is what makes [OptionalTime.Defined] reliable.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Defined = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
