// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr classifies the errors which are returned by the use
// cases to their clients. A classified error wraps the original error
// and carries the HTTP status code which the restful adapters should
// report, so use cases may remain independent of the transport layer
// while still choosing between a client mistake and a server failure.
// Errors which are not wrapped by this package are reported as
// internal server errors.
package cerr

import (
	"fmt"
	"net/http"
)

// Error wraps Err error and reports it with HTTPStatusCode status.
type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest classifies err as an invalid input.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// NotFound classifies err as a missing entity.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict classifies err as a request which is not acceptable in the
// current state, such as asking for a route snapshot while no
// navigation session is active.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// BadGateway classifies err as a failure of an upstream service, such
// as the routing service.
func BadGateway(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadGateway}
}
