// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gocardless

import (
	"errors"
	"fmt"
)

// The aggregation API reports failures through a status code carried either
// as the HTTP status or a status_code field in the response body. Both feed
// through Failure so every call sees the same closed set of errors.
var (
	ErrInvalidInputData  = errors.New("invalid input data")
	ErrInvalidToken      = errors.New("invalid token")
	ErrAccessDenied      = errors.New("access denied")
	ErrNotFound          = errors.New("not found")
	ErrResourceSuspended = errors.New("resource suspended")
	ErrRateLimit         = errors.New("rate limit exceeded")
	ErrUnknown           = errors.New("unknown error")
	ErrServiceError      = errors.New("service error")
)

var statusErrors = map[int]error{
	400: ErrInvalidInputData,
	401: ErrInvalidToken,
	403: ErrAccessDenied,
	404: ErrNotFound,
	409: ErrResourceSuspended,
	429: ErrRateLimit,
	500: ErrUnknown,
	503: ErrServiceError,
}

// Failure maps a reported status code onto the error taxonomy. Codes without
// a mapping (including zero, which the API omits on success) are not errors.
func Failure(op string, code int) error {
	if err, ok := statusErrors[code]; ok {
		return fmt.Errorf("gocardless: %s: %w", op, err)
	}
	return nil
}
