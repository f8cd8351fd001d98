// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"net/http"
	"time"
)

const (
	queryDateFormat = "2006-01-02"

	// defaultHistoryDays is how far back transaction listings reach when
	// the request doesn't include a start date.
	defaultHistoryDays = 90
)

// ReadStartDate returns the "start" query parameter from an HTTP request,
// defaulting to 90 days before now when absent or unparsable.
func ReadStartDate(r *http.Request) time.Time {
	return readDateQueryParam(r, "start", time.Now().AddDate(0, 0, -defaultHistoryDays))
}

// ReadEndDate returns the "end" query parameter from an HTTP request,
// defaulting to now when absent or unparsable.
func ReadEndDate(r *http.Request) time.Time {
	return readDateQueryParam(r, "end", time.Now())
}

func readDateQueryParam(r *http.Request, param string, def time.Time) time.Time {
	if v := r.URL.Query().Get(param); v != "" {
		if t, err := time.Parse(queryDateFormat, v); err == nil {
			return t
		}
	}
	return def
}
