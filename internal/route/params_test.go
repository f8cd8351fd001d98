// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestReadStartDate(t *testing.T) {
	req := httptest.NewRequest("GET", "/foo?start=2020-04-01", nil)
	if v := ReadStartDate(req); !v.Equal(time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", v)
	}

	// missing param falls back to 90 days ago
	req = httptest.NewRequest("GET", "/foo", nil)
	v := ReadStartDate(req)
	if diff := time.Since(v.AddDate(0, 0, defaultHistoryDays)); diff > time.Minute {
		t.Errorf("got %v", v)
	}

	// garbage param falls back too
	req = httptest.NewRequest("GET", "/foo?start=yesterday", nil)
	v = ReadStartDate(req)
	if diff := time.Since(v.AddDate(0, 0, defaultHistoryDays)); diff > time.Minute {
		t.Errorf("got %v", v)
	}
}

func TestReadEndDate(t *testing.T) {
	req := httptest.NewRequest("GET", "/foo?end=2020-04-30", nil)
	if v := ReadEndDate(req); !v.Equal(time.Date(2020, time.April, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", v)
	}

	req = httptest.NewRequest("GET", "/foo", nil)
	if v := ReadEndDate(req); time.Since(v) > time.Minute {
		t.Errorf("got %v", v)
	}
}
