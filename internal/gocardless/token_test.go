// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gocardless

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTokenCache__singleFlight(t *testing.T) {
	var cache tokenCache
	var fetches int32

	fetch := func() (string, error) {
		atomic.AddInt32(&fetches, 1)
		time.Sleep(25 * time.Millisecond) // hold the flight open so callers pile up
		return "token-abc", nil
	}

	const n = 25
	var wg sync.WaitGroup
	tokens := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = cache.Token(fetch)
		}(i)
	}
	wg.Wait()

	if v := atomic.LoadInt32(&fetches); v != 1 {
		t.Errorf("expected one fetch, got %d", v)
	}
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatal(errs[i])
		}
		if tokens[i] != "token-abc" {
			t.Errorf("caller %d got %q", i, tokens[i])
		}
	}

	// cached for the rest of the process
	if token, err := cache.Token(fetch); err != nil || token != "token-abc" {
		t.Errorf("got %q (%v)", token, err)
	}
	if v := atomic.LoadInt32(&fetches); v != 1 {
		t.Errorf("expected cache hit, got %d fetches", v)
	}
}

func TestTokenCache__fetchError(t *testing.T) {
	var cache tokenCache

	want := errors.New("boom")
	if _, err := cache.Token(func() (string, error) { return "", want }); err == nil {
		t.Error("expected error")
	}

	// a failed fetch leaves the cache empty so the next caller retries
	token, err := cache.Token(func() (string, error) { return "token-xyz", nil })
	if err != nil {
		t.Fatal(err)
	}
	if token != "token-xyz" {
		t.Errorf("got %q", token)
	}
}

func TestTokenCache__reset(t *testing.T) {
	var cache tokenCache
	var fetches int

	fetch := func() (string, error) {
		fetches++
		return "token", nil
	}

	if _, err := cache.Token(fetch); err != nil {
		t.Fatal(err)
	}
	cache.Reset()
	if _, err := cache.Token(fetch); err != nil {
		t.Fatal(err)
	}
	if fetches != 2 {
		t.Errorf("expected re-fetch after reset, got %d", fetches)
	}
}
