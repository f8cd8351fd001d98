// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gocardless

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// tokenCache holds the process-wide access token. It starts empty, is set
// exactly once through a single-flight acquisition, and lives for the rest of
// the process. Concurrent first-time callers share the one in-flight fetch.
type tokenCache struct {
	group singleflight.Group

	mu    sync.RWMutex
	token string
}

func (tc *tokenCache) Token(fetch func() (string, error)) (string, error) {
	tc.mu.RLock()
	token := tc.token
	tc.mu.RUnlock()
	if token != "" {
		return token, nil
	}

	v, err, _ := tc.group.Do("access-token", func() (interface{}, error) {
		tc.mu.RLock()
		token := tc.token
		tc.mu.RUnlock()
		if token != "" {
			return token, nil
		}

		token, err := fetch()
		if err != nil {
			return "", err
		}

		tc.mu.Lock()
		tc.token = token
		tc.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Reset clears the cached token. Exposed for test isolation.
func (tc *tokenCache) Reset() {
	tc.mu.Lock()
	tc.token = ""
	tc.mu.Unlock()
}
