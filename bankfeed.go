// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package bankfeed

// Version is the semantic version of this application.
const Version = "v0.4.0"
