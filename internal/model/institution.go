// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

// Institution is the upstream aggregation API's record for one financial
// institution. Instances are immutable once fetched and only cached for the
// duration of a single request cycle.
type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	BIC  string `json:"bic,omitempty"`

	// TransactionTotalDays is how far back the institution serves transaction history.
	TransactionTotalDays string `json:"transaction_total_days,omitempty"`

	Countries []string `json:"countries,omitempty"`
	Logo      string   `json:"logo,omitempty"`
}
