// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

import (
	"sort"

	"github.com/bankfeed-io/bankfeed/internal/model"
)

// BancSabadell returns transactions in an arbitrary order, so the canonical
// ordering is rebuilt chronologically (newest first).
type BancSabadell struct {
	Fallback
}

func (BancSabadell) InstitutionIDs() []string {
	return []string{"BANCSABADELL_BSABESBB"}
}

func (BancSabadell) SortTransactions(txs []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := transactionDate(&sorted[i])
		tj, _ := transactionDate(&sorted[j])
		return ti.After(tj)
	})
	return sorted
}
