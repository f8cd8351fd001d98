// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

import (
	"strings"

	"github.com/bankfeed-io/bankfeed/internal/model"
)

// SEBKort card accounts interleave real purchases with synthetic invoice
// rows (id prefix "9900") that would double-count against the monthly bill,
// and their interimAvailable snapshot excludes uninvoiced purchases so
// reconciliation runs against the "expected" balance instead.
type SEBKort struct {
	Fallback
}

func (SEBKort) InstitutionIDs() []string {
	return []string{"SEB_KORT_AB_NO_SKHSFI21", "SEB_KORT_AB_SE_SKHSFI21"}
}

func (SEBKort) AccessValidForDays() int {
	return 30
}

func (a SEBKort) NormalizeTransaction(tx *model.Transaction, booked bool) *model.NormalizedTransaction {
	if strings.HasPrefix(tx.TransactionID, "9900") {
		return nil
	}
	return a.Fallback.NormalizeTransaction(tx, booked)
}

func (SEBKort) CalculateStartingBalance(sortedBooked []model.Transaction, balances []model.Balance) int64 {
	return StartingBalance(sortedBooked, balances, model.BalanceExpected)
}
