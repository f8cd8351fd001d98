// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

import (
	"github.com/bankfeed-io/bankfeed/internal/model"
)

// ING emits duplicate transactionId values when a pending record reappears
// booked, but keeps internalTransactionId stable and unique across both.
type ING struct {
	Fallback
}

func (ING) InstitutionIDs() []string {
	return []string{"ING_INGDDEFF", "ING_INGBNL2A"}
}

func (a ING) NormalizeTransaction(tx *model.Transaction, booked bool) *model.NormalizedTransaction {
	n := a.Fallback.NormalizeTransaction(tx, booked)
	if n == nil {
		return nil
	}
	if tx.InternalTransactionID != "" {
		n.ID = tx.InternalTransactionID
	}
	return n
}
