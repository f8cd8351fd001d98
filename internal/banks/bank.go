// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package banks holds the per-institution normalization logic. Institutions
// expose data through one nominally uniform API, but individual integrations
// deviate in field population, date semantics, balance semantics, and
// placeholder records. Each deviation lives in an Adapter; everything an
// institution doesn't deviate on comes from Fallback.
package banks

import (
	"time"

	"github.com/bankfeed-io/bankfeed/internal/model"
)

// Adapter normalizes one institution's raw records into the stable shapes
// callers consume. Implementations are pure: they never retain state between
// calls and identical inputs produce identical outputs.
//
// Per-institution adapters embed Fallback and override only the operations
// that diverge, so unoverridden behavior always tracks Fallback's.
type Adapter interface {
	// InstitutionIDs are the institution identifiers this adapter answers
	// for. Empty for Fallback, which the registry hands out as the default.
	InstitutionIDs() []string

	// AccessValidForDays is the consent duration proposed when creating a
	// requisition for this institution.
	AccessValidForDays() int

	NormalizeAccount(acct *model.Account) *model.NormalizedAccount

	// NormalizeTransaction returns nil to signal "drop this record" (i.e. a
	// placeholder entry or a record missing any usable date). Callers skip
	// dropped records and re-import them once upstream data stabilizes; a
	// nil here is never an error.
	NormalizeTransaction(tx *model.Transaction, booked bool) *model.NormalizedTransaction

	// SortTransactions establishes this institution's canonical ordering.
	SortTransactions(txs []model.Transaction) []model.Transaction

	// CalculateStartingBalance derives the opening balance (minor units) for
	// the retrieved window from the sorted booked transactions and the
	// account's balance snapshots.
	CalculateStartingBalance(sortedBooked []model.Transaction, balances []model.Balance) int64
}

// transactionDate picks the first usable date from a raw transaction,
// preferring booking dates over value dates.
func transactionDate(tx *model.Transaction) (time.Time, bool) {
	fields := []struct {
		value  string
		layout string
	}{
		{tx.BookingDate, "2006-01-02"},
		{tx.BookingDateTime, time.RFC3339},
		{tx.ValueDate, "2006-01-02"},
		{tx.ValueDateTime, time.RFC3339},
	}
	for i := range fields {
		if fields[i].value == "" {
			continue
		}
		if ts, err := time.Parse(fields[i].layout, fields[i].value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// StartingBalance reverses every booked transaction out of the balance
// snapshot tagged balanceType. The aggregation API doesn't expose a
// balance-after-each-transaction, so this is exact only when sortedBooked is
// exactly the set of transactions between the window start and the snapshot
// time. Callers guarantee that precondition; nothing here flags drift.
func StartingBalance(sortedBooked []model.Transaction, balances []model.Balance, balanceType string) int64 {
	var snapshot int64
	for i := range balances {
		if balances[i].BalanceType == balanceType {
			if n, err := balances[i].BalanceAmount.MinorUnits(); err == nil {
				snapshot = n
			}
			break
		}
	}

	var sum int64
	for i := range sortedBooked {
		n, err := sortedBooked[i].TransactionAmount.MinorUnits()
		if err != nil {
			continue // unusable amounts are dropped by normalization too
		}
		sum += n
	}
	return snapshot - sum
}
