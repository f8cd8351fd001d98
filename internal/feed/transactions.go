// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/bankfeed-io/bankfeed/internal/banks"
	"github.com/bankfeed-io/bankfeed/internal/model"

	"golang.org/x/sync/errgroup"
)

// Feed is one account's transactions over a retrieval window together with
// the balance the account opened that window on. Booked and Pending hold the
// institution's transactions in adapter sort order, and Transactions is the
// normalized view of both lists. StartingBalance is integer minor units, so a
// consumer replaying it plus every booked amount lands exactly on the
// institution's current balance.
type Feed struct {
	InstitutionID   string                        `json:"institutionId"`
	StartingBalance int64                         `json:"startingBalance"`
	Balances        []model.Balance               `json:"balances"`
	Booked          []model.Transaction           `json:"booked"`
	Pending         []model.Transaction           `json:"pending"`
	Transactions    []model.NormalizedTransaction `json:"transactions"`
}

// Transactions retrieves one account's feed between start and end. The
// account must belong to the (linked) requisition; transactions and balance
// snapshots are fetched concurrently.
func (s *Service) Transactions(ctx context.Context, requisitionID, accountID string, start, end time.Time) (*Feed, error) {
	req, err := s.LinkedRequisition(requisitionID)
	if err != nil {
		return nil, err
	}
	if !req.HasAccount(accountID) {
		return nil, fmt.Errorf("account %s on requisition %s: %w", accountID, requisitionID, ErrAccountNotLinked)
	}

	var txns *model.Transactions
	var balances []model.Balance

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.client.GetTransactions(accountID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		balances, err = s.client.GetBalances(accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	adapter := banks.ForInstitution(req.InstitutionID)
	booked := adapter.SortTransactions(txns.Booked)
	pending := adapter.SortTransactions(txns.Pending)

	feed := &Feed{
		InstitutionID:   req.InstitutionID,
		StartingBalance: adapter.CalculateStartingBalance(booked, balances),
		Balances:        balances,
		Booked:          booked,
		Pending:         pending,
	}
	for i := range booked {
		if tx := adapter.NormalizeTransaction(&booked[i], true); tx != nil {
			feed.Transactions = append(feed.Transactions, *tx)
		}
	}
	for i := range pending {
		if tx := adapter.NormalizeTransaction(&pending[i], false); tx != nil {
			feed.Transactions = append(feed.Transactions, *tx)
		}
	}
	return feed, nil
}
