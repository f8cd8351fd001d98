// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package feed

import (
	"context"
	"sync"

	"github.com/bankfeed-io/bankfeed/internal/banks"
	"github.com/bankfeed-io/bankfeed/internal/model"

	"golang.org/x/sync/errgroup"
)

// Accounts returns every account the requisition grants access to, in the
// requisition's order. The two retrieval calls behind each account run
// concurrently and institution records are fetched once per distinct
// institution no matter how many accounts share it.
func (s *Service) Accounts(ctx context.Context, requisitionID string) ([]model.NormalizedAccount, error) {
	req, err := s.LinkedRequisition(requisitionID)
	if err != nil {
		return nil, err
	}

	type record struct {
		details  *model.AccountDetails
		metadata *model.AccountMetadata
	}
	records := make([]record, len(req.Accounts))

	g, _ := errgroup.WithContext(ctx)
	for i := range req.Accounts {
		i, accountID := i, req.Accounts[i]
		g.Go(func() error {
			details, err := s.client.GetAccountDetails(accountID)
			if err != nil {
				return err
			}
			records[i].details = details
			return nil
		})
		g.Go(func() error {
			metadata, err := s.client.GetAccountMetadata(accountID)
			if err != nil {
				return err
			}
			records[i].metadata = metadata
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, len(records))
	for i := range records {
		accounts[i] = model.MergeAccount(records[i].metadata, records[i].details)
		if accounts[i].InstitutionID == "" {
			accounts[i].InstitutionID = req.InstitutionID
		}
	}

	institutions, err := s.readInstitutions(ctx, accounts)
	if err != nil {
		return nil, err
	}

	out := make([]model.NormalizedAccount, 0, len(accounts))
	for i := range accounts {
		accounts[i].Institution = institutions[accounts[i].InstitutionID]
		adapter := banks.ForInstitution(accounts[i].InstitutionID)
		out = append(out, *adapter.NormalizeAccount(accounts[i]))
	}
	return out, nil
}

// readInstitutions fetches each distinct institution across accts exactly once.
func (s *Service) readInstitutions(ctx context.Context, accts []*model.Account) (map[string]*model.Institution, error) {
	out := make(map[string]*model.Institution)
	for i := range accts {
		out[accts[i].InstitutionID] = nil
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for institutionID := range out {
		institutionID := institutionID
		g.Go(func() error {
			institution, err := s.client.GetInstitution(institutionID)
			if err != nil {
				return err
			}
			mu.Lock()
			out[institutionID] = institution
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
