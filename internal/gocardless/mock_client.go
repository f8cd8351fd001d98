// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gocardless

import (
	"sync"
	"time"

	"github.com/bankfeed-io/bankfeed/internal/model"
)

// TestClient is a Client for tests whose responses come from its fields.
type TestClient struct {
	Requisition *model.Requisition
	Details     *model.AccountDetails
	Metadata    *model.AccountMetadata
	Txns        *model.Transactions
	Balances    []model.Balance
	Institution *model.Institution

	// MetadataByAccount overrides Metadata per accountID when set.
	MetadataByAccount map[string]*model.AccountMetadata

	// Err is returned instead of any field from above
	Err error

	mu sync.Mutex
	// Calls counts invocations by method name.
	Calls map[string]int
}

func (c *TestClient) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Calls == nil {
		c.Calls = make(map[string]int)
	}
	c.Calls[method]++
}

// CallCount returns how often method was invoked.
func (c *TestClient) CallCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[method]
}

func (c *TestClient) Ping() error {
	c.record("Ping")
	return c.Err
}

func (c *TestClient) CreateRequisition(req CreateRequisitionRequest) (*model.Requisition, error) {
	c.record("CreateRequisition")
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Requisition, nil
}

func (c *TestClient) GetRequisition(requisitionID string) (*model.Requisition, error) {
	c.record("GetRequisition")
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Requisition, nil
}

func (c *TestClient) DeleteRequisition(requisitionID string) error {
	c.record("DeleteRequisition")
	return c.Err
}

func (c *TestClient) GetAccountDetails(accountID string) (*model.AccountDetails, error) {
	c.record("GetAccountDetails")
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Details, nil
}

func (c *TestClient) GetAccountMetadata(accountID string) (*model.AccountMetadata, error) {
	c.record("GetAccountMetadata")
	if c.Err != nil {
		return nil, c.Err
	}
	if m, ok := c.MetadataByAccount[accountID]; ok {
		return m, nil
	}
	return c.Metadata, nil
}

func (c *TestClient) GetTransactions(accountID string, dateFrom, dateTo time.Time) (*model.Transactions, error) {
	c.record("GetTransactions")
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Txns, nil
}

func (c *TestClient) GetBalances(accountID string) ([]model.Balance, error) {
	c.record("GetBalances")
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Balances, nil
}

func (c *TestClient) GetInstitution(institutionID string) (*model.Institution, error) {
	c.record("GetInstitution")
	if c.Err != nil {
		return nil, c.Err
	}
	if c.Institution != nil {
		return c.Institution, nil
	}
	return &model.Institution{ID: institutionID}, nil
}
