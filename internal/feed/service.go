// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package feed orchestrates the aggregation API calls behind each consumer
// facing operation: linking an institution, listing its accounts, and pulling
// a reconciled transaction feed. Institution quirks are pushed down into the
// banks package so everything here is institution agnostic.
package feed

import (
	"errors"
	"fmt"

	"github.com/moov-io/base"

	"github.com/bankfeed-io/bankfeed/internal/banks"
	"github.com/bankfeed-io/bankfeed/internal/gocardless"
	"github.com/bankfeed-io/bankfeed/internal/model"

	"github.com/go-kit/kit/log"
)

var (
	// ErrRequisitionNotLinked is returned when account data is requested
	// before the end user finished the institution's consent flow.
	ErrRequisitionNotLinked = errors.New("requisition is not linked")

	// ErrAccountNotLinked is returned when the account isn't among those the
	// requisition granted access to.
	ErrAccountNotLinked = errors.New("account is not linked to requisition")
)

type Service struct {
	logger    log.Logger
	client    gocardless.Client
	publisher EventPublisher
}

func NewService(logger log.Logger, client gocardless.Client, publisher EventPublisher) *Service {
	if publisher == nil {
		publisher = &nopPublisher{}
	}
	return &Service{
		logger:    logger,
		client:    client,
		publisher: publisher,
	}
}

// CreateRequisition starts a consent flow against institutionID. The caller
// redirects the end user to the returned requisition's Link and the
// institution sends them back to redirectURL once consent completes.
func (s *Service) CreateRequisition(institutionID, redirectURL string) (*model.Requisition, error) {
	adapter := banks.ForInstitution(institutionID)

	req, err := s.client.CreateRequisition(gocardless.CreateRequisitionRequest{
		InstitutionID:      institutionID,
		ReferenceID:        base.ID(),
		RedirectURL:        redirectURL,
		AccessValidForDays: adapter.AccessValidForDays(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.RequisitionCreated(req); err != nil {
		s.logger.Log("requisitions", fmt.Sprintf("problem publishing created event: %v", err), "requisition", req.ID)
	}
	return req, nil
}

func (s *Service) GetRequisition(requisitionID string) (*model.Requisition, error) {
	return s.client.GetRequisition(requisitionID)
}

// DeleteRequisition removes a requisition and with it the institution's
// consent. Reads the requisition first so missing IDs fail with the API's
// not found error rather than reporting a successful delete.
func (s *Service) DeleteRequisition(requisitionID string) error {
	req, err := s.client.GetRequisition(requisitionID)
	if err != nil {
		return err
	}
	if err := s.client.DeleteRequisition(requisitionID); err != nil {
		return err
	}

	if err := s.publisher.RequisitionDeleted(req); err != nil {
		s.logger.Log("requisitions", fmt.Sprintf("problem publishing deleted event: %v", err), "requisition", requisitionID)
	}
	return nil
}

// LinkedRequisition reads a requisition and requires the end user to have
// completed the consent flow. Every account and transaction operation goes
// through this gate.
func (s *Service) LinkedRequisition(requisitionID string) (*model.Requisition, error) {
	req, err := s.client.GetRequisition(requisitionID)
	if err != nil {
		return nil, err
	}
	if !req.Linked() {
		return nil, fmt.Errorf("requisition %s status %s: %w", requisitionID, req.Status, ErrRequisitionNotLinked)
	}
	return req, nil
}
