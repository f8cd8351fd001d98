// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

// RequisitionStatus is the upstream short code for a requisition's position
// in the consent lifecycle.
type RequisitionStatus string

const (
	RequisitionCreated          RequisitionStatus = "CR"
	RequisitionGivingConsent    RequisitionStatus = "GC"
	RequisitionUndergoingAuth   RequisitionStatus = "UA"
	RequisitionSelectingAccount RequisitionStatus = "SA"
	RequisitionGrantingAccess   RequisitionStatus = "GA"
	RequisitionLinked           RequisitionStatus = "LN"
	RequisitionExpired          RequisitionStatus = "EX"
	RequisitionRejected         RequisitionStatus = "RJ"
	RequisitionSuspended        RequisitionStatus = "SU"
)

// Requisition binds an end user's authorization to one or more accounts at a
// single institution. It's created through the consent flow and becomes
// linked once the end user completes authorization out-of-band.
type Requisition struct {
	ID     string            `json:"id"`
	Status RequisitionStatus `json:"status"`

	// Accounts are the account identifiers the end user granted access to.
	// Empty until the requisition is linked.
	Accounts []string `json:"accounts"`

	InstitutionID string `json:"institution_id"`

	// Reference is the caller-generated identifier sent when the requisition
	// was created.
	Reference string `json:"reference,omitempty"`

	// Link is the URL the end user visits to authorize access.
	Link string `json:"link,omitempty"`

	Created string `json:"created,omitempty"`
}

// Linked reports whether the end user has completed authorization.
func (r *Requisition) Linked() bool {
	return r != nil && r.Status == RequisitionLinked
}

// HasAccount reports whether accountID is in the requisition's account list.
func (r *Requisition) HasAccount(accountID string) bool {
	if r == nil {
		return false
	}
	for i := range r.Accounts {
		if r.Accounts[i] == accountID {
			return true
		}
	}
	return false
}
