// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

// AccountDetails is the institution-reported side of an account record, as
// returned by the details endpoint.
type AccountDetails struct {
	ResourceID string `json:"resourceId,omitempty"`
	IBAN       string `json:"iban,omitempty"`
	BBAN       string `json:"bban,omitempty"`
	Currency   string `json:"currency,omitempty"`
	OwnerName  string `json:"ownerName,omitempty"`
	Name       string `json:"name,omitempty"`
	Product    string `json:"product,omitempty"`

	// CashAccountType is an ExternalCashAccountType1Code from ISO 20022.
	CashAccountType string `json:"cashAccountType,omitempty"`
}

// AccountMetadata is the aggregation API's own side of an account record, as
// returned by the metadata endpoint.
type AccountMetadata struct {
	ID            string `json:"id"`
	IBAN          string `json:"iban,omitempty"`
	InstitutionID string `json:"institution_id"`
	Status        string `json:"status,omitempty"`
	OwnerName     string `json:"owner_name,omitempty"`
	Created       string `json:"created,omitempty"`
	LastAccessed  string `json:"last_accessed,omitempty"`
}

// Account is one bank account merged from the two per-account retrieval
// calls (details + metadata), optionally joined with its Institution.
type Account struct {
	ID            string
	IBAN          string
	BBAN          string
	Currency      string
	OwnerName     string
	Name          string
	Product       string
	InstitutionID string

	Institution *Institution
}

// MergeAccount combines the two retrieval calls into one raw Account record.
// Metadata wins for identifiers, details win for institution-reported fields.
func MergeAccount(metadata *AccountMetadata, details *AccountDetails) *Account {
	acct := &Account{}
	if metadata != nil {
		acct.ID = metadata.ID
		acct.IBAN = metadata.IBAN
		acct.InstitutionID = metadata.InstitutionID
		acct.OwnerName = metadata.OwnerName
	}
	if details != nil {
		if details.IBAN != "" {
			acct.IBAN = details.IBAN
		}
		if details.OwnerName != "" {
			acct.OwnerName = details.OwnerName
		}
		acct.BBAN = details.BBAN
		acct.Currency = details.Currency
		acct.Name = details.Name
		acct.Product = details.Product
	}
	return acct
}

// NormalizedAccount is the stable account shape consumed by callers after a
// bank adapter has applied its institution's quirks.
type NormalizedAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Mask          string `json:"mask"`
	IBAN          string `json:"iban,omitempty"`
	InstitutionID string `json:"institutionId"`

	// OfficialName is the institution's product name for this account.
	OfficialName string `json:"officialName,omitempty"`

	Institution *Institution `json:"institution,omitempty"`
}
