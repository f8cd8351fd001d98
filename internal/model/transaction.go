// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import "time"

// Transaction is one raw transaction record as institutions report it.
// Field population varies heavily between integrations: some only set value
// dates, some emit duplicate TransactionIDs and distinguish records through
// InternalTransactionID, and remittance information arrives in any of four
// fields.
type Transaction struct {
	TransactionID         string `json:"transactionId,omitempty"`
	InternalTransactionID string `json:"internalTransactionId,omitempty"`
	EndToEndID            string `json:"endToEndId,omitempty"`

	TransactionAmount CurrencyAmount `json:"transactionAmount"`

	BookingDate     string `json:"bookingDate,omitempty"`
	BookingDateTime string `json:"bookingDateTime,omitempty"`
	ValueDate       string `json:"valueDate,omitempty"`
	ValueDateTime   string `json:"valueDateTime,omitempty"`

	RemittanceInformationUnstructured      string   `json:"remittanceInformationUnstructured,omitempty"`
	RemittanceInformationUnstructuredArray []string `json:"remittanceInformationUnstructuredArray,omitempty"`
	RemittanceInformationStructured        string   `json:"remittanceInformationStructured,omitempty"`
	RemittanceInformationStructuredArray   []string `json:"remittanceInformationStructuredArray,omitempty"`

	CreditorName     string `json:"creditorName,omitempty"`
	DebtorName       string `json:"debtorName,omitempty"`
	UltimateCreditor string `json:"ultimateCreditor,omitempty"`
	UltimateDebtor   string `json:"ultimateDebtor,omitempty"`

	AdditionalInformation          string `json:"additionalInformation,omitempty"`
	ProprietaryBankTransactionCode string `json:"proprietaryBankTransactionCode,omitempty"`
	MerchantCategoryCode           string `json:"merchantCategoryCode,omitempty"`
}

// Transactions is the booked/pending split the transactions endpoint returns.
// Pending records are provisional and may disappear or reappear booked under
// the same identifier.
type Transactions struct {
	Booked  []Transaction `json:"booked"`
	Pending []Transaction `json:"pending"`
}

// NormalizedTransaction is the stable transaction shape consumed by callers.
// Every surfaced record has a non-zero Date and an Amount in integer minor
// units. Records an adapter can't make usable never become one of these.
type NormalizedTransaction struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
	Payee  string    `json:"payee,omitempty"`
	Notes  string    `json:"notes,omitempty"`
	Booked bool      `json:"booked"`
}
