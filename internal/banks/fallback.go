// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

import (
	"fmt"
	"strings"

	"github.com/bankfeed-io/bankfeed/internal/model"
	"github.com/bankfeed-io/bankfeed/internal/util"
)

// Fallback is the default Adapter. It answers for every institution without
// a registered adapter and is the embedded base of every adapter that has
// one.
type Fallback struct{}

func (Fallback) InstitutionIDs() []string {
	return nil
}

func (Fallback) AccessValidForDays() int {
	return 90
}

func (Fallback) NormalizeAccount(acct *model.Account) *model.NormalizedAccount {
	name := util.Or(acct.OwnerName, acct.Name, acct.Product)
	if acct.IBAN != "" {
		name = strings.TrimSpace(fmt.Sprintf("%s (%s)", name, maskIBAN(acct.IBAN)))
	}
	return &model.NormalizedAccount{
		ID:            acct.ID,
		Name:          name,
		Mask:          mask(acct.IBAN),
		IBAN:          acct.IBAN,
		InstitutionID: acct.InstitutionID,
		OfficialName:  acct.Product,
		Institution:   acct.Institution,
	}
}

func (Fallback) NormalizeTransaction(tx *model.Transaction, booked bool) *model.NormalizedTransaction {
	date, ok := transactionDate(tx)
	if !ok {
		return nil
	}
	amount, err := tx.TransactionAmount.MinorUnits()
	if err != nil {
		return nil
	}
	return &model.NormalizedTransaction{
		ID:     tx.TransactionID,
		Date:   date,
		Amount: amount,
		Payee:  util.Or(tx.UltimateCreditor, tx.CreditorName, tx.DebtorName),
		Notes:  remittance(tx),
		Booked: booked,
	}
}

// SortTransactions is a stable pass-through. It exists as the ordering
// contract point institution adapters may redefine.
func (Fallback) SortTransactions(txs []model.Transaction) []model.Transaction {
	return txs
}

func (Fallback) CalculateStartingBalance(sortedBooked []model.Transaction, balances []model.Balance) int64 {
	return StartingBalance(sortedBooked, balances, model.BalanceInterimAvailable)
}

// remittance assembles the free-text description from whichever remittance
// fields the institution populated.
func remittance(tx *model.Transaction) string {
	text := tx.RemittanceInformationUnstructured
	if text == "" {
		text = tx.RemittanceInformationStructured
	}
	if text == "" && len(tx.RemittanceInformationUnstructuredArray) > 0 {
		text = strings.Join(tx.RemittanceInformationUnstructuredArray, " ")
	}
	if text == "" && len(tx.RemittanceInformationStructuredArray) > 0 {
		text = strings.Join(tx.RemittanceInformationStructuredArray, " ")
	}
	if tx.AdditionalInformation != "" {
		text = strings.TrimSpace(text + " " + tx.AdditionalInformation)
	}
	return text
}

// mask returns the last four characters of an account number.
func mask(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

func maskIBAN(iban string) string {
	return "XXX " + mask(iban)
}
