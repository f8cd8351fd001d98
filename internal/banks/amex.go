// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

import (
	"regexp"
	"strings"

	"github.com/bankfeed-io/bankfeed/internal/model"
)

// AmericanExpress reports foreign purchases in the purchase currency while
// the card is billed in EUR. The billed amount only appears inside the
// remittance text, i.e. "23,50 USD UMGERECHNET 21,77 EUR".
type AmericanExpress struct {
	Fallback
}

func (AmericanExpress) InstitutionIDs() []string {
	return []string{"AMERICAN_EXPRESS_AESUDEF1"}
}

func (a AmericanExpress) NormalizeTransaction(tx *model.Transaction, booked bool) *model.NormalizedTransaction {
	n := a.Fallback.NormalizeTransaction(tx, booked)
	if n == nil {
		return nil
	}
	if strings.EqualFold(tx.TransactionAmount.Currency, "EUR") {
		return n
	}
	if cents, ok := billedEuroAmount(tx); ok {
		if n.Amount < 0 && cents > 0 {
			cents = -cents
		}
		n.Amount = cents
	}
	return n
}

// matches a German-formatted decimal directly followed by the EUR code
var billedAmountPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]{3})*,[0-9]{2})\s*EUR`)

func billedEuroAmount(tx *model.Transaction) (int64, bool) {
	texts := []string{
		tx.RemittanceInformationUnstructured,
		strings.Join(tx.RemittanceInformationUnstructuredArray, " "),
		tx.AdditionalInformation,
	}
	for i := range texts {
		m := billedAmountPattern.FindStringSubmatch(texts[i])
		if m == nil {
			continue
		}
		v := strings.ReplaceAll(m[1], ".", "")
		v = strings.ReplaceAll(v, ",", ".")
		amt, err := model.NewAmount("EUR", v)
		if err != nil {
			continue
		}
		return amt.Int64(), true
	}
	return 0, false
}
