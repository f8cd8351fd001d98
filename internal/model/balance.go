// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

// Balance type tags as reported by institutions. The strings are part of the
// upstream wire format and must not be renamed.
const (
	BalanceInterimAvailable = "interimAvailable"
	BalanceInterimBooked    = "interimBooked"
	BalanceExpected         = "expected"
	BalanceClosingBooked    = "closingBooked"
)

// CurrencyAmount is the wire shape institutions use for money: a decimal
// string plus an ISO 4217 currency code.
type CurrencyAmount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MinorUnits parses the decimal string into integer minor units.
func (ca CurrencyAmount) MinorUnits() (int64, error) {
	amt, err := NewAmount(ca.Currency, ca.Amount)
	if err != nil {
		return 0, err
	}
	return amt.Int64(), nil
}

// Balance is one typed balance snapshot. Accounts usually report several
// concurrently (i.e. interimAvailable and interimBooked); which one an
// adapter reconciles against is institution specific.
type Balance struct {
	BalanceType   string         `json:"balanceType"`
	BalanceAmount CurrencyAmount `json:"balanceAmount"`
	ReferenceDate string         `json:"referenceDate,omitempty"`
}
