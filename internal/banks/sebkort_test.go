// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

import (
	"testing"

	"github.com/bankfeed-io/bankfeed/internal/model"
)

func TestSEBKort__syntheticRowsDropped(t *testing.T) {
	synthetic := &model.Transaction{
		TransactionID:     "990012345678",
		TransactionAmount: model.CurrencyAmount{Amount: "-450.00", Currency: "SEK"},
		BookingDate:       "2020-06-12",
	}
	if n := (SEBKort{}).NormalizeTransaction(synthetic, true); n != nil {
		t.Errorf("expected drop, got %#v", n)
	}

	purchase := &model.Transaction{
		TransactionID:     "12345678",
		TransactionAmount: model.CurrencyAmount{Amount: "-45.00", Currency: "SEK"},
		BookingDate:       "2020-06-12",
	}
	n := SEBKort{}.NormalizeTransaction(purchase, true)
	if n == nil {
		t.Fatal("expected transaction")
	}
	if n.Amount != -4500 {
		t.Errorf("got %d", n.Amount)
	}
}

func TestSEBKort__expectedBalance(t *testing.T) {
	balances := []model.Balance{
		{BalanceType: model.BalanceInterimAvailable, BalanceAmount: model.CurrencyAmount{Amount: "100.00", Currency: "SEK"}},
		{BalanceType: model.BalanceExpected, BalanceAmount: model.CurrencyAmount{Amount: "80.00", Currency: "SEK"}},
	}
	booked := []model.Transaction{
		{TransactionAmount: model.CurrencyAmount{Amount: "-30.00", Currency: "SEK"}, BookingDate: "2020-06-12"},
	}

	// 8000 - (-3000) = 11000, against the expected snapshot
	if v := (SEBKort{}).CalculateStartingBalance(booked, balances); v != 11000 {
		t.Errorf("got %d", v)
	}
}

func TestSEBKort__accessValidForDays(t *testing.T) {
	if v := (SEBKort{}).AccessValidForDays(); v != 30 {
		t.Errorf("got %d", v)
	}
}
