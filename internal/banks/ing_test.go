// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

import (
	"testing"

	"github.com/bankfeed-io/bankfeed/internal/model"
)

func TestING__internalTransactionID(t *testing.T) {
	tx := &model.Transaction{
		TransactionID:         "DUPLICATE",
		InternalTransactionID: "a3f9c2b4e1",
		TransactionAmount:     model.CurrencyAmount{Amount: "-9.99", Currency: "EUR"},
		BookingDate:           "2020-06-12",
	}

	n := ING{}.NormalizeTransaction(tx, true)
	if n == nil {
		t.Fatal("expected transaction")
	}
	if n.ID != "a3f9c2b4e1" {
		t.Errorf("got %q", n.ID)
	}
	if n.Amount != -999 {
		t.Errorf("got %d", n.Amount)
	}
}

func TestING__fallsBackToTransactionID(t *testing.T) {
	tx := &model.Transaction{
		TransactionID:     "T1",
		TransactionAmount: model.CurrencyAmount{Amount: "1.00", Currency: "EUR"},
		BookingDate:       "2020-06-12",
	}
	if n := (ING{}).NormalizeTransaction(tx, true); n.ID != "T1" {
		t.Errorf("got %q", n.ID)
	}
}

func TestING__dropStillDrops(t *testing.T) {
	tx := &model.Transaction{
		InternalTransactionID: "a3f9c2b4e1",
		TransactionAmount:     model.CurrencyAmount{Amount: "1.00", Currency: "EUR"},
		// no dates at all
	}
	if n := (ING{}).NormalizeTransaction(tx, true); n != nil {
		t.Errorf("expected drop, got %#v", n)
	}
}
