// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

var (
	// ErrDifferentCurrencies is returned when an operation on an Amount instance is attempted with another Amount of a different currency (symbol).
	ErrDifferentCurrencies = errors.New("different currencies")
)

// Amount represents units of a particular currency as an integer quantity
// of that currency's minor units (i.e. cents). Institutions report decimal
// strings over the wire, so amounts pass through here exactly once and all
// arithmetic afterwards is integer only.
type Amount struct {
	number int64
	symbol string // ISO 4217, i.e. EUR, SEK
}

// Int64 returns the currency amount in minor units.
// Example: "EUR -1.11" returns -111
func (a *Amount) Int64() int64 {
	if a == nil {
		return 0
	}
	return a.number
}

func (a *Amount) Validate() error {
	if a == nil {
		return errors.New("nil Amount")
	}
	_, err := currency.ParseISO(a.symbol)
	return err
}

func (a Amount) Equal(other Amount) bool {
	return a.number == other.number && a.symbol == other.symbol
}

// Plus returns an Amount of adding both Amount instances together.
// Currency symbols must match for Plus to return without errors.
func (a Amount) Plus(other Amount) (Amount, error) {
	if a.symbol != other.symbol {
		return a, ErrDifferentCurrencies
	}
	return Amount{number: a.number + other.number, symbol: a.symbol}, nil
}

// NewAmount returns an Amount object after validating the ISO 4217 currency symbol.
// number is a decimal string as reported by institutions, i.e. "-12.53" or "4".
func NewAmount(symbol string, number string) (*Amount, error) {
	sym, err := currency.ParseISO(strings.TrimSpace(symbol))
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %v", symbol, err)
	}
	n, err := parseMinorUnits(strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	return &Amount{number: n, symbol: sym.String()}, nil
}

// String returns an amount formatted with the currency.
// Examples:
//   EUR 12.53
//   SEK -4.02
func (a *Amount) String() string {
	if a == nil || a.symbol == "" {
		return "EUR 0.00"
	}
	return fmt.Sprintf("%s %s", a.symbol, formattedNumber(a.number))
}

func formattedNumber(number int64) string {
	sign := ""
	if number < 0 {
		sign = "-"
		number = -number
	}
	return fmt.Sprintf("%s%d.%02d", sign, number/100, number%100)
}

// parseMinorUnits reads a decimal string and returns the quantity in minor
// units. Institutions report at most two decimal places, shorter fractions
// are padded (i.e. "12.5" is 1250).
func parseMinorUnits(number string) (int64, error) {
	if number == "" {
		return 0, errors.New("empty amount")
	}
	negative := false
	switch number[0] {
	case '-':
		negative = true
		number = number[1:]
	case '+':
		number = number[1:]
	}

	whole, frac := number, ""
	if idx := strings.Index(number, "."); idx >= 0 {
		whole, frac = number[:idx], number[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	switch len(frac) {
	case 0:
		frac = "00"
	case 1:
		frac += "0"
	case 2:
		// already in minor units
	default:
		return 0, fmt.Errorf("invalid amount: %q has too many decimal places", number)
	}

	n, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %v", number, err)
	}
	if negative {
		n = -n
	}
	return n, nil
}
