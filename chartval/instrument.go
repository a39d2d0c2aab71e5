// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"fmt"

	"github.com/ericlagergren/decimal"
)

const DefaultPricePrecision = 2

type Instrument struct {
	Symbol string
	// Price increments as decimal strings, e.g. "0.01".
	PriceIncrements []string `yaml:",omitempty"`
}

// PricePrecisions returns the number of digits after decimal point for each price increment.
func (i Instrument) PricePrecisions() ([]int, error) {
	if len(i.PriceIncrements) == 0 {
		return []int{DefaultPricePrecision}, nil
	}
	precisions := make([]int, 0, len(i.PriceIncrements))
	for _, inc := range i.PriceIncrements {
		d, ok := new(decimal.Big).SetString(inc)
		if !ok || d.Sign() <= 0 {
			return nil, fmt.Errorf("invalid price increment %q for %s", inc, i.Symbol)
		}
		// Trailing zeros do not add precision.
		d.Reduce()
		precisions = append(precisions, max(d.Scale(), 0))
	}
	return precisions, nil
}
