// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"strconv"

	"github.com/ericlagergren/decimal"
)

const NearZero = 0.000001

// The builtin decimal.Big conversion from float64 is an "exact" conversion, and useless for our cases.
// Therefore, convert using string conversion, even though this requires memory allocation.
// See also https://github.com/ericlagergren/decimal/issues/142

// Convert float to string and then to decimal.
func ConvertFloatToDecimal(v float64, bitSize int) *decimal.Big {
	d, _ := new(decimal.Big).SetString(strconv.FormatFloat(v, 'f', -1, bitSize))
	return d
}

// RoundPrice rounds price v to the given number of digits after decimal point.
func RoundPrice(v float64, precision int) float64 {
	if !IsFinite(v) {
		return v
	}
	// Call Quantize twice, otherwise one digit may be missing, see https://github.com/ericlagergren/decimal/issues/151
	d := ConvertFloatToDecimal(v, 64).Quantize(precision).Quantize(precision)
	r, _ := d.Float64()
	return r
}

func IsGreenCandle(o, c float64) bool {
	// this may be adjusted based on whether it is considered to be green if open price equals close price.
	return c >= o
}

func NearlyEqual(a, b float64) bool {
	d := a - b
	return d < NearZero && d > -NearZero
}
