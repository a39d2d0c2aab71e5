// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package calc

import (
	"chartcore/chartval"

	"github.com/ericlagergren/decimal"
)

// Decimals converts prices, so that sums do not accumulate binary rounding errors.
func Decimals(values []float64) []*decimal.Big {
	r := make([]*decimal.Big, len(values))
	for i, v := range values {
		r[i] = chartval.ConvertFloatToDecimal(v, 64)
	}
	return r
}

func Mean(out *decimal.Big, val []*decimal.Big) *decimal.Big {
	out.SetUint64(0)
	for i := range val {
		out.Add(out, val[i])
	}
	out.Quo(out, new(decimal.Big).SetUint64(uint64(len(val))))
	return out
}

func StdDev(out *decimal.Big, val []*decimal.Big) *decimal.Big {
	out.SetUint64(0)
	if len(val) == 0 {
		return out
	}
	m := Mean(new(decimal.Big), val)
	for i := 0; i < len(val); i++ {
		v := new(decimal.Big).Copy(val[i])
		v.Sub(v, m)
		v.Mul(v, v)
		out.Add(out, v)
	}
	out.Quo(out, new(decimal.Big).SetUint64(uint64(len(val))))
	return out.Context.Sqrt(out, out)
}
