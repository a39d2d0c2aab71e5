// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartunit

import "fmt"

type AxisType int

const (
	AxisRegular AxisType = iota
	AxisPercent
	AxisLogarithmic
)

func AxisTypeFromString(s string) (AxisType, error) {
	switch s {
	case "", "regular":
		return AxisRegular, nil
	case "percent":
		return AxisPercent, nil
	case "logarithmic", "log":
		return AxisLogarithmic, nil
	default:
		return AxisRegular, fmt.Errorf("unknown axis type %q", s)
	}
}

func (a AxisType) String() string {
	switch a {
	case AxisRegular:
		return "regular"
	case AxisPercent:
		return "percent"
	case AxisLogarithmic:
		return "logarithmic"
	default:
		panic("unsupported axis type")
	}
}

// ToAxisUnits converts a price to axis units. The baseline is used by percent axes only.
// Callers must not pass non-positive prices or baselines to percent and logarithmic axes.
func ToAxisUnits(value, baseline float64, a AxisType) float64 {
	switch a {
	case AxisRegular:
		return value
	case AxisPercent:
		return UnitToPercent(value, baseline)
	case AxisLogarithmic:
		return CalcLogValue(value)
	default:
		panic("unsupported axis type")
	}
}

func FromAxisUnits(value, baseline float64, a AxisType) float64 {
	switch a {
	case AxisRegular:
		return value
	case AxisPercent:
		return PercentToUnit(value, baseline)
	case AxisLogarithmic:
		return LogValueToUnit(value)
	default:
		panic("unsupported axis type")
	}
}
