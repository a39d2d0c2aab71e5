// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package ema

import (
	"chartcore/chartval"
	"chartcore/indapi"
	"chartcore/indapi/properties"
	"strconv"

	"github.com/cinar/indicator"
)

type Indicator struct {
	numPeriods int
}

const Id = "ema"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{numPeriods: 20}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{
		"Time Periods": strconv.Itoa(d.numPeriods),
	}
}

func (d *Indicator) SetProperties(prop map[string]string) error {
	for key, value := range prop {
		switch key {
		case "Time Periods":
			if err := properties.SetPositiveValue(&d.numPeriods, key, value); err != nil {
				return err
			}
		default:
			return properties.Unknown(key)
		}
	}
	return nil
}

func (d *Indicator) Update(candles []chartval.Candle) [][]chartval.DataSeriesPoint {
	return [][]chartval.DataSeriesPoint{
		indapi.ToLine(candles, indicator.Ema(d.numPeriods, indapi.Closes(candles))),
	}
}

func (d *Indicator) GetSubPlotType() indapi.SubPlotType {
	return indapi.SubPlotTypePrice
}
