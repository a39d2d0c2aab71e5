// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stochastics

import (
	"chartcore/chartval"
	"chartcore/indapi"
	"chartcore/indapi/properties"

	"github.com/cinar/indicator"
)

type Indicator struct {
}

const Id = "stochastics"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{}
}

func (d *Indicator) SetProperties(prop map[string]string) error {
	for key := range prop {
		return properties.Unknown(key)
	}
	return nil
}

// Update returns the %K and %D lines.
func (d *Indicator) Update(candles []chartval.Candle) [][]chartval.DataSeriesPoint {
	k, dLine := indicator.StochasticOscillator(indapi.Highs(candles), indapi.Lows(candles), indapi.Closes(candles))
	return [][]chartval.DataSeriesPoint{
		indapi.ToLine(candles, k),
		indapi.ToLine(candles, dLine),
	}
}

func (d *Indicator) GetSubPlotType() indapi.SubPlotType {
	return indapi.SubPlotTypeIndicator
}
