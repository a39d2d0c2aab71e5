// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package bollinger

import (
	"chartcore/chartval"
	"chartcore/indapi"
	"chartcore/indapi/calc"
	"chartcore/indapi/properties"
	"strconv"

	"github.com/ericlagergren/decimal"
)

type Indicator struct {
	timeUnits int
	bandWidth int
}

const Id = "bollinger"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{timeUnits: 20, bandWidth: 2}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{
		"Width":      strconv.Itoa(d.bandWidth),
		"Time Units": strconv.Itoa(d.timeUnits),
	}
}

func (d *Indicator) SetProperties(prop map[string]string) error {
	for key, value := range prop {
		var err error
		switch key {
		case "Width":
			err = properties.SetPositiveValue(&d.bandWidth, key, value)
		case "Time Units":
			err = properties.SetPositiveValue(&d.timeUnits, key, value)
		default:
			err = properties.Unknown(key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Update returns the top, middle and bottom band.
func (d *Indicator) Update(candles []chartval.Candle) [][]chartval.DataSeriesPoint {
	closes := calc.Decimals(indapi.Closes(candles))
	top := make([]float64, len(closes))
	mid := make([]float64, len(closes))
	bottom := make([]float64, len(closes))
	width := decimal.New(int64(d.bandWidth), 0)
	for i := range closes {
		subSet := closes[max(0, i+1-d.timeUnits) : i+1]
		mean := calc.Mean(new(decimal.Big), subSet)
		stdDev := calc.StdDev(new(decimal.Big), subSet)
		stdDev.Mul(stdDev, width)
		mid[i], _ = mean.Float64()
		t := new(decimal.Big).Copy(mean)
		top[i], _ = t.Add(t, stdDev).Float64()
		b := new(decimal.Big).Copy(mean)
		bottom[i], _ = b.Sub(b, stdDev).Float64()
	}
	return [][]chartval.DataSeriesPoint{
		indapi.ToLine(candles, top),
		indapi.ToLine(candles, mid),
		indapi.ToLine(candles, bottom),
	}
}

func (d *Indicator) GetSubPlotType() indapi.SubPlotType {
	return indapi.SubPlotTypePrice
}
