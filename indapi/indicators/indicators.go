// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indicators

import (
	"chartcore/indapi"
	"chartcore/indapi/indicators/bollinger"
	"chartcore/indapi/indicators/ema"
	"chartcore/indapi/indicators/sma"
	"chartcore/indapi/indicators/stochastics"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

var IndicatorRegistry map[indapi.IndicatorId]func() indapi.IndicatorData = make(map[indapi.IndicatorId]func() indapi.IndicatorData)

func init() {
	IndicatorRegistry[bollinger.Id] = bollinger.NewIndicator
	IndicatorRegistry[ema.Id] = ema.NewIndicator
	IndicatorRegistry[sma.Id] = sma.NewIndicator
	IndicatorRegistry[stochastics.Id] = stochastics.NewIndicator
}

func Create(id indapi.IndicatorId, properties map[string]string) (indapi.IndicatorData, error) {
	d, ok := IndicatorRegistry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", indapi.ErrUnknownIndicator, id)
	}
	ind := d()
	if err := ind.SetProperties(properties); err != nil {
		return nil, fmt.Errorf("indicator %s: %w", id, err)
	}
	return ind, nil
}

func GetDefaultProperties(id indapi.IndicatorId) (map[string]string, error) {
	d, ok := IndicatorRegistry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", indapi.ErrUnknownIndicator, id)
	}
	return d().GetProperties(), nil
}

func GetList() indapi.IndicatorList {
	l := indapi.IndicatorList(maps.Keys(IndicatorRegistry))
	sort.Sort(l)
	return l
}
