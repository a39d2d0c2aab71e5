// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package autoscale

import "chartcore/chartval"

// Padding in percent of the visible value range.
type Padding struct {
	Top    float64
	Bottom float64
}

const OffsetsPostProcessorName = "offsets"

// OffsetsPostProcessor adds the current padding on top and bottom of the extent.
func OffsetsPostProcessor(padding func() Padding) PostProcessor {
	return func(hl chartval.HighLow) chartval.HighLow {
		if hl.IsEmpty() {
			return hl
		}
		hl = ensureMinHeight(hl)
		p := padding()
		height := hl.Height()
		hl.High += height * p.Top / 100
		hl.Low -= height * p.Bottom / 100
		return hl
	}
}
