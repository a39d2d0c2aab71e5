// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

const observedHolidayPostfix = "(observed)"

// BankCalendar knows the trading days of an exchange.
type BankCalendar struct {
	bankLocation *time.Location
	calendar     *cal.BusinessCalendar
}

func NewUSBankCalendar() BankCalendar {
	// NYSE uses ET, which can be either EST or EDT.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("NYSE time location not supported")
	}
	cal := cal.NewBusinessCalendar()
	// Source for bank holidays: https://www.federalreserve.gov/aboutthefed/k8.htm
	cal.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	cal.Cacheable = true
	return BankCalendar{
		calendar:     cal,
		bankLocation: loc,
	}
}

func (b BankCalendar) IsBankHoliday(t time.Time) (bool, string) {
	actual, observed, h := b.calendar.IsHoliday(t.In(b.bankLocation))
	if !actual && !observed {
		return false, ""
	} else if !actual {
		return true, h.Name + " " + observedHolidayPostfix
	} else {
		return true, h.Name
	}
}

func (b BankCalendar) IsTradingDay(t time.Time) (trading bool, partial bool) {
	day := t.In(b.bankLocation)
	trading = b.calendar.IsWorkday(day)

	if trading {
		holiday, name := b.IsBankHoliday(day.AddDate(0, 0, 1))
		// There are partial trading days before independence day and christmas.
		if holiday && (name == us.IndependenceDay.Name || name == us.ChristmasDay.Name) {
			partial = true
		} else {
			// There is a partial trading day before thanksgiving
			holiday, name = b.IsBankHoliday(day.AddDate(0, 0, -1))
			if holiday && name == us.ThanksgivingDay.Name {
				partial = true
			}
		}
	}
	return
}

// isTradingDate checks the calendar date of t in its own location.
// Daily candles are stamped at UTC midnight, which is the previous evening in New York.
func (b BankCalendar) isTradingDate(t time.Time) bool {
	y, m, d := t.Date()
	trading, _ := b.IsTradingDay(time.Date(y, m, d, 12, 0, 0, 0, b.bankLocation))
	return trading
}

// AddTradingDays moves t by n trading days, skipping weekends and holidays.
// The time of day and location of t are kept. Negative n moves backwards.
func (b BankCalendar) AddTradingDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for n > 0 {
		t = t.AddDate(0, 0, step)
		if b.isTradingDate(t) {
			n--
		}
	}
	return t
}

// TradingDayExtrapolator returns a function suitable for extrapolating daily candle times.
func (b BankCalendar) TradingDayExtrapolator() func(t time.Time, n int) time.Time {
	return b.AddTradingDays
}
