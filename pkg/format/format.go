// Package format renders numbers for the deck: thousands separators and compact currency.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

// Number formats v with the given number of decimals and thousands separators.
func Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	v = roundTo(v, decimals)
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// Integer formats n with thousands separators.
func Integer(n int64) string {
	return printer.Sprintf("%d", n)
}

// GBP formats an amount compactly: £1.23M, £4.5K, £950.
func GBP(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s£%.2fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s£%.1fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s£%.0f", sign, abs)
	}
}

// SignedPercent formats a change with an explicit sign, e.g. +4.2%.
func SignedPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", roundTo(v, 1))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
