package charts

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const CurrencySuffix = "ريال"

const maxFractionDigits = 2

type Formatter struct {
	locale  string
	printer *message.Printer
}

func NewFormatter(locale string) *Formatter {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	tag, err := language.Parse(normalized)
	if err != nil || normalized == "" {
		normalized = "ar"
		tag = language.Arabic
	}
	return &Formatter{
		locale:  normalized,
		printer: message.NewPrinter(tag),
	}
}

func (formatter *Formatter) Locale() string {
	return formatter.locale
}

func (formatter *Formatter) Number(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) || value == 0 {
		return formatter.printer.Sprintf("%v", number.Decimal(0))
	}
	return formatter.printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(maxFractionDigits)))
}

func (formatter *Formatter) Currency(value float64) string {
	return formatter.Number(value) + " " + CurrencySuffix
}

func (formatter *Formatter) currencyFormat(prefix string) *ValueFormat {
	return &ValueFormat{
		Locale: formatter.locale,
		Prefix: prefix,
		Suffix: CurrencySuffix,
	}
}
