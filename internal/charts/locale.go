package charts

import "strings"

var defaultTexts = map[string]string{
	"charts.monthly.dataset":       "المبيعات الشهرية",
	"charts.monthly.tooltip":       "المبيعات: ",
	"charts.products.sales":        "المبيعات (ريال)",
	"charts.products.quantity":     "الكمية المباعة",
	"charts.products.axis_sales":   "المبيعات (ريال)",
	"charts.products.axis_qty":     "الكمية",
	"charts.peak_hours.dataset":    "المبيعات",
	"charts.weekday.dataset":       "المبيعات",
	"charts.trend.sales":           "المبيعات اليومية",
	"charts.trend.transactions":    "عدد العمليات",
	"charts.trend.axis_sales":      "المبيعات (ريال)",
	"charts.trend.axis_operations": "عدد العمليات",
	"charts.forecast.sales":        "المبيعات المتوقعة",
	"charts.forecast.profit":       "الربح المتوقع",
	"charts.forecast.upper":        "الحد الأعلى",
	"charts.forecast.lower":        "الحد الأدنى",
}

// Locale carries the number formatter and translated dataset captions used
// while building configs.
type Locale struct {
	Formatter *Formatter
	Messages  map[string]string
}

func NewLocale(language string, messages map[string]string) Locale {
	return Locale{
		Formatter: NewFormatter(language),
		Messages:  messages,
	}
}

func (locale Locale) formatter() *Formatter {
	if locale.Formatter == nil {
		return NewFormatter("")
	}
	return locale.Formatter
}

func (locale Locale) text(key string) string {
	if value, ok := locale.Messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultTexts[key]
}
