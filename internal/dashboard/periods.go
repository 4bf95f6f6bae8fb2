package dashboard

import "github.com/terraincognita07/salesboard/internal/services"

type PeriodOption struct {
	Value    services.Period
	LabelKey string
	Active   bool
}

var periodLabelKeys = map[services.Period]string{
	services.PeriodDaily:   "dashboard.period.daily",
	services.PeriodWeekly:  "dashboard.period.weekly",
	services.PeriodMonthly: "dashboard.period.monthly",
	services.PeriodYearly:  "dashboard.period.yearly",
}

// SelectPeriod resolves the data-period value of the clicked button and
// returns the button row with exactly one active entry. Unknown values
// select monthly.
func SelectPeriod(raw string) (services.Period, []PeriodOption) {
	selected, _ := services.ParsePeriod(raw)

	options := make([]PeriodOption, 0, len(services.Periods))
	for _, period := range services.Periods {
		options = append(options, PeriodOption{
			Value:    period,
			LabelKey: periodLabelKeys[period],
			Active:   period == selected,
		})
	}
	return selected, options
}
