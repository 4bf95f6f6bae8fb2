package charts

const (
	FieldForecast  = "predictionData"
	CanvasForecast = "predictionChart"
)

// ForecastWidget renders on the predictions page, not the dashboard.
var ForecastWidget = Widget{Field: FieldForecast, Canvas: CanvasForecast, Build: Forecast}

type ForecastPoint struct {
	Date            string  `json:"date"`
	PredictedSales  float64 `json:"predicted_sales"`
	PredictedProfit float64 `json:"predicted_profit"`
	ConfidenceLower float64 `json:"confidence_lower"`
	ConfidenceUpper float64 `json:"confidence_upper"`
}

// Forecast draws predicted sales inside its confidence band, with the
// projected profit as a dashed line. The upper bound fills down to the lower
// bound.
func Forecast(raw string, locale Locale) Config {
	records := DecodeRecords[ForecastPoint](raw)
	formatter := locale.formatter()

	valueAxis := zeroBasedAxis()
	valueAxis.Ticks = &Ticks{Format: formatter.currencyFormat("")}

	tooltip := indexTooltip()
	tooltip.Format = formatter.currencyFormat("")

	options := baseOptions()
	options.Plugins = Plugins{
		Legend:  &Legend{Display: true, Position: "bottom"},
		Tooltip: tooltip,
	}
	options.Scales = map[string]Scale{
		"x": plainCategoryAxis(),
		"y": valueAxis,
	}

	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: labelsOf(records, func(record ForecastPoint) string { return record.Date }),
			Datasets: []Dataset{
				{
					Label:           locale.text("charts.forecast.upper"),
					Data:            valuesOf(records, func(record ForecastPoint) float64 { return record.ConfidenceUpper }),
					BorderColor:     "rgba(102, 126, 234, 0.3)",
					BackgroundColor: ColorList{"rgba(102, 126, 234, 0.1)"},
					BorderWidth:     1,
					Fill:            "+1",
				},
				{
					Label:       locale.text("charts.forecast.lower"),
					Data:        valuesOf(records, func(record ForecastPoint) float64 { return record.ConfidenceLower }),
					BorderColor: "rgba(102, 126, 234, 0.3)",
					BorderWidth: 1,
				},
				{
					Label:       locale.text("charts.forecast.sales"),
					Data:        valuesOf(records, func(record ForecastPoint) float64 { return record.PredictedSales }),
					BorderColor: colorPrimary,
					BorderWidth: 3,
					PointRadius: 3,
					Tension:     0.4,
				},
				{
					Label:       locale.text("charts.forecast.profit"),
					Data:        valuesOf(records, func(record ForecastPoint) float64 { return record.PredictedProfit }),
					BorderColor: colorSuccess,
					BorderWidth: 2,
					BorderDash:  []int{5, 5},
					Tension:     0.4,
				},
			},
		},
		Options: options,
	}
}
