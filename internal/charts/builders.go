package charts

func baseOptions() Options {
	return Options{
		Responsive:          true,
		MaintainAspectRatio: false,
	}
}

func hiddenLegend() *Legend {
	return &Legend{Display: false}
}

func indexTooltip() *Tooltip {
	return &Tooltip{Mode: "index", Intersect: boolPtr(false)}
}

func zeroBasedAxis() Scale {
	return Scale{BeginAtZero: true, Grid: &Grid{Color: gridColor}}
}

func plainCategoryAxis() Scale {
	return Scale{Grid: &Grid{Display: boolPtr(false)}}
}

func dualAxes(leftTitle string, rightTitle string) map[string]Scale {
	return map[string]Scale{
		"y": {
			Type:     "linear",
			Display:  boolPtr(true),
			Position: "left",
			Title:    &ScaleTitle{Display: true, Text: leftTitle},
		},
		"y1": {
			Type:     "linear",
			Display:  boolPtr(true),
			Position: "right",
			Title:    &ScaleTitle{Display: true, Text: rightTitle},
			Grid:     &Grid{DrawOnChartArea: boolPtr(false)},
		},
	}
}

func MonthlySales(raw string, locale Locale) Config {
	records := DecodeRecords[LabeledSales](raw)
	formatter := locale.formatter()

	valueAxis := zeroBasedAxis()
	valueAxis.Ticks = &Ticks{Format: formatter.currencyFormat("")}

	options := baseOptions()
	options.Plugins = Plugins{
		Legend: hiddenLegend(),
		Tooltip: &Tooltip{
			BackgroundColor: tooltipBackdrop,
			TitleColor:      tooltipTitleText,
			BodyColor:       tooltipBodyText,
			Format:          formatter.currencyFormat(locale.text("charts.monthly.tooltip")),
		},
	}
	options.Scales = map[string]Scale{"y": valueAxis, "x": plainCategoryAxis()}

	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: labelsOf(records, func(record LabeledSales) string { return record.Label }),
			Datasets: []Dataset{{
				Label:                locale.text("charts.monthly.dataset"),
				Data:                 valuesOf(records, func(record LabeledSales) float64 { return record.TotalSales }),
				BorderColor:          colorPrimary,
				BackgroundColor:      ColorList{"rgba(102, 126, 234, 0.1)"},
				BorderWidth:          3,
				PointBackgroundColor: colorSecondary,
				PointBorderColor:     "white",
				PointRadius:          5,
				PointHoverRadius:     8,
				Tension:              0.4,
				Fill:                 true,
			}},
		},
		Options: options,
	}
}

func TopProducts(raw string, locale Locale) Config {
	records := DecodeRecords[ProductSales](raw)

	options := baseOptions()
	options.Plugins = Plugins{
		Legend: &Legend{
			Display:  true,
			Position: "top",
			Labels:   &LegendLabels{UsePointStyle: true, BoxWidth: 8},
		},
		Tooltip: indexTooltip(),
	}
	options.Scales = dualAxes(locale.text("charts.products.axis_sales"), locale.text("charts.products.axis_qty"))

	return Config{
		Type: TypeBar,
		Data: Data{
			Labels: labelsOf(records, func(record ProductSales) string { return record.ProductName }),
			Datasets: []Dataset{
				{
					Label:           locale.text("charts.products.sales"),
					Data:            valuesOf(records, func(record ProductSales) float64 { return record.TotalSales }),
					BackgroundColor: ColorList{"rgba(102, 126, 234, 0.8)"},
					BorderColor:     colorPrimary,
					BorderWidth:     1,
					YAxisID:         "y",
				},
				{
					Label:           locale.text("charts.products.quantity"),
					Data:            valuesOf(records, func(record ProductSales) float64 { return record.TotalQuantity }),
					BackgroundColor: ColorList{"rgba(118, 75, 162, 0.8)"},
					BorderColor:     colorSecondary,
					BorderWidth:     1,
					YAxisID:         "y1",
				},
			},
		},
		Options: options,
	}
}

func Category(raw string, locale Locale) Config {
	records := DecodeRecords[CategoryShare](raw)
	labels := labelsOf(records, func(record CategoryShare) string { return record.Category })

	tooltipFormat := locale.formatter().currencyFormat("")
	tooltipFormat.Shares = valuesOf(records, func(record CategoryShare) float64 { return record.Percentage })

	options := baseOptions()
	options.Plugins = Plugins{
		Legend: &Legend{
			Display:  true,
			Position: "bottom",
			Labels:   &LegendLabels{UsePointStyle: true, BoxWidth: 10, Padding: 15},
		},
		Tooltip: &Tooltip{Format: tooltipFormat},
	}
	options.Cutout = "60%"

	return Config{
		Type: TypeDoughnut,
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Data:            valuesOf(records, func(record CategoryShare) float64 { return record.TotalSales }),
				BackgroundColor: paletteFor(len(labels)),
				BorderWidth:     0,
				HoverOffset:     10,
			}},
		},
		Options: options,
	}
}

func PeakHours(raw string, locale Locale) Config {
	records := DecodeRecords[LabeledSales](raw)

	options := baseOptions()
	options.Plugins = Plugins{Legend: hiddenLegend()}
	options.Scales = map[string]Scale{"y": zeroBasedAxis(), "x": plainCategoryAxis()}

	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: labelsOf(records, func(record LabeledSales) string { return record.Label }),
			Datasets: []Dataset{{
				Label:                locale.text("charts.peak_hours.dataset"),
				Data:                 valuesOf(records, func(record LabeledSales) float64 { return record.TotalSales }),
				BorderColor:          colorSuccess,
				BackgroundColor:      ColorList{"rgba(40, 167, 69, 0.1)"},
				BorderWidth:          2,
				PointBackgroundColor: colorSuccess,
				PointRadius:          4,
				Tension:              0.3,
				Fill:                 true,
			}},
		},
		Options: options,
	}
}

func Weekday(raw string, locale Locale) Config {
	records := DecodeRecords[WeekdaySales](raw)

	options := baseOptions()
	options.Plugins = Plugins{Legend: hiddenLegend()}
	options.Scales = map[string]Scale{"y": zeroBasedAxis()}

	return Config{
		Type: TypeBar,
		Data: Data{
			Labels: labelsOf(records, func(record WeekdaySales) string { return record.WeekdayAr }),
			Datasets: []Dataset{{
				Label:           locale.text("charts.weekday.dataset"),
				Data:            valuesOf(records, func(record WeekdaySales) float64 { return record.TotalSales }),
				BackgroundColor: ColorList{"rgba(255, 193, 7, 0.8)"},
				BorderColor:     colorWarning,
				BorderWidth:     1,
				BorderRadius:    5,
			}},
		},
		Options: options,
	}
}

func SalesTrend(raw string, locale Locale) Config {
	records := DecodeRecords[DailySales](raw)

	options := baseOptions()
	options.Plugins = Plugins{Tooltip: indexTooltip()}
	options.Scales = dualAxes(locale.text("charts.trend.axis_sales"), locale.text("charts.trend.axis_operations"))

	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: labelsOf(records, func(record DailySales) string { return record.Date }),
			Datasets: []Dataset{
				{
					Label:           locale.text("charts.trend.sales"),
					Data:            valuesOf(records, func(record DailySales) float64 { return record.TotalPrice }),
					BorderColor:     colorDanger,
					BackgroundColor: ColorList{"rgba(220, 53, 69, 0.05)"},
					BorderWidth:     2,
					YAxisID:         "y",
					Tension:         0.4,
				},
				{
					Label:       locale.text("charts.trend.transactions"),
					Data:        valuesOf(records, func(record DailySales) float64 { return record.SaleID }),
					BorderColor: colorInfo,
					BorderWidth: 2,
					BorderDash:  []int{5, 5},
					YAxisID:     "y1",
					Tension:     0.4,
				},
			},
		},
		Options: options,
	}
}
