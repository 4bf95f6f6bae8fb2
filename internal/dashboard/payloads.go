package dashboard

import (
	"github.com/terraincognita07/salesboard/internal/charts"
	"github.com/terraincognita07/salesboard/internal/services"
)

// HiddenFields renders the report as hidden input values keyed by field id.
// series replaces the monthly buckets with the currently selected period.
func HiddenFields(report services.Report, series []services.TimeBucket) map[string]string {
	if series == nil {
		series = report.MonthlySales
	}

	timeline := make([]charts.LabeledSales, 0, len(series))
	for _, bucket := range series {
		timeline = append(timeline, charts.LabeledSales{Label: bucket.Label, TotalSales: bucket.TotalSales})
	}

	products := make([]charts.ProductSales, 0, len(report.TopProducts))
	for _, product := range report.TopProducts {
		products = append(products, charts.ProductSales{
			ProductName:   product.ProductName,
			TotalSales:    product.TotalSales,
			TotalQuantity: float64(product.TotalQuantity),
		})
	}

	categories := make([]charts.CategoryShare, 0, len(report.Categories))
	for _, category := range report.Categories {
		categories = append(categories, charts.CategoryShare{
			Category:   category.Category,
			TotalSales: category.TotalSales,
			Percentage: category.Percentage,
		})
	}

	hours := make([]charts.LabeledSales, 0, len(report.PeakHours))
	for _, hour := range report.PeakHours {
		hours = append(hours, charts.LabeledSales{Label: hour.Label, TotalSales: hour.TotalSales})
	}

	weekdays := make([]charts.WeekdaySales, 0, len(report.Weekdays))
	for _, day := range report.Weekdays {
		weekdays = append(weekdays, charts.WeekdaySales{WeekdayAr: day.WeekdayAr, TotalSales: day.TotalSales})
	}

	daily := make([]charts.DailySales, 0, len(report.DailySales))
	for _, day := range report.DailySales {
		daily = append(daily, charts.DailySales{
			Date:       day.Date,
			TotalPrice: day.TotalSales,
			SaleID:     float64(day.TransactionCount),
		})
	}

	return map[string]string{
		charts.FieldMonthly:     charts.EncodeRecords(timeline),
		charts.FieldTopProducts: charts.EncodeRecords(products),
		charts.FieldCategory:    charts.EncodeRecords(categories),
		charts.FieldPeakHours:   charts.EncodeRecords(hours),
		charts.FieldWeekday:     charts.EncodeRecords(weekdays),
		charts.FieldDaily:       charts.EncodeRecords(daily),
	}
}

// HiddenField is one input rendered by the page template.
type HiddenField struct {
	ID    string
	Value string
}

// OrderedFields lists values in the fixed field order.
func OrderedFields(values map[string]string) []HiddenField {
	fields := make([]HiddenField, 0, len(charts.PayloadFields))
	for _, id := range charts.PayloadFields {
		value, ok := values[id]
		if !ok {
			value = "[]"
		}
		fields = append(fields, HiddenField{ID: id, Value: value})
	}
	return fields
}
